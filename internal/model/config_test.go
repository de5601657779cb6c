package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "investopedia", cfg.Sources.Preferred)
	assert.Equal(t, "wikipedia", cfg.Sources.Fallback)
	assert.Equal(t, "economics", cfg.Sources.Domain)
	assert.Equal(t, "twitter:description", cfg.Sources.MetadataKey)
	assert.Equal(t, []string{"Vocab", "Chapter"}, cfg.Extract.StopWords)
	assert.Equal(t, "Times New Roman", cfg.Document.FontFamily)
	assert.Equal(t, 12.0, cfg.Document.FontSize)
	assert.Contains(t, cfg.HTTP.UserAgent, "Mozilla/5.0")
	assert.Equal(t, "warn", cfg.Output.LogLevel)
	assert.False(t, cfg.Output.Verbose)
}

func TestSearchConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     SearchConfig
		wantErr bool
	}{
		{"both set", SearchConfig{APIKey: "key", EngineID: "cx"}, false},
		{"missing key", SearchConfig{EngineID: "cx"}, true},
		{"missing id", SearchConfig{APIKey: "key"}, true},
		{"missing both", SearchConfig{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfig)
		})
	}
}

func TestSearchConfig_Redacted(t *testing.T) {
	s := SearchConfig{APIKey: "AIzaSecretValue", EngineID: "cx"}.Redacted()
	assert.Equal(t, "AIza…", s.APIKey)
	assert.Equal(t, "cx", s.EngineID)

	assert.Equal(t, "…", SearchConfig{APIKey: "abc"}.Redacted().APIKey)
	assert.Equal(t, "", SearchConfig{}.Redacted().APIKey)
}

func TestWrapError(t *testing.T) {
	err := WrapError(ErrResolution, "search", assert.AnError)
	assert.True(t, IsKind(err, ErrResolution))
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "search")

	bare := WrapError(ErrResolution, "expand", nil)
	assert.True(t, IsKind(bare, ErrResolution))
	assert.False(t, IsKind(bare, ErrConfig))
}
