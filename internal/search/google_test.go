package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/vocabgen/internal/model"
)

func newTestSearcher(t *testing.T, handler http.HandlerFunc) *GoogleSearcher {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	searcher, err := NewGoogleSearcher(context.Background(), model.SearchConfig{
		APIKey:   "test-key",
		EngineID: "test-cx",
		Endpoint: server.URL + "/",
	}, "twitter:description")
	require.NoError(t, err)
	return searcher
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	assert.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestGoogleSearcher_Search_PreferredResult(t *testing.T) {
	searcher := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/customsearch/v1", r.URL.Path)
		assert.Equal(t, "Inflation definition economics investopedia", q.Get("q"))
		assert.Equal(t, "test-cx", q.Get("cx"))
		assert.Equal(t, "1", q.Get("num"))
		assert.Equal(t, "test-key", q.Get("key"))

		writeJSON(t, w, http.StatusOK, map[string]any{
			"items": []map[string]any{{
				"link":         "https://www.investopedia.com/terms/i/inflation.asp",
				"formattedUrl": "https://www.investopedia.com/terms/i/inflation.asp",
				"snippet":      "Inflation is the rate at which ...",
				"pagemap": map[string]any{
					"metatags": []map[string]any{{
						"twitter:description": "Inflation is the rate at which prices rise.",
						"og:type":             "article",
					}},
				},
			}},
		})
	})

	result, err := searcher.Search(context.Background(), "Inflation definition economics investopedia")
	require.NoError(t, err)

	assert.Equal(t, "https://www.investopedia.com/terms/i/inflation.asp", result.URL)
	assert.Equal(t, "Inflation is the rate at which ...", result.Snippet)
	assert.Equal(t, "Inflation is the rate at which prices rise.", result.Description)
	assert.True(t, result.MatchesSource("investopedia"))
}

func TestGoogleSearcher_Search_NoMetadata(t *testing.T) {
	searcher := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"items": []map[string]any{{
				"formattedUrl": "https://en.wikipedia.org/wiki/Inflation",
				"snippet":      "In economics, inflation is a general increase ...",
			}},
		})
	})

	result, err := searcher.Search(context.Background(), "Inflation definition economics wikipedia")
	require.NoError(t, err)

	assert.Equal(t, "https://en.wikipedia.org/wiki/Inflation", result.URL, "falls back to formatted URL")
	assert.Empty(t, result.Description)
}

func TestGoogleSearcher_Search_NoItems(t *testing.T) {
	searcher := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"kind": "customsearch#search"})
	})

	_, err := searcher.Search(context.Background(), "Zzyzx definition economics investopedia")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrResolution)
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestGoogleSearcher_Search_InvalidKeyIsConfigError(t *testing.T) {
	searcher := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, map[string]any{
			"error": map[string]any{
				"code":    400,
				"message": "API key not valid. Please pass a valid API key.",
			},
		})
	})

	_, err := searcher.Search(context.Background(), "Inflation definition economics investopedia")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrConfig)
	assert.NotErrorIs(t, err, model.ErrResolution)
}

func TestGoogleSearcher_Search_OtherStatusIsResolutionFailure(t *testing.T) {
	searcher := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]any{
			"error": map[string]any{"code": 404, "message": "Not Found"},
		})
	})

	_, err := searcher.Search(context.Background(), "Inflation definition economics investopedia")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrResolution)
}

func TestGoogleSearcher_Search_Canceled(t *testing.T) {
	searcher := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := searcher.Search(ctx, "Inflation")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, model.ErrResolution)
}

func TestNewGoogleSearcher_MissingCredentials(t *testing.T) {
	_, err := NewGoogleSearcher(context.Background(), model.SearchConfig{EngineID: "cx"}, "twitter:description")
	assert.ErrorIs(t, err, model.ErrConfig)

	_, err = NewGoogleSearcher(context.Background(), model.SearchConfig{APIKey: "key"}, "twitter:description")
	assert.ErrorIs(t, err, model.ErrConfig)
}

func TestMetatag(t *testing.T) {
	raw := []byte(`{"metatags":[{"twitter:description":"First"},{"twitter:description":"Second"}]}`)

	assert.Equal(t, "First", metatag(raw, "twitter:description"))
	assert.Equal(t, "", metatag(raw, "og:description"))
	assert.Equal(t, "", metatag(raw, ""))
	assert.Equal(t, "", metatag(nil, "twitter:description"))
	assert.Equal(t, "", metatag([]byte(`{"metatags":[]}`), "twitter:description"))
	assert.Equal(t, "", metatag([]byte(`not json`), "twitter:description"))
	assert.Equal(t, "", metatag([]byte(`{"metatags":[{"twitter:description":42}]}`), "twitter:description"))
}
