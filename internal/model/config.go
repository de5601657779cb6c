package model

import (
	"fmt"
	"time"
)

// DefaultUserAgent is a browser-like client identifier so reference sites do not reject the fetch as a bot
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/61.0.3163.100 Safari/537.36"

// Config is the complete vocabgen configuration
type Config struct {
	Search   SearchConfig   `yaml:"search" mapstructure:"search"`
	Sources  SourcesConfig  `yaml:"sources" mapstructure:"sources"`
	HTTP     HTTPConfig     `yaml:"http" mapstructure:"http"`
	Extract  ExtractConfig  `yaml:"extract" mapstructure:"extract"`
	Document DocumentConfig `yaml:"document" mapstructure:"document"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
}

// SearchConfig holds the search service credential pair
type SearchConfig struct {
	APIKey   string `yaml:"api_key" mapstructure:"api_key"`     // Google API key
	EngineID string `yaml:"engine_id" mapstructure:"engine_id"` // Programmable Search Engine id (cx)
	Endpoint string `yaml:"endpoint,omitempty" mapstructure:"endpoint"`
}

// Validate checks that both halves of the credential pair are present
func (s SearchConfig) Validate() error {
	if s.APIKey == "" && s.EngineID == "" {
		return fmt.Errorf("search API key and engine id are not set: %w", ErrConfig)
	}
	if s.APIKey == "" {
		return fmt.Errorf("search API key is not set: %w", ErrConfig)
	}
	if s.EngineID == "" {
		return fmt.Errorf("search engine id is not set: %w", ErrConfig)
	}
	return nil
}

// Redacted returns a copy safe for display
func (s SearchConfig) Redacted() SearchConfig {
	if len(s.APIKey) > 4 {
		s.APIKey = s.APIKey[:4] + "…"
	} else if s.APIKey != "" {
		s.APIKey = "…"
	}
	return s
}

// SourcesConfig controls the two-tier lookup
type SourcesConfig struct {
	Domain      string `yaml:"domain" mapstructure:"domain"`             // Subject added to every query, e.g. "economics"
	Preferred   string `yaml:"preferred" mapstructure:"preferred"`       // Tried first; definition comes from page metadata
	Fallback    string `yaml:"fallback" mapstructure:"fallback"`         // Tried second; definition expanded from the page
	MetadataKey string `yaml:"metadata_key" mapstructure:"metadata_key"` // Metatag holding the preferred source's description
}

// HTTPConfig contains page-fetch settings
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// ExtractConfig contains term extraction settings
type ExtractConfig struct {
	StopWords []string `yaml:"stop_words" mapstructure:"stop_words"`
}

// DocumentConfig contains output document settings
type DocumentConfig struct {
	OutputName string   `yaml:"output_name" mapstructure:"output_name"`
	Header     []string `yaml:"header" mapstructure:"header"`
	FontFamily string   `yaml:"font_family" mapstructure:"font_family"`
	FontSize   float64  `yaml:"font_size" mapstructure:"font_size"`
	Open       bool     `yaml:"open" mapstructure:"open"`
}

// OutputConfig contains console output settings
type OutputConfig struct {
	Verbose  bool   `yaml:"verbose" mapstructure:"verbose"`     // Forces debug logging
	LogLevel string `yaml:"log_level" mapstructure:"log_level"` // debug, info, warn or error
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Sources: SourcesConfig{
			Domain:      "economics",
			Preferred:   "investopedia",
			Fallback:    "wikipedia",
			MetadataKey: "twitter:description",
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    DefaultUserAgent,
			MaxBodyBytes: 5_000_000,
		},
		Extract: ExtractConfig{
			StopWords: []string{"Vocab", "Chapter"},
		},
		Document: DocumentConfig{
			OutputName: "Vocabulary.docx",
			FontFamily: "Times New Roman",
			FontSize:   12,
			Open:       true,
		},
		Output: OutputConfig{
			LogLevel: "warn",
		},
	}
}
