// Package config loads Deepcut runtime configuration.
//
// Sources are layered with koanf: built-in defaults, then an optional YAML
// file, then environment variables. A .env file in the working directory is
// loaded into the process environment first when present.
package config

import (
	"strings"
	"time"
)

// Config is the complete runtime configuration.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	LLM     LLMConfig     `koanf:"llm"`
	Catalog CatalogConfig `koanf:"catalog"`
	Enrich  EnrichConfig  `koanf:"enrich"`
	Cache   CacheConfig   `koanf:"cache"`
	Logging LoggingConfig `koanf:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port              int           `koanf:"port" validate:"min=1,max=65535"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout" validate:"gt=0"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	CORSOrigins       []string      `koanf:"cors_origins" validate:"min=1"`
}

// LLMConfig selects and configures the language-model provider.
type LLMConfig struct {
	Provider      string        `koanf:"provider" validate:"oneof=gemini ollama"`
	GeminiAPIKey  string        `koanf:"gemini_api_key" validate:"required_if=Provider gemini"`
	GeminiModel   string        `koanf:"gemini_model" validate:"required_if=Provider gemini"`
	GeminiBaseURL string        `koanf:"gemini_base_url" validate:"omitempty,url"`
	OllamaHost    string        `koanf:"ollama_host" validate:"omitempty,url"`
	OllamaModel   string        `koanf:"ollama_model" validate:"required_if=Provider ollama"`
	Timeout       time.Duration `koanf:"timeout" validate:"gt=0"`
}

// CatalogConfig configures the music-metadata lookups.
type CatalogConfig struct {
	ITunesBaseURL   string        `koanf:"itunes_base_url" validate:"required,url"`
	ITunesRateLimit float64       `koanf:"itunes_rate_limit" validate:"gte=0"`
	LastFMAPIKey    string        `koanf:"lastfm_api_key"`
	LastFMBaseURL   string        `koanf:"lastfm_base_url" validate:"required,url"`
	LastFMRateLimit float64       `koanf:"lastfm_rate_limit" validate:"gte=0"`
	LookupTimeout   time.Duration `koanf:"lookup_timeout" validate:"gt=0"`
}

// ImageFallbackEnabled reports whether the Last.fm image fallback is configured.
func (c CatalogConfig) ImageFallbackEnabled() bool {
	return strings.TrimSpace(c.LastFMAPIKey) != ""
}

// EnrichConfig sizes the enrichment worker pool.
type EnrichConfig struct {
	Workers   int `koanf:"workers" validate:"min=1,max=256"`
	QueueSize int `koanf:"queue_size" validate:"min=1"`
}

// CacheConfig configures the optional enrichment cache. An empty Path
// disables it.
type CacheConfig struct {
	Path string        `koanf:"path"`
	TTL  time.Duration `koanf:"ttl" validate:"gt=0"`
}

// Enabled reports whether a cache path is configured.
func (c CacheConfig) Enabled() bool {
	return strings.TrimSpace(c.Path) != ""
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              8000,
			ReadHeaderTimeout: 15 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			CORSOrigins:       []string{"*"},
		},
		LLM: LLMConfig{
			Provider:      "gemini",
			GeminiModel:   "gemini-2.5-flash",
			GeminiBaseURL: "https://generativelanguage.googleapis.com",
			OllamaHost:    "http://localhost:11434",
			OllamaModel:   "llama3.1:8b",
			Timeout:       60 * time.Second,
		},
		Catalog: CatalogConfig{
			ITunesBaseURL:   "https://itunes.apple.com",
			ITunesRateLimit: 0,
			LastFMBaseURL:   "http://ws.audioscrobbler.com/2.0/",
			LastFMRateLimit: 5,
			LookupTimeout:   8 * time.Second,
		},
		Enrich: EnrichConfig{
			Workers:   8,
			QueueSize: 64,
		},
		Cache: CacheConfig{
			TTL: 24 * time.Hour,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
