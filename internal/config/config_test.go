package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points file lookups at an empty temp dir so a developer's local
// config.yaml or .env cannot leak into the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	oldPaths, oldDotEnv := DefaultConfigPaths, DotEnvPath
	DefaultConfigPaths = []string{filepath.Join(dir, "config.yaml")}
	DotEnvPath = filepath.Join(dir, ".env")
	t.Cleanup(func() {
		DefaultConfigPaths, DotEnvPath = oldPaths, oldDotEnv
	})
	for env := range envKeys {
		t.Setenv(env, "")
		require.NoError(t, os.Unsetenv(env))
	}
	t.Setenv(ConfigPathEnvVar, "")
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "test-key", cfg.LLM.GeminiAPIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.GeminiModel)
	assert.Equal(t, 8*time.Second, cfg.Catalog.LookupTimeout)
	assert.Equal(t, "https://itunes.apple.com", cfg.Catalog.ITunesBaseURL)
	assert.False(t, cfg.Catalog.ImageFallbackEnabled())
	assert.False(t, cfg.Cache.Enabled())
	assert.Equal(t, 8, cfg.Enrich.Workers)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("LASTFM_API_KEY", "lfm-key")
	t.Setenv("PORT", "9090")
	t.Setenv("LOOKUP_TIMEOUT", "3s")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")
	t.Setenv("ENRICH_WORKERS", "4")
	t.Setenv("CACHE_PATH", ":memory:")
	t.Setenv("LASTFM_RATE_LIMIT", "2.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Catalog.LookupTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 4, cfg.Enrich.Workers)
	assert.True(t, cfg.Catalog.ImageFallbackEnabled())
	assert.True(t, cfg.Cache.Enabled())
	assert.InDelta(t, 2.5, cfg.Catalog.LastFMRateLimit, 1e-9)
}

func TestLoad_YAMLFileThenEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	yaml := "llm:\n  provider: ollama\n  ollama_model: qwen2.5:7b\nlogging:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "qwen2.5:7b", cfg.LLM.OllamaModel)
	assert.Equal(t, "warn", cfg.Logging.Level, "environment wins over file")
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GEMINI_API_KEY=from-dotenv\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("GEMINI_API_KEY") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.LLM.GeminiAPIKey)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "gemini key required for gemini provider",
			env:     map[string]string{},
			wantErr: "GEMINI_API_KEY is required when Provider=gemini",
		},
		{
			name:    "unknown provider",
			env:     map[string]string{"LLM_PROVIDER": "openai"},
			wantErr: "LLM_PROVIDER must be one of",
		},
		{
			name:    "zero workers",
			env:     map[string]string{"GEMINI_API_KEY": "k", "ENRICH_WORKERS": "0"},
			wantErr: "ENRICH_WORKERS",
		},
		{
			name:    "bad log format",
			env:     map[string]string{"GEMINI_API_KEY": "k", "LOG_FORMAT": "xml"},
			wantErr: "LOG_FORMAT must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_OllamaNeedsNoGeminiKey(t *testing.T) {
	isolate(t)
	t.Setenv("LLM_PROVIDER", "ollama")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "ollama", cfg.LLM.Provider)
}
