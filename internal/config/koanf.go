package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the YAML config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
}

// DotEnvPath is the .env file loaded before reading the environment.
var DotEnvPath = ".env"

// envKeys maps recognized environment variables to koanf paths. Anything not
// listed is ignored.
var envKeys = map[string]string{
	"PORT":                "server.port",
	"READ_HEADER_TIMEOUT": "server.read_header_timeout",
	"SHUTDOWN_TIMEOUT":    "server.shutdown_timeout",
	"CORS_ORIGINS":        "server.cors_origins",

	"LLM_PROVIDER":    "llm.provider",
	"GEMINI_API_KEY":  "llm.gemini_api_key",
	"GEMINI_MODEL":    "llm.gemini_model",
	"GEMINI_BASE_URL": "llm.gemini_base_url",
	"OLLAMA_HOST":     "llm.ollama_host",
	"OLLAMA_MODEL":    "llm.ollama_model",
	"LLM_TIMEOUT":     "llm.timeout",

	"ITUNES_BASE_URL":   "catalog.itunes_base_url",
	"ITUNES_RATE_LIMIT": "catalog.itunes_rate_limit",
	"LASTFM_API_KEY":    "catalog.lastfm_api_key",
	"LASTFM_BASE_URL":   "catalog.lastfm_base_url",
	"LASTFM_RATE_LIMIT": "catalog.lastfm_rate_limit",
	"LOOKUP_TIMEOUT":    "catalog.lookup_timeout",

	"ENRICH_WORKERS":    "enrich.workers",
	"ENRICH_QUEUE_SIZE": "enrich.queue_size",

	"CACHE_PATH": "cache.path",
	"CACHE_TTL":  "cache.ttl",

	"LOG_LEVEL":  "logging.level",
	"LOG_FORMAT": "logging.format",
}

func envTransformFunc(key string) string {
	return envKeys[key]
}

// Load builds the configuration from defaults, the optional YAML file and the
// environment, then validates it.
func Load() (*Config, error) {
	if err := loadDotEnv(DotEnvPath); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadDotEnv populates the environment from path without overriding
// variables that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

// sliceConfigPaths are split on commas when they arrive as a single string.
var sliceConfigPaths = []string{
	"server.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("config: set %s: %w", path, err)
		}
	}
	return nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
