package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// envNames is the reverse of envKeys keyed by struct namespace, so validation
// errors name the variable an operator would set.
var envNames = map[string]string{
	"Config.LLM.GeminiAPIKey":      "GEMINI_API_KEY",
	"Config.LLM.GeminiModel":       "GEMINI_MODEL",
	"Config.LLM.OllamaModel":       "OLLAMA_MODEL",
	"Config.LLM.Provider":          "LLM_PROVIDER",
	"Config.Server.Port":           "PORT",
	"Config.Enrich.Workers":        "ENRICH_WORKERS",
	"Config.Enrich.QueueSize":      "ENRICH_QUEUE_SIZE",
	"Config.Catalog.LookupTimeout": "LOOKUP_TIMEOUT",
	"Config.Logging.Level":         "LOG_LEVEL",
	"Config.Logging.Format":        "LOG_FORMAT",
}

// Validate checks the configuration and reports every invalid field.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config: validate: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("config: invalid configuration: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	name := fe.Namespace()
	if env, ok := envNames[name]; ok {
		name = env
	}
	switch fe.Tag() {
	case "required_if":
		return fmt.Sprintf("%s is required when %s", name, strings.Replace(fe.Param(), " ", "=", 1))
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", name, fe.Param(), fmt.Sprint(fe.Value()))
	default:
		return fmt.Sprintf("%s failed %s=%s (value %v)", name, fe.Tag(), fe.Param(), fe.Value())
	}
}
