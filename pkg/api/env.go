package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Secrets are the API credentials the pipeline consumes. These two
// variables are the only secrets read from the environment.
type Secrets struct {
	GeminiAPIKey string `env:"GOOGLE_GEMINI_API_KEY"`
	TavilyAPIKey string `env:"TAVILY_API_KEY"`
}

// Limits are operational knobs sourced from the environment.
type Limits struct {
	HTTPTimeout   time.Duration `env:"NEWSFEED_HTTP_TIMEOUT" env-default:"30s"`
	ReaderTimeout time.Duration `env:"NEWSFEED_READER_TIMEOUT" env-default:"60s"`
	HostInterval  time.Duration `env:"NEWSFEED_HOST_INTERVAL" env-default:"2s"`
	UserAgent     string        `env:"NEWSFEED_USER_AGENT" env-default:"contract-news-rss/1.0"`
}

// LoadSecrets reads the API keys from the environment. Both keys must be
// present.
func LoadSecrets() (*Secrets, error) {
	var s Secrets
	if err := cleanenv.ReadEnv(&s); err != nil {
		return nil, fmt.Errorf("reading secrets from environment: %w", err)
	}

	var missing []string
	if s.GeminiAPIKey == "" {
		missing = append(missing, "GOOGLE_GEMINI_API_KEY")
	}
	if s.TavilyAPIKey == "" {
		missing = append(missing, "TAVILY_API_KEY")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return &s, nil
}

// LoadLimits reads operational limits from the environment, falling back to
// defaults.
func LoadLimits() (Limits, error) {
	var l Limits
	if err := cleanenv.ReadEnv(&l); err != nil {
		return Limits{}, fmt.Errorf("reading limits from environment: %w", err)
	}
	return l, nil
}
