package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the full environment-driven configuration shared by the
// server and the scanner.
type Config struct {
	Port         int    `envconfig:"PORT" default:"8080"`
	DatabasePath string `envconfig:"DATABASE_PATH" default:"textshield.db"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`

	// Remote rephrasing is enabled only when an API key is present.
	OpenAIAPIKey    string        `envconfig:"OPENAI_API_KEY"`
	OpenAIModel     string        `envconfig:"OPENAI_MODEL"`
	OpenAIBaseURL   string        `envconfig:"OPENAI_BASE_URL"`
	RephraseTimeout time.Duration `envconfig:"REPHRASE_TIMEOUT" default:"15s"`

	// Scanner dedup is enabled only when an address is configured.
	ValkeyAddress  string `envconfig:"VALKEY_INIT_ADDRESS"`
	ValkeyPassword string `envconfig:"VALKEY_PASSWORD"`
	ValkeyTLS      bool   `envconfig:"VALKEY_TLS"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process env config: %w", err)
	}
	return cfg, nil
}
