package config

import (
	"log/slog"

	"github.com/subosito/gotenv"
)

// LoadEnv loads the env file for the given environment, falling back to
// the process environment when none exists.
func LoadEnv(env string) {
	envFile := "config/envs/.env." + env
	if err := gotenv.Load(envFile); err != nil {
		slog.Warn("No .env file found, using OS environment")
	}
}
