package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds everything read from the environment at startup. The log level
// is not here: the logger resolves LOG_LEVEL itself, before config exists.
type Config struct {
	DBPath         string
	ServerPort     string
	IdentityURL    string
	IdentityAPIKey string
	SignupSecret   string
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DBPath:         getEnv("DB_PATH", "darts.db"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		IdentityURL:    getEnv("IDENTITY_URL", ""),
		IdentityAPIKey: getEnv("IDENTITY_API_KEY", ""),
		SignupSecret:   getEnv("SIGNUP_HOOK_SECRET", ""),
	}

	if cfg.IdentityURL == "" {
		return nil, fmt.Errorf("IDENTITY_URL is required")
	}
	if cfg.IdentityAPIKey == "" {
		return nil, fmt.Errorf("IDENTITY_API_KEY is required")
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("identity_url", cfg.IdentityURL).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
