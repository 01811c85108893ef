package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config captures runtime configuration sourced from environment variables.
type Config struct {
	Environment  string
	HTTPPort     string
	DatabasePath string
	AppName      string
	BaseURL      string
	JWTSecret    string
}

// Load reads env vars and falls back to defaults so the server can boot with zero configuration.
// A .env file in the working directory is honored when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Environment:  getEnv("TPN_ENV", "development"),
		HTTPPort:     getEnv("TPN_HTTP_PORT", "8080"),
		DatabasePath: getEnv("TPN_DB_PATH", filepath.Join("data", "notify.db")),
		AppName:      getEnv("TPN_APP_NAME", "TrendPin"),
		BaseURL:      getEnv("TPN_BASE_URL", "http://localhost:8080"),
		JWTSecret:    getEnv("TPN_JWT_SECRET", ""),
	}

	if cfg.JWTSecret == "" && cfg.Environment == "production" {
		return Config{}, fmt.Errorf("TPN_JWT_SECRET must be set in production")
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "development-only-secret"
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
		return Config{}, fmt.Errorf("ensure data directory: %w", err)
	}

	return cfg, nil
}

// IsProduction reports whether the server runs with production hardening.
func (c Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return fallback
}
