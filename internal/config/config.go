package config

import (
	"log/slog"
	"os"
	"time"
)

type Config struct {
	Port          string
	Env           string
	DatabaseDSN   string
	JWTSecret     string
	TokenTTL      time.Duration
	CookieMaxAge  time.Duration
	MigrationsDir string
}

func Load() Config {
	cfg := Config{
		Port:          getEnv("PORT", "3000"),
		Env:           getEnv("ENV", "development"),
		DatabaseDSN:   getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/projectboard?parseTime=true"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		TokenTTL:      getDuration("TOKEN_TTL", 30*24*time.Hour),
		CookieMaxAge:  365 * 24 * time.Hour,
		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
	}

	if cfg.Env == "production" && cfg.JWTSecret == "dev-secret-change-in-production" {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration, using default", "key", key, "value", v)
		return fallback
	}
	return d
}
