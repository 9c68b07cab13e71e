package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultAccessTTL  = "15m"
	defaultRefreshTTL = "168h"
	defaultPort       = "8080"
	defaultDSN        = "deipna.db"
)

type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string
	JWTSecret   string
	AccessTTL   time.Duration
	RefreshTTL  time.Duration
}

// Load reads configuration from the environment. A missing JWT_SECRET is a
// configuration error: callers are expected to treat it as fatal.
func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = getEnv("PORT", defaultPort)
	cfg.DatabaseURL = getEnv("DATABASE_URL", defaultDSN)
	cfg.JWTSecret = strings.TrimSpace(os.Getenv("JWT_SECRET"))

	var err error
	cfg.AccessTTL, err = parseDurationEnv("ACCESS_TOKEN_TTL", defaultAccessTTL)
	if err != nil {
		return nil, err
	}
	cfg.RefreshTTL, err = parseDurationEnv("REFRESH_TOKEN_TTL", defaultRefreshTTL)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	if cfg.AccessTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be > 0")
	}
	if cfg.RefreshTTL <= 0 {
		return fmt.Errorf("REFRESH_TOKEN_TTL must be > 0")
	}
	if cfg.RefreshTTL <= cfg.AccessTTL {
		return fmt.Errorf("REFRESH_TOKEN_TTL must exceed ACCESS_TOKEN_TTL")
	}
	if isProdLike(cfg.AppEnv) && len(cfg.JWTSecret) < 32 {
		return fmt.Errorf("in prod/release JWT_SECRET must be at least 32 characters")
	}
	return nil
}

func isProdLike(env string) bool {
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
