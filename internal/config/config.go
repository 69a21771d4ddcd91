// Package config loads and validates service configuration from the
// environment. A .env file, when present, is loaded by the CLI entrypoint
// before any of these constructors run.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds everything the HTTP service needs to start.
type Config struct {
	// ListenAddr is the host:port the HTTP server binds to.
	ListenAddr string
	// DatabaseURL is the PostgreSQL connection string.
	DatabaseURL string
	// GeminiAPIKey authenticates against the generation backend. It may be
	// empty; generation endpoints then report the service as unconfigured.
	GeminiAPIKey string
	// AdminEmails lists accounts allowed to read aggregate usage stats.
	AdminEmails []string

	JWT      *JWTConfig
	Password *PasswordConfig
}

// Load builds a Config from environment variables. DATABASE_URL is required;
// everything else has a default or is optional.
func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr:   getEnv("LISTEN_ADDR", ":8080"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		AdminEmails:  splitList(os.Getenv("ADMIN_EMAILS")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}

	jwt, err := NewJWTConfig()
	if err != nil {
		return nil, err
	}
	cfg.JWT = jwt

	password, err := NewPasswordConfig()
	if err != nil {
		return nil, err
	}
	cfg.Password = password

	return cfg, nil
}

// IsAdmin reports whether the given email is on the admin allowlist.
// Comparison is case-insensitive.
func (c *Config) IsAdmin(email string) bool {
	for _, admin := range c.AdminEmails {
		if strings.EqualFold(admin, email) {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return n, nil
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
