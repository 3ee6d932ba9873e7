package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures the runtime configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Session  SessionConfig
	Auth     AuthConfig
	Uploads  UploadsConfig
	LogLevel string
}

// ServerConfig configures the HTTP server runtime behavior.
type ServerConfig struct {
	Addr string
}

// DatabaseConfig contains the database connection settings.
type DatabaseConfig struct {
	URL             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// SessionConfig controls cookie sessions for the web client.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// AuthConfig holds the signing secret for API bearer tokens.
type AuthConfig struct {
	Secret string
}

// UploadsConfig locates the directory for profile and recipe images.
type UploadsConfig struct {
	Dir string
}

// Load inspects the environment and builds a Config value.
func Load() (Config, error) {
	cfg := Config{}

	cfg.Server = ServerConfig{
		Addr: firstNonEmpty(
			os.Getenv("SERVER_ADDR"),
			os.Getenv("ADDR"),
			":8080",
		),
	}

	cfg.Database = DatabaseConfig{
		URL: firstNonEmpty(
			os.Getenv("DATABASE_URL"),
			os.Getenv("DB_URL"),
			"",
		),
		MaxIdleConns:    envInt("DB_MAX_IDLE_CONNS", 2),
		MaxOpenConns:    envInt("DB_MAX_OPEN_CONNS", 10),
		ConnMaxLifetime: envDuration("DB_CONN_MAX_LIFETIME", time.Hour),
		ConnMaxIdleTime: envDuration("DB_CONN_MAX_IDLE_TIME", 10*time.Minute),
	}

	cfg.Session = SessionConfig{
		Lifetime:     envDuration("SESSION_LIFETIME", 12*time.Hour),
		CookieName:   firstNonEmpty(os.Getenv("SESSION_COOKIE_NAME"), "mutfago_session"),
		CookieDomain: os.Getenv("SESSION_COOKIE_DOMAIN"),
		CookieSecure: envBool("SESSION_COOKIE_SECURE", false),
	}

	cfg.Auth = AuthConfig{
		Secret: os.Getenv("AUTH_SECRET"),
	}

	cfg.Uploads = UploadsConfig{
		Dir: firstNonEmpty(os.Getenv("UPLOADS_DIR"), "uploads"),
	}

	cfg.LogLevel = os.Getenv("LOG_LEVEL")

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return Config{}, fmt.Errorf("server address must not be empty")
	}
	// Without a secret, bearer tokens would be signed with an empty key. The
	// mock-database dev mode may run without one; a real deployment may not.
	if cfg.Database.URL != "" && strings.TrimSpace(cfg.Auth.Secret) == "" {
		return Config{}, fmt.Errorf("AUTH_SECRET must be set when a database is configured")
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func envInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func envBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
