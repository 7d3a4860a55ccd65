package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	minSecretBytes  = 32
	defaultTokenTTL = time.Hour
)

var ErrMisconfigured = errors.New("config invalid")

type Config struct {
	HTTP     HTTPConfig
	Auth     AuthConfig
	Postgres PostgresConfig
	LogLevel string
}

type HTTPConfig struct {
	Addr        string
	CORSOrigins []string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	Issuer    string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

// Load reads configuration from the environment. The signing secret is
// validated here so a weak or missing secret is a startup failure, never a
// per-request one.
func Load() (Config, error) {
	auth, err := loadAuth()
	if err != nil {
		return Config{}, err
	}

	logLevel := getenv("LOG_LEVEL", "info")
	if _, err := zerolog.ParseLevel(logLevel); err != nil {
		return Config{}, fmt.Errorf("%w: invalid LOG_LEVEL %q", ErrMisconfigured, logLevel)
	}

	return Config{
		HTTP: HTTPConfig{
			Addr:        getenv("HTTP_ADDR", ":8080"),
			CORSOrigins: splitCSV(os.Getenv("CORS_ORIGINS")),
		},
		Auth: auth,
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
		LogLevel: logLevel,
	}, nil
}

func loadAuth() (AuthConfig, error) {
	secret := os.Getenv("AUTH_JWT_SECRET")
	if secret == "" {
		return AuthConfig{}, fmt.Errorf("%w: AUTH_JWT_SECRET is required", ErrMisconfigured)
	}
	if len(secret) < minSecretBytes {
		return AuthConfig{}, fmt.Errorf("%w: AUTH_JWT_SECRET must be at least %d bytes", ErrMisconfigured, minSecretBytes)
	}

	ttl := defaultTokenTTL
	if raw := os.Getenv("AUTH_TOKEN_TTL_MS"); raw != "" {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || ms <= 0 {
			return AuthConfig{}, fmt.Errorf("%w: invalid AUTH_TOKEN_TTL_MS", ErrMisconfigured)
		}
		ttl = time.Duration(ms) * time.Millisecond
	}

	return AuthConfig{
		JWTSecret: secret,
		TokenTTL:  ttl,
		Issuer:    getenv("AUTH_ISSUER", "taskhub"),
	}, nil
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
