package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")
	_, err := Load()
	require.ErrorIs(t, err, ErrMisconfigured)
}

func TestLoadRejectsShortSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "too-short")
	_, err := Load()
	require.ErrorIs(t, err, ErrMisconfigured)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", testSecret)
	t.Setenv("AUTH_TOKEN_TTL_MS", "")
	t.Setenv("AUTH_ISSUER", "")
	t.Setenv("HTTP_ADDR", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "taskhub", cfg.Auth.Issuer)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
}

func TestLoadTokenTTLMillis(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", testSecret)
	t.Setenv("AUTH_TOKEN_TTL_MS", "900000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.Auth.TokenTTL)
}

func TestLoadRejectsBadTTL(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", testSecret)

	for _, raw := range []string{"abc", "0", "-5"} {
		t.Setenv("AUTH_TOKEN_TTL_MS", raw)
		_, err := Load()
		require.ErrorIs(t, err, ErrMisconfigured, "ttl %q", raw)
	}
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", testSecret)
	t.Setenv("AUTH_TOKEN_TTL_MS", "")
	t.Setenv("LOG_LEVEL", "verbose")

	_, err := Load()
	require.ErrorIs(t, err, ErrMisconfigured)
}

func TestLoadCORSOrigins(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", testSecret)
	t.Setenv("AUTH_TOKEN_TTL_MS", "")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, https://app.example.com ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:5173", "https://app.example.com"}, cfg.HTTP.CORSOrigins)
}
