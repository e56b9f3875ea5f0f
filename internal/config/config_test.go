package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DSN", "host=localhost dbname=vct")
	t.Setenv("SESSION_SECRET", "s")
	t.Setenv("JWT_SECRET", "j")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("JWT_ACCESS_TTL", "")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://vct.example.com ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 30*time.Minute, cfg.JWTAccessTTL)
	assert.Equal(t, 24*time.Hour, cfg.JWTRefreshTTL)
	assert.Equal(t, []string{"http://localhost:3000", "https://vct.example.com"}, cfg.CORSOrigins)
}

func TestLoad_BadDuration(t *testing.T) {
	t.Setenv("DB_DSN", "x")
	t.Setenv("SESSION_SECRET", "s")
	t.Setenv("JWT_SECRET", "j")
	t.Setenv("JWT_ACCESS_TTL", "soon")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_ACCESS_TTL")
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := &Config{DBDriver: "mysql", DBMaxAttempts: 0}
	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"DB_DSN", "DB_DRIVER", "SESSION_SECRET", "JWT_SECRET", "DB_MAX_ATTEMPTS"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := &Config{DBDriver: "sqlite", DBDSN: "file::memory:", SessionSecret: "s", JWTSecret: "j", DBMaxAttempts: 1}
	assert.NoError(t, cfg.Validate())
}
