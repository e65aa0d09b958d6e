package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-secret", cfg.SecretKey)
	assert.Equal(t, "HS256", cfg.Algorithm)
	assert.Equal(t, 30, cfg.AccessTokenExpireMinutes)
	assert.Equal(t, "sqlite:///./taskboard.db", cfg.DatabaseURL)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, 100, cfg.RateLimit)
	assert.Equal(t, "./uploads", cfg.UploadDir)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadMissingSecretKey(t *testing.T) {
	t.Setenv("SECRET_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SECRET_KEY")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SECRET_KEY", "s3cr3t")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "60")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "production", cfg.Environment)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, time.Hour, cfg.AccessTokenTTL())
	assert.Equal(t, []string{"http://localhost:3000", "https://example.com"}, cfg.CORSOrigins)
}

func TestValidateRejectsBadAlgorithm(t *testing.T) {
	cfg := &Config{SecretKey: "x", Algorithm: "RS256", Port: 8000, AccessTokenExpireMinutes: 30}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HS256")
}

func TestValidateRejectsBadPort(t *testing.T) {
	cfg := &Config{SecretKey: "x", Algorithm: "HS256", Port: 0, AccessTokenExpireMinutes: 30}
	assert.Error(t, cfg.Validate())
}

func TestDatabasePath(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"sqlite:///./taskboard.db", "./taskboard.db"},
		{"sqlite://taskboard.db", "taskboard.db"},
		{"./plain.db", "./plain.db"},
		{":memory:", ":memory:"},
	}
	for _, tt := range tests {
		cfg := &Config{DatabaseURL: tt.url}
		assert.Equal(t, tt.want, cfg.DatabasePath())
	}
}
