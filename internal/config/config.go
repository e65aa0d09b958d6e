// Package config loads application settings from environment variables,
// .env files, and an optional YAML config file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from various sources.
type Config struct {
	// Auth settings
	SecretKey                string
	Algorithm                string
	AccessTokenExpireMinutes int

	// Database
	DatabaseURL string

	// Environment is "development" or "production".
	Environment string

	// HTTP server
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// CORS
	CORSEnabled bool
	CORSOrigins []string

	// RateLimit is requests per minute per IP (0 disables).
	RateLimit int

	// Upload storage
	UploadDir      string
	UploadMaxBytes int64

	// CacheTTL for GET response caching.
	CacheTTL time.Duration

	// ViewWorkers sizes the async view-recording pool.
	ViewWorkers int

	// Logging
	LogLevel  string
	LogFormat string
}

// Load loads configuration in order of precedence:
//  1. Environment variables
//  2. .env file in the working directory
//  3. Config file (taskboard.yaml, if present)
//  4. Defaults
//
// SECRET_KEY has no default and must be set.
func Load() (*Config, error) {
	// Load .env first so viper's env binding sees its values, matching the
	// original deployment layout (.env next to the binary).
	loadEnvFiles()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	setDefaults(v)

	// Optional config file in the working directory.
	v.SetConfigName("taskboard")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	cfg := &Config{
		SecretKey:                v.GetString("SECRET_KEY"),
		Algorithm:                v.GetString("ALGORITHM"),
		AccessTokenExpireMinutes: v.GetInt("ACCESS_TOKEN_EXPIRE_MINUTES"),
		DatabaseURL:              v.GetString("DATABASE_URL"),
		Environment:              v.GetString("ENVIRONMENT"),
		Host:                     v.GetString("HTTP_HOST"),
		Port:                     v.GetInt("HTTP_PORT"),
		ReadTimeout:              v.GetDuration("HTTP_READ_TIMEOUT"),
		WriteTimeout:             v.GetDuration("HTTP_WRITE_TIMEOUT"),
		IdleTimeout:              v.GetDuration("HTTP_IDLE_TIMEOUT"),
		CORSEnabled:              v.GetBool("CORS_ENABLED"),
		CORSOrigins:              splitOrigins(v.GetString("CORS_ORIGINS")),
		RateLimit:                v.GetInt("RATE_LIMIT"),
		UploadDir:                v.GetString("UPLOAD_DIR"),
		UploadMaxBytes:           v.GetInt64("UPLOAD_MAX_BYTES"),
		CacheTTL:                 v.GetDuration("CACHE_TTL"),
		ViewWorkers:              v.GetInt("VIEW_WORKERS"),
		LogLevel:                 v.GetString("LOG_LEVEL"),
		LogFormat:                v.GetString("LOG_FORMAT"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setDefaults registers default values mirroring the original deployment.
func setDefaults(v *viper.Viper) {
	v.SetDefault("ALGORITHM", "HS256")
	v.SetDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 30)
	v.SetDefault("DATABASE_URL", "sqlite:///./taskboard.db")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8000)
	v.SetDefault("HTTP_READ_TIMEOUT", 10*time.Second)
	v.SetDefault("HTTP_WRITE_TIMEOUT", 10*time.Second)
	v.SetDefault("HTTP_IDLE_TIMEOUT", 120*time.Second)
	v.SetDefault("CORS_ENABLED", false)
	v.SetDefault("CORS_ORIGINS", "")
	v.SetDefault("RATE_LIMIT", 100)
	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("UPLOAD_MAX_BYTES", int64(10<<20))
	v.SetDefault("CACHE_TTL", 30*time.Second)
	v.SetDefault("VIEW_WORKERS", 8)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "")
}

// Validate checks required settings and value ranges.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY is required")
	}
	if c.Algorithm != "HS256" {
		return fmt.Errorf("unsupported token algorithm %q (only HS256 is supported)", c.Algorithm)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.AccessTokenExpireMinutes <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive, got %d", c.AccessTokenExpireMinutes)
	}
	return nil
}

// DatabasePath converts the DATABASE_URL into a filesystem path for the
// SQLite driver. Accepts "sqlite:///./file.db", "sqlite://file.db", or a
// bare path.
func (c *Config) DatabasePath() string {
	url := c.DatabaseURL
	for _, prefix := range []string{"sqlite:///", "sqlite://"} {
		if strings.HasPrefix(url, prefix) {
			return strings.TrimPrefix(url, prefix)
		}
	}
	return url
}

// AccessTokenTTL returns the access token lifetime as a duration.
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

// IsDevelopment reports whether the app runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// loadEnvFiles loads .env files if present. Missing files are fine.
func loadEnvFiles() {
	for _, name := range []string{".env", ".env.local"} {
		if _, err := os.Stat(name); err == nil {
			_ = godotenv.Load(name)
		}
	}
}

// splitOrigins parses a comma-separated origins list.
func splitOrigins(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
