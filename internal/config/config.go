package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds application configuration.
type Config struct {
	// AppEnv is development or production; it selects the logger preset.
	AppEnv   string
	LogLevel string
	Server   ServerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Auth     AuthConfig
	// CacheBackend is "memory" or "redis".
	CacheBackend string
	// SettingsTTL is how long resolved operator settings are cached.
	SettingsTTL time.Duration
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// AllowedOrigins feeds the API CORS policy.
	AllowedOrigins []string
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DB       string
	SSLMode  string
}

// DSN builds the connection string shared by GORM and sqlx
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", c.User, c.Password, c.Host, c.Port, c.DB, c.SSLMode)
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret  string
	CookieName string
}

// LoadFromEnv loads all configuration from environment variables.
func LoadFromEnv() Config {
	return Config{
		AppEnv:   GetEnv("APP_ENV", "development"),
		LogLevel: GetEnv("LOG_LEVEL", ""),
		Server: ServerConfig{
			Port:           GetEnv("PORT", "8080"),
			ReadTimeout:    GetEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:   GetEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			AllowedOrigins: []string{GetEnv("CORS_ALLOWED_ORIGIN", "https://*")},
		},
		Postgres: PostgresConfig{
			Host:     GetEnv("PG_HOST", "localhost"),
			Port:     GetEnv("PG_PORT", "5432"),
			User:     GetEnv("PG_USER", "postgres"),
			Password: GetEnv("PG_PASSWORD", ""),
			DB:       GetEnv("PG_DB", "crewcenter"),
			SSLMode:  GetEnv("PG_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     GetEnv("REDIS_HOST", "localhost"),
			Port:     GetEnv("REDIS_PORT", "6379"),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetEnvInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret:  GetEnv("JWT_SECRET", ""),
			CookieName: GetEnv("AUTH_COOKIE_NAME", "crewcenter_token"),
		},
		CacheBackend: GetEnv("CACHE_BACKEND", "memory"),
		SettingsTTL:  GetEnvDuration("SETTINGS_TTL", 5*time.Minute),
	}
}

// Validate validates all configuration.
func (c Config) Validate() error {
	validEnvs := map[string]bool{"development": true, "production": true, "test": true}
	if !validEnvs[c.AppEnv] {
		return fmt.Errorf("invalid APP_ENV: %s (must be: development, production, test)", c.AppEnv)
	}

	if c.CacheBackend != "memory" && c.CacheBackend != "redis" {
		return fmt.Errorf("invalid CACHE_BACKEND: %s (must be: memory, redis)", c.CacheBackend)
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}

	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return errors.New("server timeouts must be greater than 0")
	}

	if c.SettingsTTL < 0 {
		return errors.New("SETTINGS_TTL must not be negative")
	}

	return nil
}
