package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads variables from the given .env files when present.
// Variables already set in the environment win.
func LoadDotEnv(files ...string) error {
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// GetEnv returns the environment variable or a default value.
func GetEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return defaultValue
}

// GetEnvInt returns the environment variable parsed as int, or a default value.
func GetEnvInt(key string, defaultValue int) int {
	v := GetEnv(key, "")
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}

// GetEnvDuration returns the environment variable parsed as time.Duration, or a default value.
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v := GetEnv(key, "")
	if v == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultValue
	}
	return d
}
