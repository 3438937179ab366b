package config

import (
	"os"
	"strconv"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	DBDriver         string
	DBConnString     string
	ReportDir        string
	Locale           string
	ReportWindowDays int
}

// FromEnv builds Config with defaults, overridden by environment variables.
// With nothing set the store is store.db in the current working directory.
func FromEnv() Config {
	return Config{
		DBDriver:         envOrDefault("RETAIL_DB_DRIVER", "sqlite3"),
		DBConnString:     envOrDefault("RETAIL_DB_DSN", "store.db"),
		ReportDir:        envOrDefault("RETAIL_REPORT_DIR", "."),
		Locale:           envOrDefault("RETAIL_LOCALE", "ru"),
		ReportWindowDays: envInt("RETAIL_REPORT_WINDOW_DAYS", 30),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil && n > 0 {
			return n
		}
	}
	return def
}
