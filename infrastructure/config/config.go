// Package config loads application configuration from the environment.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Database configuration
	DBDriver string // sqlite3 or postgres
	DBDSN    string

	// Cache capacities, per entity kind
	BookCacheSize   int
	AuthorCacheSize int
	ReviewCacheSize int

	// Logging
	LogLevel    string
	LogFilePath string

	// Background log-excerpt generation
	LogTaskWorkers int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_ADDRESS", ":8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("DB_DRIVER", "sqlite3")
	v.SetDefault("DB_DSN", "file:bookshop.db?cache=shared&_fk=1")
	v.SetDefault("BOOK_CACHE_SIZE", 20)
	v.SetDefault("AUTHOR_CACHE_SIZE", 10)
	v.SetDefault("REVIEW_CACHE_SIZE", 10)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE_PATH", "app.log")
	v.SetDefault("LOG_TASK_WORKERS", 5)

	cfg := &Config{
		ServerAddress:   v.GetString("SERVER_ADDRESS"),
		Environment:     v.GetString("ENVIRONMENT"),
		DBDriver:        v.GetString("DB_DRIVER"),
		DBDSN:           v.GetString("DB_DSN"),
		BookCacheSize:   v.GetInt("BOOK_CACHE_SIZE"),
		AuthorCacheSize: v.GetInt("AUTHOR_CACHE_SIZE"),
		ReviewCacheSize: v.GetInt("REVIEW_CACHE_SIZE"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		LogFilePath:     v.GetString("LOG_FILE_PATH"),
		LogTaskWorkers:  v.GetInt("LOG_TASK_WORKERS"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want sqlite3 or postgres)", c.DBDriver)
	}
	if c.DBDSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if c.BookCacheSize <= 0 || c.AuthorCacheSize <= 0 || c.ReviewCacheSize <= 0 {
		return fmt.Errorf("cache sizes must be positive")
	}
	if c.LogTaskWorkers <= 0 {
		return fmt.Errorf("LOG_TASK_WORKERS must be positive")
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
