// Package config handles application configuration loading from environment
// variables and an optional config file. It provides a centralized Config
// struct used by the server and the operator CLI.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration values.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// CatalogCacheTTL bounds how long the public catalog page may be served
	// from cache, both by Valkey and by downstream HTTP caches.
	CatalogCacheTTL time.Duration

	// AdminWriteLimit caps mutating admin API requests per client per
	// minute. Zero disables the limit.
	AdminWriteLimit int
}

var defaults = map[string]any{
	"APP_HOST": "0.0.0.0",
	"APP_PORT": "8080",
	"APP_ENV":  "development",

	"POSTGRES_HOST":     "localhost",
	"POSTGRES_PORT":     "5432",
	"POSTGRES_USER":     "toolshop",
	"POSTGRES_PASSWORD": "changeme",
	"POSTGRES_DB":       "toolshop",

	"VALKEY_HOST":     "localhost",
	"VALKEY_PORT":     "6379",
	"VALKEY_PASSWORD": "",

	"CATALOG_CACHE_TTL": 60 * time.Second,
	"ADMIN_WRITE_LIMIT": 120,
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an optional config file (any format viper reads,
// keys named like the environment variables). Environment variables take
// precedence over the file.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{
		Host: v.GetString("APP_HOST"),
		Port: v.GetString("APP_PORT"),
		Env:  v.GetString("APP_ENV"),

		DBHost:     v.GetString("POSTGRES_HOST"),
		DBPort:     v.GetString("POSTGRES_PORT"),
		DBUser:     v.GetString("POSTGRES_USER"),
		DBPassword: v.GetString("POSTGRES_PASSWORD"),
		DBName:     v.GetString("POSTGRES_DB"),

		ValkeyHost:     v.GetString("VALKEY_HOST"),
		ValkeyPort:     v.GetString("VALKEY_PORT"),
		ValkeyPassword: v.GetString("VALKEY_PASSWORD"),

		CatalogCacheTTL: v.GetDuration("CATALOG_CACHE_TTL"),
		AdminWriteLimit: v.GetInt("ADMIN_WRITE_LIMIT"),
	}

	if cfg.CatalogCacheTTL <= 0 {
		return nil, fmt.Errorf("CATALOG_CACHE_TTL must be positive, got %q", v.GetString("CATALOG_CACHE_TTL"))
	}
	if cfg.AdminWriteLimit < 0 {
		return nil, fmt.Errorf("ADMIN_WRITE_LIMIT must not be negative, got %d", cfg.AdminWriteLimit)
	}
	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}
