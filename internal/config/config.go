// Package config loads the application configuration from file,
// environment, and defaults via Viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/nutrigenomics-server/internal/domain"
)

// Manager loads and validates the application configuration.
type Manager struct {
	config *domain.Config
}

// NewManager creates a manager and loads configuration immediately.
func NewManager() (*Manager, error) {
	m := &Manager{}
	if err := m.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return m, nil
}

// loadConfig merges file, environment, and defaults. The config file
// is optional; NUTRI_-prefixed environment variables override it.
func (m *Manager) loadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/nutrigenomics-server/")

	viper.SetEnvPrefix("NUTRI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	m.setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &domain.Config{}
	if err := viper.Unmarshal(config); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")
	viper.SetDefault("server.rate_limit", 10.0)
	viper.SetDefault("server.rate_burst", 20)

	// Storage defaults: embedded SQLite keeps single-node setups
	// dependency-free.
	viper.SetDefault("storage.driver", "sqlite")
	viper.SetDefault("storage.sqlite_path", "./data/nutrigenomics.db")

	// Database (postgres driver) defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.database", "nutrigenomics")
	viper.SetDefault("database.username", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.ssl_mode", "disable")
	viper.SetDefault("database.max_conns", 25)
	viper.SetDefault("database.min_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", "5m")
	viper.SetDefault("database.conn_max_idle_time", "1m")
	viper.SetDefault("database.migrations_path", "./migrations")

	// Cache defaults
	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.size", 256)
	viper.SetDefault("cache.redis_url", "redis://localhost:6379")
	viper.SetDefault("cache.ttl", "24h")

	// Upload defaults
	viper.SetDefault("upload.directory", "./data/uploads")
	viper.SetDefault("upload.max_size_bytes", 52428800) // 50 MB
	viper.SetDefault("upload.allowed_extensions", []string{".txt", ".csv", ".tsv", ".zip"})

	// No usable default exists for the encryption key, but viper only
	// resolves AutomaticEnv values for keys it already knows about, so
	// the empty default is what lets NUTRI_ENCRYPTION_KEY through.
	viper.SetDefault("encryption.key", "")

	// Meal plan defaults; disabled until an API key is configured.
	viper.SetDefault("meal_plan.base_url", "https://api.groq.com/openai/v1")
	viper.SetDefault("meal_plan.api_key", "")
	viper.SetDefault("meal_plan.model", "llama-3.3-70b-versatile")
	viper.SetDefault("meal_plan.timeout", "60s")
	viper.SetDefault("meal_plan.rate_limit", 0.5)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output", "stdout")
}

// GetConfig returns the complete configuration.
func (m *Manager) GetConfig() *domain.Config {
	return m.config
}

// Reload reloads the configuration.
func (m *Manager) Reload() error {
	return m.loadConfig()
}

// Validate checks the configuration for values that would fail at
// runtime.
func (m *Manager) Validate() error {
	config := m.config

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}
	if config.Server.RateLimit <= 0 {
		return fmt.Errorf("server rate limit must be positive")
	}

	switch config.Storage.Driver {
	case "sqlite":
		if config.Storage.SQLitePath == "" {
			return fmt.Errorf("sqlite path is required for the sqlite driver")
		}
	case "postgres":
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if config.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
		if config.Database.Username == "" {
			return fmt.Errorf("database username is required")
		}
	default:
		return fmt.Errorf("unknown storage driver: %s", config.Storage.Driver)
	}

	switch config.Cache.Backend {
	case "memory":
		if config.Cache.Size <= 0 {
			return fmt.Errorf("cache size must be positive")
		}
	case "redis":
		if config.Cache.RedisURL == "" {
			return fmt.Errorf("redis URL is required for the redis cache backend")
		}
	default:
		return fmt.Errorf("unknown cache backend: %s", config.Cache.Backend)
	}

	if config.Encryption.Key == "" {
		return fmt.Errorf("encryption key is required (64 hex characters)")
	}
	if config.Upload.MaxSizeBytes <= 0 {
		return fmt.Errorf("upload max size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(config.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	return nil
}

// MealPlanEnabled reports whether the external meal planner is
// configured.
func (m *Manager) MealPlanEnabled() bool {
	return m.config.MealPlan.APIKey != ""
}
