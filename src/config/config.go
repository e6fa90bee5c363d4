package config

import (
	"fmt"
	"os"

	"price-tracker/src/models"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// Defaults applied by Validate when optional fields are left empty.
const (
	DefaultTTLSeconds     = 300
	DefaultSweepThreshold = 1000
	DefaultLookbackDays   = 30
	DefaultHistoryLimit   = 100
	DefaultMaxLimit       = 1000
)

// -----------------------------------------------------------------------------

// NewConfig creates a new Config instance from a YAML file
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal data into the models struct
	var modelConfig models.MConfig
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: &modelConfig}

	// 3. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation and fills defaults.
func (c *Config) Validate() error {
	// Validate App configuration (Flattened)
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	// Validate Server configuration (Flattened)
	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}

	// Validate Storage configuration
	switch c.Storage.DBType {
	case "postgres":
		if c.Storage.DBConnectionString == "" {
			return fmt.Errorf("database connection string cannot be empty for postgres")
		}
	case "sqlite", "":
		if c.Storage.DBPath == "" {
			return fmt.Errorf("database path cannot be empty for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database type: %s", c.Storage.DBType)
	}

	// Validate Cache configuration
	switch c.Cache.Backend {
	case "redis":
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("redis address cannot be empty for redis cache backend")
		}
	case "memory", "":
		// In-memory needs nothing
	default:
		return fmt.Errorf("unsupported cache backend: %s", c.Cache.Backend)
	}
	if c.Cache.TTLSeconds < 0 {
		return fmt.Errorf("cache ttl cannot be negative")
	}
	if c.Cache.TTLSeconds == 0 {
		c.Cache.TTLSeconds = DefaultTTLSeconds
	}
	if c.Cache.SweepThreshold == 0 {
		c.Cache.SweepThreshold = DefaultSweepThreshold
	}
	if c.Cache.MaxEntries < 0 {
		return fmt.Errorf("cache max entries cannot be negative")
	}

	// Validate History configuration
	if c.History.LookbackDays < 0 {
		return fmt.Errorf("history lookback days cannot be negative")
	}
	if c.History.LookbackDays == 0 {
		c.History.LookbackDays = DefaultLookbackDays
	}
	if c.History.DefaultLimit == 0 {
		c.History.DefaultLimit = DefaultHistoryLimit
	}
	if c.History.MaxLimit == 0 {
		c.History.MaxLimit = DefaultMaxLimit
	}
	if c.History.DefaultLimit < 1 || c.History.DefaultLimit > c.History.MaxLimit {
		return fmt.Errorf("invalid history default limit: %d", c.History.DefaultLimit)
	}
	switch c.History.SeedMode {
	case "", "deterministic", "ephemeral":
	default:
		return fmt.Errorf("unsupported seed mode: %s", c.History.SeedMode)
	}

	return nil
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
