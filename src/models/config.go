package models

// MConfig Structure
type MConfig struct {
	Name     string         `yaml:"name"`
	Host     string         `yaml:"host"`
	Port     int            `yaml:"port"`
	LogLevel string         `yaml:"log_level"`
	APIKey   string         `yaml:"api_key"` // Optional, guards mutating endpoints
	Storage  MStorageConfig `yaml:"storage"`
	Cache    MCacheConfig   `yaml:"cache"`
	History  MHistoryConfig `yaml:"history"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"`
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
}

type MCacheConfig struct {
	Backend        string `yaml:"backend"` // "memory" or "redis"
	TTLSeconds     int    `yaml:"ttl_seconds"`
	SweepThreshold int    `yaml:"sweep_threshold"`
	MaxEntries     int    `yaml:"max_entries"` // 0 = unbounded (sweep only)
	RedisAddr      string `yaml:"redis_addr"`
	RedisPassword  string `yaml:"redis_password"`
	RedisDB        int    `yaml:"redis_db"`
}

type MHistoryConfig struct {
	LookbackDays int    `yaml:"lookback_days"`
	DefaultLimit int    `yaml:"default_limit"`
	MaxLimit     int    `yaml:"max_limit"`
	SeedMode     string `yaml:"seed_mode"` // "deterministic" or "ephemeral"
}
