package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Explorer   ExplorerConfig   `mapstructure:"explorer"`
	HTTP       HTTPConfig       `mapstructure:"http"`
	Pagination PaginationConfig `mapstructure:"pagination"`
	Filter     FilterConfig     `mapstructure:"filter"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ExplorerConfig holds the explorer endpoint location
type ExplorerConfig struct {
	Domain    string `mapstructure:"domain"`
	BasePath  string `mapstructure:"base_path"`
	UserAgent string `mapstructure:"user_agent"`
}

// HTTPConfig tunes the transport
type HTTPConfig struct {
	Timeout  time.Duration `mapstructure:"timeout"`
	Retries  int           `mapstructure:"retries"`
	PoolSize int           `mapstructure:"pool_size"`
}

// PaginationConfig contains iterator settings
type PaginationConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// FilterConfig contains named filter expressions, usable as --filter @name
type FilterConfig map[string]string

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
