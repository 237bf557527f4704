package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ItsGosho/hydrachain-explorer-requester/explorer"
)

// EnvPrefix prefixes every environment override, e.g. HYDRA_EXPLORER_HTTP_TIMEOUT
const EnvPrefix = "HYDRA_EXPLORER"

// Defaults of the explorer client
const (
	DefaultDomain   = explorer.DefaultDomain
	DefaultBasePath = explorer.DefaultBasePath
	DefaultTimeout  = explorer.DefaultTimeout
	DefaultPoolSize = explorer.DefaultPoolSize
	DefaultPageSize = explorer.DefaultPageSize
)

// Logging defaults
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

// Load loads the configuration from file and environment.
// An explicit configPath must exist; otherwise the standard locations are
// searched and defaults are used when none has a config file.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".hydra-explorer"))
		}

		v.AddConfigPath("/etc/hydra-explorer/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && configPath == "":
			// defaults and environment only
		case configPath != "" && errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("config file not found: %w", err)
		default:
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when nothing is configured
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	// defaults always decode
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Explorer defaults
	v.SetDefault("explorer.domain", DefaultDomain)
	v.SetDefault("explorer.base_path", DefaultBasePath)
	v.SetDefault("explorer.user_agent", "")

	// HTTP defaults
	v.SetDefault("http.timeout", DefaultTimeout)
	v.SetDefault("http.retries", 0)
	v.SetDefault("http.pool_size", DefaultPoolSize)

	v.SetDefault("pagination.page_size", DefaultPageSize)

	// Logging defaults
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Explorer.Domain == "" {
		return fmt.Errorf("explorer.domain is required")
	}
	if !strings.HasPrefix(cfg.Explorer.Domain, "http://") && !strings.HasPrefix(cfg.Explorer.Domain, "https://") {
		return fmt.Errorf("explorer.domain must start with http:// or https://: %s", cfg.Explorer.Domain)
	}

	if cfg.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive: %s", cfg.HTTP.Timeout)
	}
	if cfg.HTTP.Retries < 0 {
		return fmt.Errorf("http.retries must not be negative: %d", cfg.HTTP.Retries)
	}
	if cfg.HTTP.PoolSize <= 0 {
		return fmt.Errorf("http.pool_size must be positive: %d", cfg.HTTP.PoolSize)
	}

	if cfg.Pagination.PageSize <= 0 {
		return fmt.Errorf("pagination.page_size must be positive: %d", cfg.Pagination.PageSize)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	for name, expression := range cfg.Filter {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filter %q has an empty expression", name)
		}
	}

	return nil
}
