// Package config provides configuration management.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/hbitsol/sistemaartn/internal/errors"
	"github.com/hbitsol/sistemaartn/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Server contains HTTP server settings
	Server ServerConfig `mapstructure:"server"`

	// Database contains storage settings
	Database DatabaseConfig `mapstructure:"database"`

	// Pricing contains pricing rule settings
	Pricing PricingConfig `mapstructure:"pricing"`

	// Logging contains logging configuration
	Logging logging.Config `mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `mapstructure:"addr"`
}

// DatabaseConfig contains storage settings
type DatabaseConfig struct {
	// Path is the SQLite database file path
	Path string `mapstructure:"path"`

	// Seed loads reference data on startup when true
	Seed bool `mapstructure:"seed"`
}

// PricingConfig contains pricing rule settings
type PricingConfig struct {
	// RulesPath is the path to the pricing rule table JSON file
	RulesPath string `mapstructure:"rules_path"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Database: DatabaseConfig{
			Path: "sistemaartn.db",
			Seed: true,
		},
		Pricing: PricingConfig{
			RulesPath: "pricing_rules.json",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load reads configuration from the given file, falling back to defaults
// for unset keys. Environment variables prefixed with ARTN_ override file
// values (ARTN_SERVER_ADDR, ARTN_DATABASE_PATH, ...).
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("database.path", "sistemaartn.db")
	v.SetDefault("database.seed", true)
	v.SetDefault("pricing.rules_path", "pricing_rules.json")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	v.SetEnvPrefix("ARTN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(errors.TypeConfig, "reading config file", err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "unmarshalling config", err)
	}

	return cfg, nil
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
