// Package config loads engine configuration from environment variables
// and an optional YAML config file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/jonesrussell/webscout/internal/logger"
)

// Default configuration values.
const (
	defaultRequestTimeoutSec = 20
	defaultDomainCacheSize   = 400
	defaultLogLevel          = "info"
	defaultLogEncoding       = "console"
)

// Config is the engine configuration consumed at composition time.
type Config struct {
	Fetch   FetchConfig   `mapstructure:"fetch"   yaml:"fetch"`
	Robots  RobotsConfig  `mapstructure:"robots"  yaml:"robots"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// FetchConfig holds the fetch-layer settings.
type FetchConfig struct {
	UserAgent           string        `mapstructure:"user_agent"            yaml:"user_agent"`
	RequestTimeout      time.Duration `mapstructure:"request_timeout"       yaml:"request_timeout"`
	SSLVerify           bool          `mapstructure:"ssl_verify"            yaml:"ssl_verify"`
	UseBrowserPromotion bool          `mapstructure:"use_browser_promotion" yaml:"use_browser_promotion"`
	HeadlessScript      string        `mapstructure:"crawling_headless_script" yaml:"crawling_headless_script"`
	FullScript          string        `mapstructure:"crawling_full_script"  yaml:"crawling_full_script"`
	ServerPort          int           `mapstructure:"crawling_server_port"  yaml:"crawling_server_port"`
	ChromePath          string        `mapstructure:"chrome_path"           yaml:"chrome_path"`
}

// RobotsConfig holds the robots.txt policy settings.
type RobotsConfig struct {
	RespectRobotsTxt bool `mapstructure:"respect_robots_txt" yaml:"respect_robots_txt"`
	DomainCacheSize  int  `mapstructure:"domain_cache_size"  yaml:"domain_cache_size"`
}

// LoggingConfig holds the logger settings.
type LoggingConfig struct {
	Level       string `mapstructure:"level"       yaml:"level"`
	Encoding    string `mapstructure:"encoding"    yaml:"encoding"`
	Development bool   `mapstructure:"development" yaml:"development"`
}

// Initialize configures viper for environment and config-file reading.
// Must be called before Load.
func Initialize() {
	// .env is optional.
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("WEBSCOUT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	// Config file is optional.
	_ = viper.ReadInConfig()
}

// setDefaults sets production-safe default values.
func setDefaults() {
	viper.SetDefault("fetch", map[string]any{
		"user_agent":               "",
		"request_timeout":          defaultRequestTimeoutSec * time.Second,
		"ssl_verify":               true,
		"use_browser_promotion":    true,
		"crawling_headless_script": "",
		"crawling_full_script":     "",
		"crawling_server_port":     0,
		"chrome_path":              "",
	})

	viper.SetDefault("robots", map[string]any{
		"respect_robots_txt": true,
		"domain_cache_size":  defaultDomainCacheSize,
	})

	viper.SetDefault("logging", map[string]any{
		"level":       defaultLogLevel,
		"encoding":    defaultLogEncoding,
		"development": false,
	})
}

// Load unmarshals and validates the configuration. Initialize must have
// run first.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	if c.Fetch.RequestTimeout < 0 {
		return fmt.Errorf("fetch.request_timeout must not be negative")
	}
	if c.Fetch.ServerPort < 0 || c.Fetch.ServerPort > 65535 {
		return fmt.Errorf("fetch.crawling_server_port out of range: %d", c.Fetch.ServerPort)
	}
	if c.Robots.DomainCacheSize < 0 {
		return fmt.Errorf("robots.domain_cache_size must not be negative")
	}

	return nil
}

// LoggerConfig maps the logging section onto the logger package's
// configuration type.
func (c *Config) LoggerConfig() *logger.Config {
	return &logger.Config{
		Level:       logger.Level(c.Logging.Level),
		Encoding:    c.Logging.Encoding,
		Development: c.Logging.Development,
	}
}
