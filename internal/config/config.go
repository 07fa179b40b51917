package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Rate    RateConfig    `mapstructure:"rate"`
}

type ServerConfig struct {
	URL             string `mapstructure:"url"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds"`
	DefaultEndpoint int    `mapstructure:"default_endpoint"`
}

type LoggingConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Level      string `mapstructure:"level"`
	Dir        string `mapstructure:"dir"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

type RateConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

func Load() (*Config, error) {
	var cfg Config

	// Set defaults
	viper.SetDefault("server.timeout_seconds", 30)
	viper.SetDefault("server.default_endpoint", 0)
	viper.SetDefault("logging.enabled", false)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.dir", "./logs")
	viper.SetDefault("logging.file", "skiff.log")
	viper.SetDefault("logging.max_size", 10)
	viper.SetDefault("logging.max_backups", 3)
	viper.SetDefault("logging.max_age", 28)
	viper.SetDefault("logging.compress", true)
	viper.SetDefault("rate.rps", 10.0)
	viper.SetDefault("rate.burst", 5)

	if err := viper.UnmarshalKey("server", &cfg.Server); err != nil {
		return nil, fmt.Errorf("unable to decode server config: %v", err)
	}
	if err := viper.UnmarshalKey("logging", &cfg.Logging); err != nil {
		return nil, fmt.Errorf("unable to decode logging config: %v", err)
	}
	if err := viper.UnmarshalKey("rate", &cfg.Rate); err != nil {
		return nil, fmt.Errorf("unable to decode rate config: %v", err)
	}

	// Validate required fields
	if cfg.Server.URL == "" {
		return nil, fmt.Errorf("server.url is required")
	}
	if !strings.HasPrefix(cfg.Server.URL, "http://") && !strings.HasPrefix(cfg.Server.URL, "https://") {
		return nil, fmt.Errorf("server.url must start with http:// or https://")
	}
	if cfg.Server.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("server.timeout_seconds must be positive")
	}
	if cfg.Server.DefaultEndpoint < 0 {
		return nil, fmt.Errorf("server.default_endpoint must not be negative")
	}
	if cfg.Rate.RPS <= 0 || cfg.Rate.Burst <= 0 {
		return nil, fmt.Errorf("rate.rps and rate.burst must be positive")
	}

	return &cfg, nil
}
