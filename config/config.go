// Package config loads the healer configuration from config.yaml and the
// HEALER_* environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	StaticDir       string        `mapstructure:"static_dir"`
	AdminToken      string        `mapstructure:"admin_token"` // empty disables the admin API
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type RelayConfig struct {
	Endpoint string        `mapstructure:"endpoint"` // empty disables the relay
	Timeout  time.Duration `mapstructure:"timeout"`
}

type FieldConfig struct {
	Count int `mapstructure:"count"`
	FPS   int `mapstructure:"fps"`
}

type DetectorConfig struct {
	Cascade string `mapstructure:"cascade"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type SiteConfig struct {
	URL  string `mapstructure:"url"`
	Name string `mapstructure:"name"`
}

// Config is the top-level configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Relay    RelayConfig    `mapstructure:"relay"`
	Field    FieldConfig    `mapstructure:"field"`
	Detector DetectorConfig `mapstructure:"detector"`
	Log      LogConfig      `mapstructure:"log"`
	Site     SiteConfig     `mapstructure:"site"`
}

var defaults = map[string]any{
	"server.address":          ":5000",
	"server.static_dir":       "./static",
	"server.admin_token":      "",
	"server.shutdown_timeout": "10s",
	"database.path":           "./data/healer.db",
	"relay.endpoint":          "",
	"relay.timeout":           "10s",
	"field.count":             100,
	"field.fps":               30,
	"detector.cascade":        "",
	"log.level":               "info",
	"log.file":                "",
	"site.url":                "https://healer.lk",
	"site.name":               "Dr. Umesha Dilhara - The Healer",
}

// Load reads config.yaml from dir, creating the directory and a file with
// the default values on first run. HEALER_SECTION_KEY environment variables
// override the file.
func Load(dir string) (*Config, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating config dir %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix("HEALER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file : %w", err)
		}
		if err := v.SafeWriteConfig(); err != nil {
			return nil, fmt.Errorf("writing config file : %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config to struct : %w", err)
	}
	return &cfg, nil
}
