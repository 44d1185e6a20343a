// Package config loads the server configuration from defaults, an optional
// YAML file (adminapi.yaml in the working directory or /etc/xroad) and
// ADMINAPI_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port            int
	ShutdownTimeout time.Duration

	GlobalConfPath  string
	RefreshInterval time.Duration

	LogLevel string

	CORSAllowedOrigins []string
}

func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 4000)
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("globalconf.path", "/etc/xroad/globalconf/snapshot.json")
	v.SetDefault("globalconf.refresh_interval", "60s")
	v.SetDefault("log.level", "info")
	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetConfigName("adminapi")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/xroad")

	v.SetEnvPrefix("ADMINAPI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// No file is fine, defaults and env cover everything.
	}

	cfg := &Config{
		Port:               v.GetInt("server.port"),
		ShutdownTimeout:    v.GetDuration("server.shutdown_timeout"),
		GlobalConfPath:     v.GetString("globalconf.path"),
		RefreshInterval:    v.GetDuration("globalconf.refresh_interval"),
		LogLevel:           v.GetString("log.level"),
		CORSAllowedOrigins: v.GetStringSlice("cors.allowed_origins"),
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid server.port %d", cfg.Port)
	}
	if cfg.RefreshInterval <= 0 {
		return nil, fmt.Errorf("invalid globalconf.refresh_interval %s", cfg.RefreshInterval)
	}
	return cfg, nil
}
