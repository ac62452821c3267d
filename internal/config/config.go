// Package config loads application configuration from an optional YAML file
// with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings for the estimator service and CLI.
type Config struct {
	// CatalogBaseURL is the base URL of the external pricing catalog.
	// Empty disables the live pricing tier; every estimate then prices
	// from the fallback table.
	CatalogBaseURL string `yaml:"catalogBaseUrl"`

	// CatalogTimeoutSeconds bounds each outbound catalog read.
	CatalogTimeoutSeconds int `yaml:"catalogTimeoutSeconds"`

	// ListenAddr is the HTTP API listen address.
	ListenAddr string `yaml:"listenAddr"`

	// LogLevel is the minimum zerolog level (trace..panic).
	LogLevel string `yaml:"logLevel"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	return Config{
		CatalogTimeoutSeconds: 10,
		ListenAddr:            ":8080",
		LogLevel:              "info",
	}
}

// Load reads the YAML file at path (skipped when path is empty or the file
// does not exist) and applies VDICOST_* environment overrides on top of the
// defaults.
func Load(path string, logger zerolog.Logger) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			logger.Debug().Str("path", path).Msg("config file not found, using defaults")
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg, logger)

	if cfg.CatalogTimeoutSeconds <= 0 {
		cfg.CatalogTimeoutSeconds = Default().CatalogTimeoutSeconds
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = Default().ListenAddr
	}
	return cfg, nil
}

func applyEnv(cfg *Config, logger zerolog.Logger) {
	if v := os.Getenv("VDICOST_CATALOG_URL"); v != "" {
		cfg.CatalogBaseURL = v
	}
	if v := os.Getenv("VDICOST_CATALOG_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.CatalogTimeoutSeconds = secs
		} else {
			logger.Warn().Str("value", v).Msg("invalid VDICOST_CATALOG_TIMEOUT_SECONDS, keeping previous value")
		}
	}
	if v := os.Getenv("VDICOST_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("VDICOST_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

// CatalogTimeout returns the catalog read timeout as a duration.
func (c Config) CatalogTimeout() time.Duration {
	return time.Duration(c.CatalogTimeoutSeconds) * time.Second
}

// Level parses the configured log level, defaulting to info.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
