// Package config loads the seatd daemon configuration.
//
// Values are layered: built-in defaults, then the YAML file, then SEATD_*
// environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/seating"
)

// EnvPrefix prefixes every environment override, e.g. SEATD_LISTEN_ADDRESS.
const EnvPrefix = "seatd"

// DefaultConfigPath is read when no config file is given and it exists.
const DefaultConfigPath = "/etc/seatd/seatd.yaml"

type ctxKey string

const configContextKey ctxKey = "seatd.config"

// WithContext returns a copy of ctx carrying cfg.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configContextKey, cfg)
}

// FromContext returns the config stored by WithContext, or nil.
func FromContext(ctx context.Context) *Config {
	cfg, ok := ctx.Value(configContextKey).(*Config)
	if !ok {
		return nil
	}

	return cfg
}

// Config is the seatd daemon configuration.
//
// The embedded engine configuration is inlined, so engine keys sit at the top
// level of the YAML file (defaultMaxSeats, store.dataDir, audit.natsUrl, ...)
// and of the environment (SEATD_DEFAULT_MAX_SEATS, SEATD_STORE_DATA_DIR, ...).
type Config struct {
	seating.Config `yaml:",inline"`

	// ListenAddress is the HTTP API listen address.
	ListenAddress string `yaml:"listenAddress" split_words:"true"`

	// MetricsPath serves Prometheus metrics on the API listener. Empty disables it.
	MetricsPath string `yaml:"metricsPath" split_words:"true"`

	// MetricsNamespace prefixes every exported metric.
	MetricsNamespace string `yaml:"metricsNamespace" split_words:"true"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel" split_words:"true"`

	// CORSOrigins lists allowed browser origins. Empty allows all origins.
	CORSOrigins []string `yaml:"corsOrigins" split_words:"true"`

	// ShutdownTimeout bounds graceful shutdown of the HTTP server.
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" split_words:"true"`
}

// Default returns the daemon defaults.
func Default() *Config {
	return &Config{
		Config:           seating.DefaultConfig(),
		ListenAddress:    ":8080",
		MetricsPath:      "/metrics",
		MetricsNamespace: "seating",
		LogLevel:         "info",
		ShutdownTimeout:  10 * time.Second,
	}
}

// Load builds the configuration from defaults, configFile and the environment.
//
// Parameters:
//   - configFile: YAML file path; empty falls back to DefaultConfigPath when present
//
// Returns:
//   - *Config: Validated configuration
//   - error: Read, parse or validation failure
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		if _, err := os.Stat(DefaultConfigPath); err == nil {
			configFile = DefaultConfigPath
		}
	}
	if configFile != "" {
		buf, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(buf, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("error processing environment: %w", err)
	}

	seating.SetDefaults(&cfg.Config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks daemon settings and the embedded engine configuration.
func (c *Config) Validate() error {
	if c.ListenAddress == "" {
		return errors.New("listenAddress must not be empty")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdownTimeout must be > 0, got %v", c.ShutdownTimeout)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown logLevel %q", c.LogLevel)
	}
	if err := c.Config.Validate(); err != nil {
		return fmt.Errorf("engine config: %w", err)
	}

	return nil
}
