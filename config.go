package seating

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arloliu/seating/internal/lifecycle"
	"github.com/arloliu/seating/store"
)

// StoreConfig configures the badger store opened by the daemon.
type StoreConfig struct {
	// DataDir is the badger directory. Empty runs in memory (records are lost on exit).
	DataDir string `yaml:"dataDir" split_words:"true"`

	// MaxTxnRetries bounds how often a conflicting transaction is re-run before
	// the operation fails with a transient error.
	MaxTxnRetries int `yaml:"maxTxnRetries" split_words:"true"`
}

// AuditConfig configures the JetStream audit publisher.
type AuditConfig struct {
	// Enabled turns on publishing; NATSURL must then be set.
	Enabled bool `yaml:"enabled"`

	// NATSURL is the NATS server to publish to.
	NATSURL string `yaml:"natsUrl"`

	// Stream is the JetStream stream holding audit records.
	Stream string `yaml:"stream"`

	// SubjectPrefix prefixes every audit subject.
	SubjectPrefix string `yaml:"subjectPrefix" split_words:"true"`

	// MaxAge bounds record retention.
	MaxAge time.Duration `yaml:"maxAge" split_words:"true"`
}

// Config is the configuration for the Engine.
//
// All duration fields accept standard Go duration strings like "5s", "1m".
type Config struct {
	// DefaultMaxSeats is the seat count of tables created without an explicit count.
	DefaultMaxSeats int `yaml:"defaultMaxSeats" split_words:"true"`

	// OperationTimeout bounds every engine operation, including store retries.
	OperationTimeout time.Duration `yaml:"operationTimeout" split_words:"true"`

	// SingleTenantPartition, when set, is used for every scope that names no
	// partition. Deployments running one tournament at a time set it once
	// instead of passing a partition id on every call.
	SingleTenantPartition string `yaml:"singleTenantPartition" split_words:"true"`

	// Store configures the persistent store.
	Store StoreConfig `yaml:"store"`

	// Audit configures the audit publisher.
	Audit AuditConfig `yaml:"audit"`
}

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - Config: Production defaults
func DefaultConfig() Config {
	return Config{
		DefaultMaxSeats:  lifecycle.DefaultMaxSeats,
		OperationTimeout: 5 * time.Second,
		Store: StoreConfig{
			MaxTxnRetries: store.DefaultMaxTxnRetries,
		},
		Audit: AuditConfig{
			Stream:        "SEATING_AUDIT",
			SubjectPrefix: "seating.audit",
			MaxAge:        30 * 24 * time.Hour,
		},
	}
}

// SetDefaults fills in missing configuration values with production defaults.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.DefaultMaxSeats == 0 {
		cfg.DefaultMaxSeats = defaults.DefaultMaxSeats
	}
	if cfg.OperationTimeout == 0 {
		cfg.OperationTimeout = defaults.OperationTimeout
	}
	if cfg.Store.MaxTxnRetries == 0 {
		cfg.Store.MaxTxnRetries = defaults.Store.MaxTxnRetries
	}
	if cfg.Audit.Stream == "" {
		cfg.Audit.Stream = defaults.Audit.Stream
	}
	if cfg.Audit.SubjectPrefix == "" {
		cfg.Audit.SubjectPrefix = defaults.Audit.SubjectPrefix
	}
	if cfg.Audit.MaxAge == 0 {
		cfg.Audit.MaxAge = defaults.Audit.MaxAge
	}
}

// Validate checks configuration constraints and returns error for invalid values.
//
// Hard Validation Rules:
//   - DefaultMaxSeats >= 1
//   - OperationTimeout > 0
//   - Store.MaxTxnRetries >= 0
//   - SingleTenantPartition is a concrete partition id (no "/", not ALL or a date token)
//   - Audit.NATSURL is set when Audit.Enabled
//
// Returns:
//   - error: Validation error with clear explanation, nil if valid
func (cfg *Config) Validate() error {
	if cfg.DefaultMaxSeats < 1 {
		return fmt.Errorf("DefaultMaxSeats must be >= 1, got %d", cfg.DefaultMaxSeats)
	}
	if cfg.OperationTimeout <= 0 {
		return fmt.Errorf("OperationTimeout must be > 0, got %v", cfg.OperationTimeout)
	}
	if cfg.Store.MaxTxnRetries < 0 {
		return fmt.Errorf("Store.MaxTxnRetries must be >= 0, got %d", cfg.Store.MaxTxnRetries)
	}
	if p := cfg.SingleTenantPartition; p != "" {
		if strings.Contains(p, "/") {
			return fmt.Errorf("SingleTenantPartition %q must not contain '/'", p)
		}
		if NewScope("_", p).IsAggregate() {
			return fmt.Errorf("SingleTenantPartition %q is an aggregate token", p)
		}
	}
	if cfg.Audit.Enabled && cfg.Audit.NATSURL == "" {
		return errors.New("Audit.NATSURL is required when audit is enabled")
	}

	return nil
}

// ValidateWithWarnings checks configuration and logs warnings for non-recommended values.
//
// This is called after Validate() in NewEngine() to provide operator guidance.
//
// Parameters:
//   - logger: Logger instance for warning output
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	if cfg.DefaultMaxSeats > 10 {
		logger.Warn(
			"DefaultMaxSeats is larger than a full-ring poker table",
			"defaultMaxSeats", cfg.DefaultMaxSeats,
			"recommended", "2-10",
		)
	}

	if cfg.OperationTimeout < 500*time.Millisecond {
		logger.Warn(
			"OperationTimeout is very short, transaction retries may not complete",
			"operationTimeout", cfg.OperationTimeout,
			"recommended", "1s or higher",
		)
	}

	if cfg.Store.DataDir == "" {
		logger.Warn("Store.DataDir is empty, records are kept in memory only")
	}
}

// TestConfig returns a configuration for tests: in-memory store, short
// timeouts, no audit publishing.
//
// Returns:
//   - Config: Configuration for tests
//
// Example:
//
//	cfg := seating.TestConfig()
//	eng, err := seating.NewEngine(&cfg, st)
func TestConfig() Config {
	cfg := DefaultConfig()
	cfg.OperationTimeout = 2 * time.Second
	cfg.Store.MaxTxnRetries = 5

	return cfg
}
