package store

import (
	"time"

	"github.com/arloliu/seating/types"
)

// Default tuning values.
const (
	DefaultMaxTxnRetries = 3
	DefaultGCInterval    = 5 * time.Minute
	DefaultMemTableSize  = 64 << 20
)

// Option configures a Badger store.
type Option func(*Badger)

// WithDataDir specifies the data directory to use for storage.
// An empty directory keeps the database in memory.
func WithDataDir(dataDir string) Option {
	return func(b *Badger) {
		b.dataDir = dataDir
	}
}

// WithLogger specifies the logger used for store and badger messages.
func WithLogger(logger types.Logger) Option {
	return func(b *Badger) {
		b.logger = logger
	}
}

// WithMetrics specifies the collector for store latency and conflict metrics.
func WithMetrics(metrics types.StoreMetrics) Option {
	return func(b *Badger) {
		b.metrics = metrics
	}
}

// WithMaxTxnRetries sets how many times a conflicting transaction is re-run
// before Update gives up with types.ErrTransient.
func WithMaxTxnRetries(n int) Option {
	return func(b *Badger) {
		b.maxRetries = n
	}
}

// WithGC specifies whether value log garbage collection runs for disk-backed stores.
func WithGC(enabled bool) Option {
	return func(b *Badger) {
		b.gcEnabled = enabled
	}
}

// WithMemTableSize specifies the memtable size in bytes.
func WithMemTableSize(size int64) Option {
	return func(b *Badger) {
		b.memTableSize = size
	}
}
