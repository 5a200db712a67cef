package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/arloliu/seating/internal/logging"
	"github.com/arloliu/seating/internal/metrics"
	"github.com/arloliu/seating/types"
)

// Badger stores records in a badger database.
type Badger struct {
	db           *badger.DB
	logger       types.Logger
	metrics      types.StoreMetrics
	dataDir      string
	maxRetries   int
	memTableSize int64
	gcEnabled    bool
	gcTicker     *time.Ticker
	gcStopCh     chan struct{}
	gcWg         sync.WaitGroup
	closeOnce    sync.Once
}

// Compile-time assertion that Badger implements Store.
var _ types.Store = (*Badger)(nil)

// NewBadger opens a badger-backed store.
//
// Parameters:
//   - opts: Optional configuration (WithDataDir, WithLogger, WithMetrics, ...)
//
// Returns:
//   - *Badger: Open store; call Close when done
//   - error: Open failure
//
// Example:
//
//	st, err := store.NewBadger(store.WithDataDir("/var/lib/seatd"))
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
func NewBadger(opts ...Option) (*Badger, error) {
	b := &Badger{
		maxRetries:   DefaultMaxTxnRetries,
		memTableSize: DefaultMemTableSize,
		gcEnabled:    true,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = logging.NewNop()
	}
	if b.metrics == nil {
		b.metrics = metrics.NewNop()
	}
	if b.maxRetries < 0 {
		b.maxRetries = 0
	}

	var badgerOpts badger.Options
	if b.dataDir == "" {
		badgerOpts = badger.DefaultOptions("").
			WithInMemory(true)
		b.gcEnabled = false
	} else {
		if err := os.MkdirAll(b.dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data dir: %w", err)
		}
		badgerOpts = badger.DefaultOptions(filepath.Join(b.dataDir, "seating")).
			WithCompression(options.Snappy)
	}
	badgerOpts = badgerOpts.
		WithLogger(newBadgerLogger(b.logger)).
		// The default INFO logging is a bit verbose
		WithLoggingLevel(badger.WARNING).
		WithMemTableSize(b.memTableSize)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}
	b.db = db

	if b.gcEnabled {
		b.gcTicker = time.NewTicker(DefaultGCInterval)
		b.gcStopCh = make(chan struct{})
		b.gcWg.Add(1)
		go b.valueLogGC(b.gcTicker, b.gcStopCh)
	}

	return b, nil
}

func (b *Badger) valueLogGC(t *time.Ticker, stop <-chan struct{}) {
	defer b.gcWg.Done()
	for {
		select {
		case <-t.C:
			for {
				err := b.db.RunValueLogGC(0.5)
				if err != nil {
					if !errors.Is(err, badger.ErrNoRewrite) {
						b.logger.Warn("value log GC failed", "error", err)
					}

					break
				}
			}
		case <-stop:
			return
		}
	}
}

// Close stops background GC and closes the database.
func (b *Badger) Close() error {
	var err error
	b.closeOnce.Do(func() {
		if b.gcTicker != nil {
			b.gcTicker.Stop()
			close(b.gcStopCh)
			b.gcWg.Wait()
		}
		err = b.db.Close()
	})

	return err
}

// View runs fn against a read-only snapshot.
func (b *Badger) View(ctx context.Context, fn func(r types.Reader) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	defer func() {
		b.metrics.RecordStoreOperationDuration("view", time.Since(start).Seconds())
	}()

	return b.db.View(func(txn *badger.Txn) error {
		return fn(&badgerTxn{txn: txn})
	})
}

// Update runs fn in a read-write transaction.
//
// A commit conflict re-runs fn against a fresh snapshot, up to the configured
// retry budget; after that the conflict is reported as types.ErrTransient.
// Errors returned by fn abort the transaction without retry.
func (b *Badger) Update(ctx context.Context, fn func(tx types.Txn) error) error {
	start := time.Now()
	defer func() {
		b.metrics.RecordStoreOperationDuration("update", time.Since(start).Seconds())
	}()

	var lastErr error
	for attempt := 0; attempt <= b.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := b.db.Update(func(txn *badger.Txn) error {
			return fn(&badgerTxn{txn: txn})
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}

		b.metrics.RecordTxnConflict()
		b.logger.Debug("transaction conflict, retrying", "attempt", attempt+1)
		lastErr = err
	}

	return fmt.Errorf("%w after %d attempts: %v", types.ErrTransient, b.maxRetries+1, lastErr)
}

// Batch stages writes with fn and commits them in one write-only transaction.
func (b *Badger) Batch(ctx context.Context, fn func(w types.Writer) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	defer func() {
		b.metrics.RecordStoreOperationDuration("batch", time.Since(start).Seconds())
	}()

	return b.db.Update(func(txn *badger.Txn) error {
		return fn(&badgerWriter{txn: txn})
	})
}

// badgerTxn adapts a badger transaction to types.Txn.
type badgerTxn struct {
	txn *badger.Txn
}

func (t *badgerTxn) Get(key string) ([]byte, error) {
	item, err := t.txn.Get([]byte(key))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, types.ErrNotFound
		}

		return nil, err
	}

	return item.ValueCopy(nil)
}

func (t *badgerTxn) Scan(prefix string, fn func(key string, value []byte) error) error {
	p := []byte(prefix)
	opts := badger.DefaultIteratorOptions
	opts.Prefix = p
	it := t.txn.NewIterator(opts)
	defer it.Close()

	for it.Seek(p); it.ValidForPrefix(p); it.Next() {
		item := it.Item()
		value, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		if err := fn(string(item.KeyCopy(nil)), value); err != nil {
			return err
		}
	}

	return nil
}

func (t *badgerTxn) Set(key string, value []byte) error {
	return t.txn.Set([]byte(key), value)
}

func (t *badgerTxn) Delete(key string) error {
	return t.txn.Delete([]byte(key))
}

// badgerWriter exposes only the write half so batches cannot read.
type badgerWriter struct {
	txn *badger.Txn
}

func (w *badgerWriter) Set(key string, value []byte) error {
	return w.txn.Set([]byte(key), value)
}

func (w *badgerWriter) Delete(key string) error {
	return w.txn.Delete([]byte(key))
}
