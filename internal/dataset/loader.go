// ABOUTME: Loader owns the process-wide wage table
// ABOUTME: Loads lazily once, swaps atomically on reload, clears on invalidate
package dataset

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Loader reads a Source into a Table on first use and keeps it until
// Invalidate or Reload. Readers never block on a table that is already loaded.
type Loader struct {
	source  Source
	logger  *zap.Logger
	timeout time.Duration

	mu      sync.Mutex // serializes reads of the source
	current atomic.Pointer[Table]
}

// Option configures a Loader
type Option func(*Loader)

// WithLogger sets the logger used for load events
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithTimeout bounds each read of the source
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		l.timeout = d
	}
}

// NewLoader creates a loader for src. Nothing is read until Load is called.
func NewLoader(src Source, opts ...Option) *Loader {
	l := &Loader{
		source: src,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Source returns the source this loader reads from
func (l *Loader) Source() Source {
	return l.source
}

// Load returns the cached table, reading the source if nothing is cached.
// Concurrent first calls read the source once.
func (l *Loader) Load(ctx context.Context) (*Table, error) {
	if t := l.current.Load(); t != nil {
		return t, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if t := l.current.Load(); t != nil {
		return t, nil
	}

	t, err := l.read(ctx)
	if err != nil {
		return nil, err
	}
	l.current.Store(t)
	return t, nil
}

// Reload reads the source into a new table and swaps it in. On failure the
// previously cached table, if any, stays in place.
func (l *Loader) Reload(ctx context.Context) (*Table, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, err := l.read(ctx)
	if err != nil {
		return nil, err
	}
	l.current.Store(t)
	return t, nil
}

// Invalidate drops the cached table; the next Load reads the source again
func (l *Loader) Invalidate() {
	l.current.Store(nil)
	l.logger.Debug("dataset cache invalidated", zap.String("source", l.source.String()))
}

// Cached returns the current table without loading, or nil
func (l *Loader) Cached() *Table {
	return l.current.Load()
}

func (l *Loader) read(ctx context.Context) (*Table, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	start := time.Now()
	records, err := l.source.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrDataUnavailable) {
			err = unavailable(l.source.String(), err, "read failed")
		}
		l.logger.Error("dataset load failed",
			zap.String("source", l.source.String()),
			zap.Error(err))
		return nil, err
	}
	if len(records) == 0 {
		return nil, unavailable(l.source.String(), nil, "dataset contains no rows")
	}

	t := NewTable(l.source.String(), records)
	l.logger.Info("dataset loaded",
		zap.String("source", t.Source()),
		zap.Int("rows", t.Len()),
		zap.Duration("elapsed", time.Since(start)))

	byArea, byState := duplicateKeys(records)
	if byArea > 0 {
		l.logger.Warn("dataset has repeated occupation/area rows; lookups use the first in storage order",
			zap.Int("duplicates", byArea))
	}
	if byState > 0 {
		l.logger.Debug("state lookups match several rows per occupation; the first in storage order is shown",
			zap.Int("state_overlaps", byState))
	}
	return t, nil
}
