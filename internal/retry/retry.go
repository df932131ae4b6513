// ABOUTME: Exponential backoff with jitter for reaching remote databases
// ABOUTME: Used by SQL dataset sources before giving up on a connection
package retry

import (
	"context"
	"math/rand/v2"
	"time"
)

// MaxBackoff caps a single wait
const MaxBackoff = 30 * time.Second

// Backoff returns base * 2^attempt, capped at MaxBackoff, with up to 25%
// jitter either way. Attempts below one wait zero.
func Backoff(base time.Duration, attempt int) time.Duration {
	if attempt <= 0 || base <= 0 {
		return 0
	}
	// keep the shift in range
	if attempt > 30 {
		attempt = 30
	}
	backoff := base * time.Duration(1<<uint(attempt))
	if backoff > MaxBackoff || backoff <= 0 {
		backoff = MaxBackoff
	}
	half := int64(backoff) / 2
	if half <= 0 {
		return backoff
	}
	jitter := time.Duration(rand.Int64N(half)) - backoff/4
	return backoff + jitter
}

// Do calls fn up to attempts times, sleeping Backoff(base, n) between
// calls. It stops early when fn succeeds, when fn's error is marked
// Permanent, or when ctx is done. The last error is returned.
func Do(ctx context.Context, attempts int, base time.Duration, fn func(context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for n := 0; n < attempts; n++ {
		if n > 0 {
			timer := time.NewTimer(Backoff(base, n))
			select {
			case <-ctx.Done():
				timer.Stop()
				return err
			case <-timer.C:
			}
		}

		err = fn(ctx)
		if err == nil {
			return nil
		}
		if p, ok := err.(*permanentError); ok {
			return p.err
		}
		if ctx.Err() != nil {
			return err
		}
	}
	return err
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}
