package cache

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks an error as transient so [RetryWithBackoff]
// attempts the operation again. Backend constructors wrap their
// connection probes with [Retryable]; everything else fails fast.
type RetryableError struct{ Err error }

// Error returns the message of the wrapped error.
func (e *RetryableError) Error() string { return e.Err.Error() }

// Unwrap returns the wrapped error.
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err as retryable. A nil err stays nil, so callers
// can wrap a call's result unconditionally.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err unwraps to a [RetryableError].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff runs fn until it succeeds, returns a permanent
// error, or exhausts three attempts. The wait starts at one second and
// doubles between tries; a cancelled ctx ends the wait early.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	const maxAttempts = 3
	backoff := time.Second

	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) || attempt == maxAttempts {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
			backoff *= 2
		}
	}
}
