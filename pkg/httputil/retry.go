package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a failure as transient. [Retry] attempts the
// operation again only when the error unwraps to this type; anything
// else is treated as permanent and returned as-is.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry runs fn up to attempts times, sleeping delay between tries and
// doubling it after each failure. Permanent errors abort the loop, and
// a cancelled context wins over any remaining attempts.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)

	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !errors.As(err, new(*RetryableError)) || attempt == attempts {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
}

// RetryWithBackoff calls [Retry] with the defaults used across the
// module: three attempts starting at a one second delay.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, time.Second, fn)
}
