package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNetwork marks a Redis or MongoDB failure that is worth retrying:
	// refused connections, timeouts, a closed pool. Runner treats it as a
	// miss and recomputes the simulation.
	ErrNetwork = errors.New("cache backend unreachable")

	// ErrUnknownBackend is returned by [Open] when the configured backend is
	// not one of file, redis, mongo or none.
	ErrUnknownBackend = errors.New("unknown cache backend")
)

// initialBackoff is the wait after the first failed backend call.
var initialBackoff = time.Second

// backendAttempts bounds how often one cache call reaches the backend.
const backendAttempts = 3

// RetryableError tags a backend failure that [RetryWithBackoff] may repeat.
// Misses and decode failures are never tagged.
type RetryableError struct{ Err error }

// Retryable tags err for retry. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether any error in err's chain was tagged by [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff runs one backend call, repeating it while it fails with a
// retryable error. The wait doubles after each failure and ends early when
// ctx is done, so a cancelled search never blocks on a dead Redis.
func RetryWithBackoff(ctx context.Context, call func() error) error {
	wait := initialBackoff
	for attempt := 1; ; attempt++ {
		err := call()
		if err == nil || !IsRetryable(err) || attempt == backendAttempts {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		wait *= 2
	}
}
