package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks a backend that could not be reached, such as a Redis
// server that refuses connections.
var ErrNetwork = errors.New("network error")

// RetryableError marks a failure worth another attempt.
type RetryableError struct{ Err error }

// Retryable marks err for [RetryWithBackoff]. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err was marked with [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// retryAttempts bounds connection attempts; retryDelay is the wait before
// the second attempt and doubles after that.
const retryAttempts = 3

var retryDelay = time.Second

// RetryWithBackoff calls fn until it succeeds, fails with an error not
// marked retryable, runs out of attempts or ctx ends. It returns the last
// error.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	var err error
	for attempt := range retryAttempts {
		if attempt > 0 {
			wait := time.NewTimer(retryDelay << (attempt - 1))
			select {
			case <-ctx.Done():
				wait.Stop()
				return ctx.Err()
			case <-wait.C:
			}
		}
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
	}
	return err
}
