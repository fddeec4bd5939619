package retry

import (
	"context"
	"time"
)

// Policy describes a bounded retry loop: how many attempts to make, how
// long to wait between them, and which errors are worth retrying.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// Backoff returns the wait before the given attempt. The argument is
	// the 1-based number of the attempt about to run, so the first call
	// receives 2.
	Backoff func(attempt int) time.Duration

	// Retryable reports whether the error from a failed attempt is
	// transient. A nil Retryable retries every error.
	Retryable func(err error) bool

	// Sleep overrides the wait implementation. Tests inject a recorder
	// here; production code leaves it nil for a context-aware sleep.
	Sleep func(ctx context.Context, d time.Duration) error
}

// LinearBackoff returns a backoff of (attempt-1) × step: the second attempt
// waits one step, the third two, and so on.
func LinearBackoff(step time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		if attempt < 2 {
			return 0
		}
		return time.Duration(attempt-1) * step
	}
}

// ExponentialBackoff returns a backoff that doubles from base on every
// attempt, capped at max: the second attempt waits base, the third 2×base,
// and so on.
func ExponentialBackoff(base, max time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		if attempt < 2 {
			return 0
		}
		d := base << uint(attempt-2)
		if d > max || d <= 0 {
			return max
		}
		return d
	}
}

// Do runs fn under the policy. It returns nil as soon as an attempt
// succeeds, the last error once attempts are exhausted or a non-retryable
// error occurs, and the context error if the wait is interrupted.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if attempt > 1 && p.Backoff != nil {
			if err := sleep(ctx, p.Backoff(attempt)); err != nil {
				return err
			}
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(lastErr) {
			return lastErr
		}
	}

	return lastErr
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
