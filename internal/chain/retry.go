package chain

import (
	"context"
	"time"
)

const (
	defaultRetryBackoff = 100 * time.Millisecond
	maxRetryBackoff     = 10 * time.Second
)

// backoff retries failed node requests that are worth repeating, doubling
// the wait after each attempt up to maxRetryBackoff.
type backoff struct {
	maxRetries int
	base       time.Duration

	// onRetry is called before each wait with the attempt that just failed.
	onRetry func(attempt int, wait time.Duration, err error)
}

func newBackoff(maxRetries int, base time.Duration) backoff {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if base <= 0 {
		base = defaultRetryBackoff
	}
	return backoff{maxRetries: maxRetries, base: base}
}

// wait returns the delay after the given zero-based attempt.
func (b backoff) wait(attempt int) time.Duration {
	d := b.base
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= maxRetryBackoff {
			return maxRetryBackoff
		}
	}
	return d
}

// do runs fn until it succeeds, fails with an error that is not retryable,
// runs out of attempts, or ctx is done.
func (b backoff) do(ctx context.Context, fn func(context.Context) error) error {
	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil || attempt >= b.maxRetries || !retryable(err) {
			return err
		}

		wait := b.wait(attempt)
		if b.onRetry != nil {
			b.onRetry(attempt+1, wait, err)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
