package notify

import (
	"context"
	"time"
)

// withRetry runs fn up to attempts times, sleeping base, 2*base, 4*base...
// between failures. Returns the last error when every attempt fails, or the
// context error when the context ends first.
func withRetry(ctx context.Context, attempts int, base time.Duration, fn func(context.Context) error) error {
	var lastErr error
	delay := base
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return lastErr
}
