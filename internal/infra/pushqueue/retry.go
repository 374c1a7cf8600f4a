package pushqueue

import (
	"context"
	"math"
	"time"
)

const defaultMaxRetries = 3

// backoffFor returns the wait before the given zero-based attempt.
func backoffFor(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	return time.Duration(math.Pow(2, float64(attempt-1))) * 100 * time.Millisecond
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
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
