package database

import (
	"context"
	"time"

	"github.com/locvowork/task_management_sample/internal/logger"
)

// RetryPolicy controls how a failed save is retried. The zero value tries
// once.
type RetryPolicy struct {
	MaxRetries int
	Backoff    func(attempt int) time.Duration
}

// ExponentialBackoff waits initial * 2^(attempt-1) before retry attempt.
func ExponentialBackoff(initial time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		if attempt <= 1 {
			return initial
		}
		return initial * time.Duration(1<<(attempt-1))
	}
}

// do runs fn until it succeeds, the retries are used up or ctx is done.
func (p RetryPolicy) do(ctx context.Context, op string, fn func() error) error {
	err := fn()
	for attempt := 1; err != nil && attempt <= p.MaxRetries; attempt++ {
		logger.WarnLog(ctx, "%s failed (attempt %d of %d): %v", op, attempt, p.MaxRetries+1, err)
		var wait time.Duration
		if p.Backoff != nil {
			wait = p.Backoff(attempt)
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
		err = fn()
	}
	return err
}
