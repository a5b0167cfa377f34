package turn

import (
	"context"
	"time"
)

// RetryPolicy bounds one provider call. MaxAttempts counts the first attempt,
// so {MaxAttempts: 2} means one retry. Delay grows linearly: BaseDelay after
// the first failure, 2×BaseDelay after the second, and so on.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	RetryIf     func(error) bool
}

// Retryable reports whether a provider error is worth another attempt:
// rate limiting (429) or a server-side failure (500–599). A missing status
// (network error, no response) is not retryable.
func Retryable(err error) bool {
	status := httpStatus(err)
	return status == 429 || (status >= 500 && status < 600)
}

// Do runs fn up to policy.MaxAttempts times and returns the first success or
// the last failure. It holds no state and is safe for concurrent turns.
func Do[T any](ctx context.Context, policy RetryPolicy, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = 1
	}
	retryIf := policy.RetryIf
	if retryIf == nil {
		retryIf = Retryable
	}

	var lastErr error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		out, err := fn(ctx)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if attempt == policy.MaxAttempts || !retryIf(err) {
			break
		}

		timer := time.NewTimer(policy.BaseDelay * time.Duration(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
	return zero, lastErr
}
