// internal/rednote/retry.go
package rednote

import (
	"context"

	"github.com/xkilldash9x/rednote-cli/internal/browser/humanoid"
	"github.com/xkilldash9x/rednote-cli/internal/config"
)

// RetryPolicy bounds one retry layer.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     humanoid.Range
}

// PolicyFromConfig converts a configured retry layer.
func PolicyFromConfig(c config.RetryConfig) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: c.MaxAttempts,
		Backoff:     humanoid.Between(c.BackoffMin, c.BackoffMax),
	}
}

// Do calls fn until it succeeds or the policy's attempts are used up,
// pausing for a randomized backoff between attempts. attempt is 1-based.
// Cancellation of ctx ends the loop at once and is returned unwrapped;
// otherwise an exhausted budget yields an *AttemptError.
func Do(ctx context.Context, pacer humanoid.Pacer, p RetryPolicy, fn func(ctx context.Context, attempt int) error) error {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(ctx, attempt)
		if lastErr == nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if attempt < maxAttempts {
			if err := pacer.Pause(ctx, p.Backoff); err != nil {
				return err
			}
		}
	}
	return &AttemptError{Attempts: maxAttempts, Err: lastErr}
}
