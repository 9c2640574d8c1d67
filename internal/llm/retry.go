package llm

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	defaultMaxRetries  = 3
	defaultInitBackoff = 500 * time.Millisecond
	defaultMaxBackoff  = 10 * time.Second
	backoffFactor      = 2.0
)

// RetryConfig controls retries of transient provider failures. Zero values
// use the package defaults; a negative MaxRetries disables retries.
type RetryConfig struct {
	MaxRetries  int
	InitBackoff time.Duration
	MaxBackoff  time.Duration
}

func (r RetryConfig) effective() (maxRetries int, initBackoff, maxBackoff time.Duration) {
	maxRetries = r.MaxRetries
	if maxRetries == 0 {
		maxRetries = defaultMaxRetries
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	initBackoff = r.InitBackoff
	if initBackoff <= 0 {
		initBackoff = defaultInitBackoff
	}
	maxBackoff = r.MaxBackoff
	if maxBackoff <= 0 {
		maxBackoff = defaultMaxBackoff
	}
	return
}

// Retry calls fn until it succeeds, returns a non-retryable error, or the
// retry budget is spent. Backoff grows exponentially up to MaxBackoff.
func Retry(ctx context.Context, cfg RetryConfig, op string, fn func(ctx context.Context) error) error {
	maxRetries, backoff, maxBackoff := cfg.effective()

	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err = fn(ctx)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !IsRetryable(err) {
			return fmt.Errorf("%s failed: %w", op, err)
		}
		if attempt == maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = time.Duration(float64(backoff) * backoffFactor)
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
	return fmt.Errorf("%s failed after %d retries: %w", op, maxRetries, err)
}

// IsRetryable reports whether err looks like a rate limit or a transient
// server error.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"rate limit", "too many requests", "429", "overloaded",
		"500", "502", "503", "504", "unavailable", "deadline exceeded",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
