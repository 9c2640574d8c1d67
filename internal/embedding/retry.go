package embedding

import (
	"context"
	"errors"
	"time"

	"github.com/jonathan/career-pathfinder/internal/llm"
)

type retrying struct {
	inner    Embedder
	provider Provider
	timeout  time.Duration
	retry    llm.RetryConfig
}

// WithRetry bounds every call to inner by timeout and retries transient
// failures. A zero timeout uses DefaultTimeout. Final failures are returned
// as *UnavailableError.
func WithRetry(inner Embedder, provider Provider, timeout time.Duration, retry llm.RetryConfig) Embedder {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &retrying{inner: inner, provider: provider, timeout: timeout, retry: retry}
}

func (r *retrying) Embed(ctx context.Context, text string) ([]float32, error) {
	var vec []float32
	err := llm.Retry(ctx, r.retry, string(r.provider)+" embedding", func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		v, err := r.inner.Embed(callCtx, text)
		if err != nil {
			return err
		}
		if len(v) == 0 {
			return errors.New("empty embedding returned")
		}
		vec = v
		return nil
	})
	if err != nil {
		return nil, &UnavailableError{Provider: r.provider, Cause: err}
	}
	return vec, nil
}

func (r *retrying) Close() error {
	return Close(r.inner)
}
