// Package embedding converts role descriptions and profiles into vectors.
//
// Providers are interchangeable behind Embedder. Every provider built by New
// is wrapped with a per-call timeout and retry policy, and reports final
// failures as *UnavailableError.
package embedding

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jonathan/career-pathfinder/internal/llm"
)

// Embedder turns text into a fixed-length vector. Implementations must be
// deterministic for identical text and safe for concurrent use.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Provider names an embedding backend
type Provider string

// Supported providers
const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
	ProviderLocal  Provider = "local"
)

// Default models per provider
const (
	DefaultGeminiModel = "text-embedding-004"
	DefaultOpenAIModel = "text-embedding-3-small"
)

// DefaultTimeout bounds a single embedding call.
const DefaultTimeout = 20 * time.Second

// Config selects and configures an embedding provider
type Config struct {
	Provider Provider
	Model    string
	APIKey   string
	// Dimensions is only used by the local provider.
	Dimensions int
	Timeout    time.Duration
	Retry      llm.RetryConfig
}

// UnavailableError reports that the embedding service could not produce a vector
type UnavailableError struct {
	Provider Provider
	Cause    error
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("embedding unavailable (%s): %v", e.Provider, e.Cause)
	}
	return fmt.Sprintf("embedding unavailable (%s)", e.Provider)
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

// New creates the configured provider wrapped with timeout and retries.
func New(ctx context.Context, cfg Config) (Embedder, error) {
	var (
		inner Embedder
		err   error
	)

	switch cfg.Provider {
	case ProviderGemini:
		inner, err = NewGeminiEmbedder(ctx, cfg.APIKey, cfg.Model)
	case ProviderOpenAI:
		inner, err = NewOpenAIEmbedder(cfg.APIKey, cfg.Model)
	case ProviderLocal, "":
		cfg.Provider = ProviderLocal
		inner = NewHashingEmbedder(cfg.Dimensions)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	return WithRetry(inner, cfg.Provider, cfg.Timeout, cfg.Retry), nil
}

// Close releases resources held by e if it holds any.
func Close(e Embedder) error {
	if closer, ok := e.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
