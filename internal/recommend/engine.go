// Package recommend ranks the next career moves for a profile.
//
// An Engine is built once at startup: it embeds every role of the graph and
// indexes them for keyword fallback. After construction it is read-only and
// safe for concurrent Recommend calls.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jonathan/career-pathfinder/internal/advice"
	"github.com/jonathan/career-pathfinder/internal/careergraph"
	"github.com/jonathan/career-pathfinder/internal/embedding"
	"github.com/jonathan/career-pathfinder/internal/matching"
	"github.com/jonathan/career-pathfinder/internal/metrics"
)

// DefaultAdviceConcurrency bounds parallel advisor calls per request.
const DefaultAdviceConcurrency = 4

// ErrInvalidMaxPaths is returned when fewer than one path is requested.
var ErrInvalidMaxPaths = errors.New("max paths must be at least 1")

// Engine holds the role graph and everything derived from it
type Engine struct {
	graph    *careergraph.Graph
	embedder embedding.Embedder
	advisor  advice.Advisor
	matcher  *matching.Matcher
	keywords *matching.KeywordMatcher
	metrics  *metrics.Metrics

	embedConcurrency  int
	adviceConcurrency int
}

// Option configures an Engine
type Option func(*Engine)

// WithMetrics records outcomes and fallbacks on m
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithEmbedConcurrency bounds parallel embedding calls while precomputing role vectors
func WithEmbedConcurrency(n int) Option {
	return func(e *Engine) { e.embedConcurrency = n }
}

// WithAdviceConcurrency bounds parallel advisor calls per request
func WithAdviceConcurrency(n int) Option {
	return func(e *Engine) { e.adviceConcurrency = n }
}

// NewEngine precomputes role vectors for graph. Failing to embed any role
// is fatal. The graph must not be modified afterwards.
func NewEngine(ctx context.Context, graph *careergraph.Graph, embedder embedding.Embedder, advisor advice.Advisor, opts ...Option) (*Engine, error) {
	if graph == nil {
		return nil, fmt.Errorf("role graph is required")
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	if advisor == nil {
		advisor = advice.StaticAdvisor{}
	}

	e := &Engine{
		graph:             graph,
		embedder:          embedder,
		advisor:           advisor,
		embedConcurrency:  matching.DefaultConcurrency,
		adviceConcurrency: DefaultAdviceConcurrency,
	}
	for _, opt := range opts {
		opt(e)
	}

	vectors, err := matching.Precompute(ctx, graph, embedder, e.embedConcurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to precompute role vectors: %w", err)
	}
	e.matcher = matching.NewMatcher(vectors)
	e.metrics.SetRoleVectors(len(vectors))

	keywords, err := matching.NewKeywordMatcher(graph)
	if err != nil {
		return nil, err
	}
	e.keywords = keywords

	log.Printf("[recommend] engine ready: %d roles, %d transitions", graph.Len(), graph.TransitionCount())
	return e, nil
}

// Graph returns the role graph the engine was built from
func (e *Engine) Graph() *careergraph.Graph {
	return e.graph
}

// Close releases the keyword index and the embedder
func (e *Engine) Close() error {
	var errs []error
	if e.keywords != nil {
		errs = append(errs, e.keywords.Close())
	}
	errs = append(errs, embedding.Close(e.embedder))
	return errors.Join(errs...)
}
