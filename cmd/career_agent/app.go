package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jonathan/career-pathfinder/internal/advice"
	"github.com/jonathan/career-pathfinder/internal/careergraph"
	"github.com/jonathan/career-pathfinder/internal/config"
	"github.com/jonathan/career-pathfinder/internal/db"
	"github.com/jonathan/career-pathfinder/internal/embedding"
	"github.com/jonathan/career-pathfinder/internal/llm"
	"github.com/jonathan/career-pathfinder/internal/metrics"
	"github.com/jonathan/career-pathfinder/internal/profiles"
	"github.com/jonathan/career-pathfinder/internal/prompts"
	"github.com/jonathan/career-pathfinder/internal/recommend"
)

// app holds everything a command needs to serve recommendations
type app struct {
	cfg      config.Config
	graph    *careergraph.Graph
	engine   *recommend.Engine
	profiles profiles.Source
	database *db.DB
	metrics  *metrics.Metrics
	closers  []func() error
}

// resolveConfig merges flag values over the config file, then the
// environment, and picks providers that were left unset.
func resolveConfig(path string, flags config.Config) (config.Config, error) {
	var fileCfg config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return config.Config{}, fmt.Errorf("invalid config: %w", err)
		}
		fileCfg = *loaded
		if verbose {
			log.Printf("Loaded config from: %s", path)
		}
	}

	cfg := flags.MergeWithDefaults(fileCfg)
	cfg.Verbose = cfg.Verbose || fileCfg.Verbose
	cfg.ApplyEnv()
	cfg.ResolveProviders()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// configFromFlags carries the persistent flags for commands without their own overrides
func configFromFlags() config.Config {
	return config.Config{Verbose: verbose}
}

// loadGraph reads the graph definition at path, or the built-in graph
func loadGraph(path string) (*careergraph.Graph, error) {
	if path == "" {
		return careergraph.Default(), nil
	}
	return careergraph.LoadFile(path)
}

// newEmbedder builds the configured embedding provider
func newEmbedder(ctx context.Context, cfg config.Config) (embedding.Embedder, error) {
	ecfg := embedding.Config{
		Provider: embedding.Provider(cfg.EmbeddingProvider),
		Model:    cfg.EmbeddingModel,
	}
	switch cfg.EmbeddingProvider {
	case config.EmbeddingGemini:
		if cfg.APIKey == "" {
			return nil, errors.New("GEMINI_API_KEY is required for the gemini embedding provider")
		}
		ecfg.APIKey = cfg.APIKey
	case config.EmbeddingOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, errors.New("OPENAI_API_KEY is required for the openai embedding provider")
		}
		ecfg.APIKey = cfg.OpenAIAPIKey
	}
	return embedding.New(ctx, ecfg)
}

// newAdvisor builds the configured narrative generator and its cleanup
func newAdvisor(ctx context.Context, cfg config.Config) (advice.Advisor, func() error, error) {
	var (
		provider llm.Provider
		apiKey   string
	)
	switch cfg.AdviceProvider {
	case config.AdviceStatic, "":
		return advice.StaticAdvisor{}, func() error { return nil }, nil
	case config.AdviceGemini:
		provider, apiKey = llm.ProviderGemini, cfg.APIKey
		if apiKey == "" {
			return nil, nil, errors.New("GEMINI_API_KEY is required for the gemini advice provider")
		}
	case config.AdviceAnthropic:
		provider, apiKey = llm.ProviderAnthropic, cfg.AnthropicAPIKey
		if apiKey == "" {
			return nil, nil, errors.New("ANTHROPIC_API_KEY is required for the anthropic advice provider")
		}
	default:
		return nil, nil, fmt.Errorf("unsupported advice provider: %q", cfg.AdviceProvider)
	}

	if err := prompts.Require(advice.PromptFull, advice.PromptBrief); err != nil {
		return nil, nil, err
	}
	client, err := llm.NewClient(ctx, llm.ConfigFor(provider), apiKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return advice.NewLLMAdvisor(client, advice.WithVerbose(cfg.Verbose)), client.Close, nil
}

// buildApp wires the graph, providers, engine and profile source. The
// caller must Close the returned app.
func buildApp(ctx context.Context, cfg config.Config, m *metrics.Metrics) (_ *app, err error) {
	a := &app{cfg: cfg, metrics: m}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	a.graph, err = loadGraph(cfg.GraphPath)
	if err != nil {
		return nil, err
	}

	embedder, err := newEmbedder(ctx, cfg)
	if err != nil {
		return nil, err
	}

	advisor, closeAdvisor, err := newAdvisor(ctx, cfg)
	if err != nil {
		_ = embedding.Close(embedder)
		return nil, err
	}
	a.closers = append(a.closers, closeAdvisor)

	a.engine, err = recommend.NewEngine(ctx, a.graph, embedder, advisor, recommend.WithMetrics(m))
	if err != nil {
		_ = embedding.Close(embedder)
		return nil, err
	}
	a.closers = append(a.closers, a.engine.Close)

	if cfg.DatabaseURL == "" {
		a.profiles = profiles.NewDemoSource()
		if cfg.Verbose {
			log.Printf("[profiles] No database configured, using demo profiles")
		}
	} else {
		a.database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err = a.database.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		a.profiles = profiles.NewDBSource(a.database)
	}

	log.Printf("[career] %d roles, embedding=%s, advice=%s", a.graph.Len(), cfg.EmbeddingProvider, cfg.AdviceProvider)
	return a, nil
}

// Close releases providers and the database pool
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Printf("Warning: cleanup failed: %v", err)
		}
	}
	a.closers = nil
	if a.database != nil {
		a.database.Close()
		a.database = nil
	}
}
