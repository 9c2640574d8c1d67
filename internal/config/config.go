// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Embedding providers
const (
	EmbeddingGemini = "gemini"
	EmbeddingOpenAI = "openai"
	EmbeddingLocal  = "local"
)

// Advice providers
const (
	AdviceGemini    = "gemini"
	AdviceAnthropic = "anthropic"
	AdviceStatic    = "static"
)

// Defaults applied by MergeWithDefaults
const (
	DefaultMaxPaths = 2
	DefaultPort     = 8080
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults, environment
// variables or CLI flags.
type Config struct {
	// Data
	GraphPath   string `json:"graph_path,omitempty"`   // Role graph definition (JSON or TOML); built-in graph when empty
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL for profiles and history

	// Providers
	APIKey            string `json:"api_key,omitempty"`            // Gemini API key
	OpenAIAPIKey      string `json:"openai_api_key,omitempty"`     // OpenAI API key
	AnthropicAPIKey   string `json:"anthropic_api_key,omitempty"`  // Anthropic API key
	EmbeddingProvider string `json:"embedding_provider,omitempty"` // gemini, openai or local
	EmbeddingModel    string `json:"embedding_model,omitempty"`    // Provider default when empty
	AdviceProvider    string `json:"advice_provider,omitempty"`    // gemini, anthropic or static

	// Behavior
	MaxPaths int  `json:"max_paths,omitempty"` // Recommendations per request
	Port     int  `json:"port,omitempty"`      // HTTP port for serve
	Verbose  bool `json:"verbose,omitempty"`   // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values. Missing API keys
// are not checked here; they are reported when a provider is built.
func (c *Config) Validate() error {
	switch c.EmbeddingProvider {
	case "", EmbeddingGemini, EmbeddingOpenAI, EmbeddingLocal:
	default:
		return fmt.Errorf("config error: unknown 'embedding_provider' %q", c.EmbeddingProvider)
	}

	switch c.AdviceProvider {
	case "", AdviceGemini, AdviceAnthropic, AdviceStatic:
	default:
		return fmt.Errorf("config error: unknown 'advice_provider' %q", c.AdviceProvider)
	}

	if c.MaxPaths < 0 {
		return fmt.Errorf("config error: 'max_paths' must be at least 1")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535")
	}

	if c.GraphPath != "" {
		if _, err := os.Stat(c.GraphPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: graph file not found: %s", c.GraphPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults, then from built-in defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.GraphPath == "" {
		result.GraphPath = defaults.GraphPath
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.OpenAIAPIKey == "" {
		result.OpenAIAPIKey = defaults.OpenAIAPIKey
	}
	if result.AnthropicAPIKey == "" {
		result.AnthropicAPIKey = defaults.AnthropicAPIKey
	}
	if result.EmbeddingProvider == "" {
		result.EmbeddingProvider = defaults.EmbeddingProvider
	}
	if result.EmbeddingModel == "" {
		result.EmbeddingModel = defaults.EmbeddingModel
	}
	if result.AdviceProvider == "" {
		result.AdviceProvider = defaults.AdviceProvider
	}

	if result.MaxPaths == 0 {
		result.MaxPaths = defaults.MaxPaths
	}
	if result.MaxPaths == 0 {
		result.MaxPaths = DefaultMaxPaths
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Port == 0 {
		result.Port = DefaultPort
	}

	// Bools cannot distinguish unset from false; CLI flags win.

	return result
}

// ApplyEnv fills secrets and connection strings from the environment
// without overriding values already set.
func (c *Config) ApplyEnv() {
	fill := func(dst *string, key string) {
		if *dst == "" {
			*dst = os.Getenv(key)
		}
	}
	fill(&c.APIKey, "GEMINI_API_KEY")
	fill(&c.OpenAIAPIKey, "OPENAI_API_KEY")
	fill(&c.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	fill(&c.DatabaseURL, "DATABASE_URL")
}

// ResolveProviders picks providers that were not set explicitly: Gemini
// when its key is available, the offline embedder and static advice
// otherwise.
func (c *Config) ResolveProviders() {
	if c.EmbeddingProvider == "" {
		switch {
		case c.APIKey != "":
			c.EmbeddingProvider = EmbeddingGemini
		case c.OpenAIAPIKey != "":
			c.EmbeddingProvider = EmbeddingOpenAI
		default:
			c.EmbeddingProvider = EmbeddingLocal
		}
	}
	if c.AdviceProvider == "" {
		switch {
		case c.APIKey != "":
			c.AdviceProvider = AdviceGemini
		case c.AnthropicAPIKey != "":
			c.AdviceProvider = AdviceAnthropic
		default:
			c.AdviceProvider = AdviceStatic
		}
	}
}
