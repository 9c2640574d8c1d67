package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, `{
		"graph_path": "configs/role_graph.toml",
		"embedding_provider": "openai",
		"advice_provider": "anthropic",
		"max_paths": 3,
		"port": 9090,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "configs/role_graph.toml", cfg.GraphPath)
	assert.Equal(t, EmbeddingOpenAI, cfg.EmbeddingProvider)
	assert.Equal(t, AdviceAnthropic, cfg.AdviceProvider)
	assert.Equal(t, 3, cfg.MaxPaths)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_RelativePath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.json"), []byte(`{"max_paths":1}`), 0644))
	t.Chdir(dir)

	cfg, err := LoadConfig("c.json")
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.MaxPaths)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{ invalid json }`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	existing := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, os.WriteFile(existing, []byte(`{}`), 0644))

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "empty", cfg: Config{}},
		{name: "full", cfg: Config{GraphPath: existing, EmbeddingProvider: "local", AdviceProvider: "static", MaxPaths: 2, Port: 8080}},
		{name: "unknown embedding provider", cfg: Config{EmbeddingProvider: "word2vec"}, wantErr: "embedding_provider"},
		{name: "unknown advice provider", cfg: Config{AdviceProvider: "openai"}, wantErr: "advice_provider"},
		{name: "negative max paths", cfg: Config{MaxPaths: -1}, wantErr: "max_paths"},
		{name: "port out of range", cfg: Config{Port: 70000}, wantErr: "port"},
		{name: "missing graph file", cfg: Config{GraphPath: "/nonexistent/graph.toml"}, wantErr: "graph file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{
		GraphPath: "custom.toml",
		MaxPaths:  4,
	}
	defaults := Config{
		GraphPath:         "default.toml",
		DatabaseURL:       "postgres://localhost/career",
		EmbeddingProvider: EmbeddingLocal,
		AdviceProvider:    AdviceStatic,
		MaxPaths:          1,
		Port:              9000,
	}

	result := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "custom.toml", result.GraphPath)
	assert.Equal(t, 4, result.MaxPaths)
	assert.Equal(t, "postgres://localhost/career", result.DatabaseURL)
	assert.Equal(t, EmbeddingLocal, result.EmbeddingProvider)
	assert.Equal(t, AdviceStatic, result.AdviceProvider)
	assert.Equal(t, 9000, result.Port)

	assert.Equal(t, "custom.toml", cfg.GraphPath, "receiver is not modified")
	assert.Empty(t, cfg.DatabaseURL)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := &Config{}
	result := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, DefaultMaxPaths, result.MaxPaths)
	assert.Equal(t, DefaultPort, result.Port)
	assert.Empty(t, result.GraphPath)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gemini-env")
	t.Setenv("OPENAI_API_KEY", "openai-env")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("DATABASE_URL", "postgres://env/db")

	cfg := &Config{APIKey: "gemini-file"}
	cfg.ApplyEnv()

	assert.Equal(t, "gemini-file", cfg.APIKey)
	assert.Equal(t, "openai-env", cfg.OpenAIAPIKey)
	assert.Empty(t, cfg.AnthropicAPIKey)
	assert.Equal(t, "postgres://env/db", cfg.DatabaseURL)
}

func TestResolveProviders(t *testing.T) {
	tests := []struct {
		name          string
		cfg           Config
		wantEmbedding string
		wantAdvice    string
	}{
		{name: "no keys", cfg: Config{}, wantEmbedding: EmbeddingLocal, wantAdvice: AdviceStatic},
		{name: "gemini key", cfg: Config{APIKey: "k"}, wantEmbedding: EmbeddingGemini, wantAdvice: AdviceGemini},
		{name: "openai and anthropic", cfg: Config{OpenAIAPIKey: "o", AnthropicAPIKey: "a"}, wantEmbedding: EmbeddingOpenAI, wantAdvice: AdviceAnthropic},
		{name: "explicit wins", cfg: Config{APIKey: "k", EmbeddingProvider: EmbeddingLocal, AdviceProvider: AdviceStatic}, wantEmbedding: EmbeddingLocal, wantAdvice: AdviceStatic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.ResolveProviders()
			assert.Equal(t, tt.wantEmbedding, cfg.EmbeddingProvider)
			assert.Equal(t, tt.wantAdvice, cfg.AdviceProvider)
		})
	}
}
