package embedding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashingEmbedder_Deterministic(t *testing.T) {
	e := NewHashingEmbedder(64)

	a, err := e.Embed(context.Background(), "Python SQL Docker")
	require.NoError(t, err)
	b, err := e.Embed(context.Background(), "Python SQL Docker")
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.Equal(t, a, b)
}

func TestHashingEmbedder_CaseInsensitive(t *testing.T) {
	e := NewHashingEmbedder(0)
	assert.Equal(t, DefaultDimensions, e.Dimensions())

	a, _ := e.Embed(context.Background(), "PYTHON sql")
	b, _ := e.Embed(context.Background(), "python SQL")
	assert.Equal(t, a, b)
}

func TestHashingEmbedder_EmptyText(t *testing.T) {
	e := NewHashingEmbedder(16)
	vec, err := e.Embed(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, make([]float32, 16), vec)
}

func TestHashingEmbedder_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHashingEmbedder(16).Embed(ctx, "python")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"Job Title: Senior. Core Skills: c++ c# go.", []string{"job", "title", "senior", "core", "skills", "c++", "c#", "go"}},
		{"REST APIs, Flask/Django", []string{"rest", "apis", "flask", "django"}},
		{"   ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(tt.expected) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}
