package embedding

import (
	"context"
	"hash/fnv"
	"strings"
	"unicode"
)

// DefaultDimensions is the vector size of the hashing embedder.
const DefaultDimensions = 512

// HashingEmbedder is an offline embedder that hashes word tokens into a
// fixed number of buckets. It carries no semantics beyond shared tokens,
// which is enough to match skill-heavy profiles to roles without network
// access.
type HashingEmbedder struct {
	dims int
}

// NewHashingEmbedder creates a hashing embedder. Non-positive dims select
// DefaultDimensions.
func NewHashingEmbedder(dims int) *HashingEmbedder {
	if dims <= 0 {
		dims = DefaultDimensions
	}
	return &HashingEmbedder{dims: dims}
}

// Dimensions returns the vector length
func (e *HashingEmbedder) Dimensions() int {
	return e.dims
}

// Embed implements Embedder
func (e *HashingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vec := make([]float32, e.dims)
	for _, token := range Tokenize(text) {
		h := fnv.New64a()
		_, _ = h.Write([]byte(token))
		sum := h.Sum64()

		bucket := int(sum % uint64(e.dims))
		// The top bit picks the sign so colliding tokens tend to cancel.
		if sum>>63 == 1 {
			vec[bucket]--
		} else {
			vec[bucket]++
		}
	}
	return vec, nil
}

// Tokenize lowercases text and splits it on anything that is not a letter,
// digit, '+' or '#', so tokens like "c++" and "c#" survive.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})
}
