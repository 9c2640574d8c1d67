package matching

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/career-pathfinder/internal/embedding"
	"github.com/jonathan/career-pathfinder/internal/skills"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel embedding calls during precomputation.
const DefaultConcurrency = 4

// RoleSource is the read side of the role graph needed for matching
type RoleSource interface {
	AllRoles() []string
	SkillsOf(title string) skills.Set
}

// Precompute embeds the canonical text of every role. The result follows
// AllRoles order regardless of completion order. Any failure aborts the
// whole computation.
func Precompute(ctx context.Context, src RoleSource, embedder embedding.Embedder, concurrency int) ([]RoleVector, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	titles := src.AllRoles()
	vectors := make([]RoleVector, len(titles))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, title := range titles {
		text := embedding.RoleText(title, src.SkillsOf(title))
		g.Go(func() error {
			vec, err := embedder.Embed(gCtx, text)
			if err != nil {
				return fmt.Errorf("failed to embed role %q: %w", title, err)
			}
			vectors[i] = RoleVector{Title: title, Vector: vec}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Printf("[matcher] precomputed %d role vectors", len(vectors))
	return vectors, nil
}
