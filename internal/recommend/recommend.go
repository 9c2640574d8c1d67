package recommend

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/jonathan/career-pathfinder/internal/advice"
	"github.com/jonathan/career-pathfinder/internal/embedding"
	"github.com/jonathan/career-pathfinder/internal/matching"
	"github.com/jonathan/career-pathfinder/internal/metrics"
	"github.com/jonathan/career-pathfinder/internal/skills"
	"github.com/jonathan/career-pathfinder/internal/types"
	"golang.org/x/sync/errgroup"
)

type candidate struct {
	role string
	gap  []string
}

// Recommend returns up to maxPaths next roles for profile, cheapest
// transition first. The cost of a transition is the size of its skill gap;
// equal costs keep the graph's successor order.
//
// An empty result with a nil error means no current role could be resolved.
// A role with no successors yields a single recommendation whose path holds
// only that role.
func (e *Engine) Recommend(ctx context.Context, profile types.Profile, maxPaths int) ([]types.Recommendation, error) {
	if maxPaths < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidMaxPaths, maxPaths)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	known := skills.NewSet(profile.Skills...)

	current, err := e.resolveCurrentRole(ctx, known, profile.ResumeText)
	if err != nil {
		e.metrics.ObserveRecommendation(metrics.OutcomeError, time.Since(start))
		return nil, err
	}
	if current == "" {
		e.metrics.ObserveRecommendation(metrics.OutcomeNoRole, time.Since(start))
		return []types.Recommendation{}, nil
	}

	successors := e.graph.Successors(current)
	if len(successors) == 0 {
		e.metrics.ObserveRecommendation(metrics.OutcomeTerminal, time.Since(start))
		return []types.Recommendation{{
			Path:               []string{current},
			SkillGap:           []string{},
			RecommendationText: advice.TerminalRoleText,
		}}, nil
	}

	currentSkills := e.graph.SkillsOf(current)
	candidates := make([]candidate, 0, len(successors))
	for _, target := range successors {
		candidates = append(candidates, candidate{
			role: target,
			gap:  skills.Gap(currentSkills, e.graph.SkillsOf(target), known),
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i].gap) < len(candidates[j].gap)
	})
	if len(candidates) > maxPaths {
		candidates = candidates[:maxPaths]
	}

	recs, err := e.attachAdvice(ctx, current, candidates)
	if err != nil {
		e.metrics.ObserveRecommendation(metrics.OutcomeError, time.Since(start))
		return nil, err
	}

	e.metrics.ObserveRecommendation(metrics.OutcomeOK, time.Since(start))
	return recs, nil
}

var errNonFiniteVector = errors.New("profile embedding has NaN or infinite components")

// resolveCurrentRole returns the closest role, or "" when none can be
// resolved. A failed profile embedding falls back to keyword matching.
func (e *Engine) resolveCurrentRole(ctx context.Context, known skills.Set, resumeText string) (string, error) {
	if e.matcher.Len() == 0 {
		return "", nil
	}

	vec, err := e.embedder.Embed(ctx, embedding.ProfileText(known, resumeText))
	if err == nil && !matching.Finite(vec) {
		err = errNonFiniteVector
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}

		log.Printf("[recommend] profile embedding failed, using keyword matcher: %v", err)
		e.metrics.IncFallback(metrics.FallbackEmbedding)

		role, kerr := e.keywords.ClosestRole(known, resumeText)
		if kerr != nil {
			if errors.Is(kerr, matching.ErrNoKeywordMatch) {
				log.Printf("[matcher] no keyword match for profile")
				return "", nil
			}
			return "", kerr
		}
		return role, nil
	}

	role, err := e.matcher.ClosestRole(vec)
	if err != nil {
		var noRoles *matching.NoRolesAvailableError
		if errors.As(err, &noRoles) {
			return "", nil
		}
		return "", err
	}
	return role, nil
}

// attachAdvice asks the advisor about every candidate concurrently. A failed
// advisor call gets fallback text; results keep candidate order.
func (e *Engine) attachAdvice(ctx context.Context, current string, candidates []candidate) ([]types.Recommendation, error) {
	recs := make([]types.Recommendation, len(candidates))

	var g errgroup.Group
	g.SetLimit(max(e.adviceConcurrency, 1))

	for i, c := range candidates {
		g.Go(func() error {
			text, err := e.advisor.Advise(ctx, c.role, c.gap)
			if err == nil && text == "" {
				err = errors.New("empty advice")
			}
			if err != nil {
				log.Printf("[advice] advice for %q failed, using fallback text: %v", c.role, err)
				e.metrics.IncFallback(metrics.FallbackAdvice)
				text = advice.FallbackText(c.role, c.gap)
			}

			recs[i] = types.Recommendation{
				Path:               []string{current, c.role},
				SkillGap:           c.gap,
				RecommendationText: text,
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}
