package recommend

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonathan/career-pathfinder/internal/advice"
	"github.com/jonathan/career-pathfinder/internal/careergraph"
	"github.com/jonathan/career-pathfinder/internal/embedding"
	"github.com/jonathan/career-pathfinder/internal/metrics"
	"github.com/jonathan/career-pathfinder/internal/types"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// vectorEmbedder returns the vector registered for the first matching text
// prefix. Profile texts start with "SKILLS:".
type vectorEmbedder struct {
	byPrefix   map[string][]float32
	profileErr error
}

func (v *vectorEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.HasPrefix(text, "SKILLS:") && v.profileErr != nil {
		return nil, v.profileErr
	}
	for prefix, vec := range v.byPrefix {
		if strings.HasPrefix(text, prefix) {
			return vec, nil
		}
	}
	return []float32{0, 0, 1}, nil
}

func roleVec(title string) string {
	return "Job Title: " + title + "."
}

type recordingAdvisor struct {
	mu    sync.Mutex
	calls map[string][]string
	fail  map[string]bool
	delay map[string]time.Duration
}

func newRecordingAdvisor() *recordingAdvisor {
	return &recordingAdvisor{calls: map[string][]string{}, fail: map[string]bool{}, delay: map[string]time.Duration{}}
}

func (r *recordingAdvisor) Advise(ctx context.Context, role string, gap []string) (string, error) {
	if d := r.delay[role]; d > 0 {
		time.Sleep(d)
	}
	r.mu.Lock()
	r.calls[role] = gap
	r.mu.Unlock()
	if r.fail[role] {
		return "", errors.New("model unavailable")
	}
	return "advice for " + role, nil
}

func newEngine(t *testing.T, g *careergraph.Graph, e embedding.Embedder, a advice.Advisor, opts ...Option) *Engine {
	t.Helper()
	engine, err := NewEngine(context.Background(), g, e, a, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = engine.Close() })
	return engine
}

func juniorSeniorGraph(t *testing.T) *careergraph.Graph {
	t.Helper()
	g := careergraph.New()
	require.NoError(t, g.AddRole("Junior", "SQL", "Python"))
	require.NoError(t, g.AddRole("Senior", "SQL", "Python", "Docker"))
	require.NoError(t, g.AddTransition("Junior", "Senior"))
	return g
}

func juniorSeniorEmbedder() *vectorEmbedder {
	return &vectorEmbedder{byPrefix: map[string][]float32{
		roleVec("Junior"): {1, 0, 0},
		roleVec("Senior"): {0.6, 0.8, 0},
		"SKILLS:":         {1, 0.1, 0},
	}}
}

func TestRecommend_EndToEnd(t *testing.T) {
	advisor := newRecordingAdvisor()
	engine := newEngine(t, juniorSeniorGraph(t), juniorSeniorEmbedder(), advisor)

	recs, err := engine.Recommend(context.Background(), types.Profile{Skills: []string{"SQL"}}, 2)
	require.NoError(t, err)

	require.Len(t, recs, 1)
	assert.Equal(t, []string{"Junior", "Senior"}, recs[0].Path)
	assert.Equal(t, []string{"docker", "python"}, recs[0].SkillGap)
	assert.Equal(t, "advice for Senior", recs[0].RecommendationText)
	assert.Equal(t, []string{"docker", "python"}, advisor.calls["Senior"])
}

func rankingGraph(t *testing.T) *careergraph.Graph {
	t.Helper()
	g := careergraph.New()
	require.NoError(t, g.AddRole("Current", "a"))
	require.NoError(t, g.AddRole("Three", "c", "d", "e"))
	require.NoError(t, g.AddRole("Zero", "b"))
	require.NoError(t, g.AddRole("One", "b", "f"))
	for _, to := range []string{"Three", "Zero", "One"} {
		require.NoError(t, g.AddTransition("Current", to))
	}
	return g
}

func currentEmbedder() *vectorEmbedder {
	return &vectorEmbedder{byPrefix: map[string][]float32{
		roleVec("Current"): {1, 0, 0},
		"SKILLS:":          {1, 0, 0},
	}}
}

func TestRecommend_RanksBySkillGapSize(t *testing.T) {
	advisor := newRecordingAdvisor()
	engine := newEngine(t, rankingGraph(t), currentEmbedder(), advisor)

	profile := types.Profile{Skills: []string{"A", "B"}}
	recs, err := engine.Recommend(context.Background(), profile, 2)
	require.NoError(t, err)

	require.Len(t, recs, 2)
	assert.Equal(t, []string{"Current", "Zero"}, recs[0].Path)
	assert.Empty(t, recs[0].SkillGap)
	assert.Equal(t, []string{"Current", "One"}, recs[1].Path)
	assert.Equal(t, []string{"f"}, recs[1].SkillGap)

	// Only the selected candidates are sent to the advisor
	_, calledThree := advisor.calls["Three"]
	assert.False(t, calledThree)
}

func TestRecommend_MaxPathsLargerThanCandidates(t *testing.T) {
	engine := newEngine(t, rankingGraph(t), currentEmbedder(), advice.StaticAdvisor{})

	recs, err := engine.Recommend(context.Background(), types.Profile{Skills: []string{"a", "b"}}, 10)
	require.NoError(t, err)

	require.Len(t, recs, 3)
	assert.Equal(t, "Zero", recs[0].TargetRole())
	assert.Equal(t, "One", recs[1].TargetRole())
	assert.Equal(t, "Three", recs[2].TargetRole())
	assert.Equal(t, []string{"c", "d", "e"}, recs[2].SkillGap)
}

func TestRecommend_TiesKeepSuccessorOrder(t *testing.T) {
	g := careergraph.New()
	require.NoError(t, g.AddRole("Current"))
	for _, title := range []string{"B", "A", "C"} {
		require.NoError(t, g.AddRole(title, "x"))
		require.NoError(t, g.AddTransition("Current", title))
	}

	engine := newEngine(t, g, currentEmbedder(), advice.StaticAdvisor{})
	recs, err := engine.Recommend(context.Background(), types.Profile{}, 3)
	require.NoError(t, err)

	require.Len(t, recs, 3)
	assert.Equal(t, "B", recs[0].TargetRole())
	assert.Equal(t, "A", recs[1].TargetRole())
	assert.Equal(t, "C", recs[2].TargetRole())
}

func TestRecommend_SelfLoopIsOrdinaryCandidate(t *testing.T) {
	g := careergraph.New()
	require.NoError(t, g.AddRole("Current", "a"))
	require.NoError(t, g.AddTransition("Current", "Current"))

	engine := newEngine(t, g, currentEmbedder(), advice.StaticAdvisor{})
	recs, err := engine.Recommend(context.Background(), types.Profile{}, 1)
	require.NoError(t, err)

	require.Len(t, recs, 1)
	assert.Equal(t, []string{"Current", "Current"}, recs[0].Path)
	assert.Equal(t, []string{"a"}, recs[0].SkillGap)
}

func TestRecommend_TerminalRole(t *testing.T) {
	g := careergraph.New()
	require.NoError(t, g.AddRole("Current", "Leadership"))

	advisor := newRecordingAdvisor()
	engine := newEngine(t, g, currentEmbedder(), advisor)

	recs, err := engine.Recommend(context.Background(), types.Profile{Skills: []string{"Go"}}, 2)
	require.NoError(t, err)

	require.Len(t, recs, 1)
	assert.Equal(t, []string{"Current"}, recs[0].Path)
	assert.NotNil(t, recs[0].SkillGap)
	assert.Empty(t, recs[0].SkillGap)
	assert.Equal(t, advice.TerminalRoleText, recs[0].RecommendationText)
	assert.Empty(t, advisor.calls)
}

func TestRecommend_EmptyGraph(t *testing.T) {
	m := metrics.New()
	engine := newEngine(t, careergraph.New(), currentEmbedder(), advice.StaticAdvisor{}, WithMetrics(m))

	recs, err := engine.Recommend(context.Background(), types.Profile{Skills: []string{"Go"}}, 2)
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestRecommend_InvalidMaxPaths(t *testing.T) {
	engine := newEngine(t, juniorSeniorGraph(t), juniorSeniorEmbedder(), advice.StaticAdvisor{})

	for _, n := range []int{0, -1} {
		_, err := engine.Recommend(context.Background(), types.Profile{}, n)
		assert.ErrorIs(t, err, ErrInvalidMaxPaths)
	}
}

func TestRecommend_AdviceFailureUsesFallback(t *testing.T) {
	advisor := newRecordingAdvisor()
	advisor.fail["Senior"] = true
	m := metrics.New()

	engine := newEngine(t, juniorSeniorGraph(t), juniorSeniorEmbedder(), advisor, WithMetrics(m))
	recs, err := engine.Recommend(context.Background(), types.Profile{Skills: []string{"sql"}}, 2)
	require.NoError(t, err)

	require.Len(t, recs, 1)
	assert.Equal(t, advice.FallbackText("Senior", []string{"docker", "python"}), recs[0].RecommendationText)
	count, err := testutil.GatherAndCount(m.Registry, "career_fallbacks_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRecommend_AdviceKeepsRankOrder(t *testing.T) {
	advisor := newRecordingAdvisor()
	advisor.delay["Zero"] = 30 * time.Millisecond

	engine := newEngine(t, rankingGraph(t), currentEmbedder(), advisor)
	recs, err := engine.Recommend(context.Background(), types.Profile{Skills: []string{"a", "b"}}, 3)
	require.NoError(t, err)

	require.Len(t, recs, 3)
	assert.Equal(t, "advice for Zero", recs[0].RecommendationText)
	assert.Equal(t, "advice for One", recs[1].RecommendationText)
	assert.Equal(t, "advice for Three", recs[2].RecommendationText)
}

func TestRecommend_EmbeddingFailureUsesKeywords(t *testing.T) {
	embedder := juniorSeniorEmbedder()
	embedder.profileErr = &embedding.UnavailableError{Provider: embedding.ProviderGemini, Cause: errors.New("503")}

	engine := newEngine(t, juniorSeniorGraph(t), embedder, advice.StaticAdvisor{})
	recs, err := engine.Recommend(context.Background(), types.Profile{
		ResumeText: "Junior analyst",
		Skills:     []string{"SQL", "Python"},
	}, 2)
	require.NoError(t, err)

	require.Len(t, recs, 1)
	assert.Equal(t, []string{"Junior", "Senior"}, recs[0].Path)
	assert.Equal(t, []string{"docker"}, recs[0].SkillGap)
}

func TestRecommend_NonFiniteProfileVectorUsesKeywords(t *testing.T) {
	embedder := juniorSeniorEmbedder()
	embedder.byPrefix["SKILLS:"] = []float32{float32(math.NaN()), 1, 0}
	m := metrics.New()

	engine := newEngine(t, juniorSeniorGraph(t), embedder, advice.StaticAdvisor{}, WithMetrics(m))
	recs, err := engine.Recommend(context.Background(), types.Profile{
		ResumeText: "Junior analyst",
		Skills:     []string{"SQL", "Python"},
	}, 2)
	require.NoError(t, err)

	require.Len(t, recs, 1)
	assert.Equal(t, []string{"Junior", "Senior"}, recs[0].Path)
	count, err := testutil.GatherAndCount(m.Registry, "career_fallbacks_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRecommend_EmbeddingFailureWithoutKeywordMatch(t *testing.T) {
	embedder := juniorSeniorEmbedder()
	embedder.profileErr = errors.New("embedding down")

	engine := newEngine(t, juniorSeniorGraph(t), embedder, advice.StaticAdvisor{})
	recs, err := engine.Recommend(context.Background(), types.Profile{ResumeText: "Pastry chef", Skills: []string{"baking"}}, 2)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRecommend_CanceledContext(t *testing.T) {
	engine := newEngine(t, juniorSeniorGraph(t), juniorSeniorEmbedder(), advice.StaticAdvisor{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Recommend(ctx, types.Profile{Skills: []string{"sql"}}, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRecommend_Deterministic(t *testing.T) {
	engine := newEngine(t, careergraph.Default(), embedding.NewHashingEmbedder(256), advice.StaticAdvisor{})
	profile := types.Profile{
		ResumeText: "Strong foundation in Python and data structures.",
		Skills:     []string{"Python", "SQL", "Git", "C++"},
	}

	first, err := engine.Recommend(context.Background(), profile, 2)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	for i := 0; i < 5; i++ {
		again, err := engine.Recommend(context.Background(), profile, 2)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRecommend_ConcurrentCalls(t *testing.T) {
	engine := newEngine(t, careergraph.Default(), embedding.NewHashingEmbedder(256), advice.StaticAdvisor{})
	profile := types.Profile{ResumeText: "React developer", Skills: []string{"JavaScript", "React"}}

	expected, err := engine.Recommend(context.Background(), profile, 2)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := engine.Recommend(context.Background(), profile, 2)
			assert.NoError(t, err)
			assert.Equal(t, expected, got)
		}()
	}
	wg.Wait()
}

type failingEmbedder struct{}

func (failingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return nil, &embedding.UnavailableError{Provider: embedding.ProviderOpenAI, Cause: errors.New("401")}
}

func TestNewEngine_PrecomputeFailureIsFatal(t *testing.T) {
	_, err := NewEngine(context.Background(), juniorSeniorGraph(t), failingEmbedder{}, nil)
	require.Error(t, err)

	var unavailable *embedding.UnavailableError
	assert.True(t, errors.As(err, &unavailable))
}

func TestNewEngine_RequiresGraphAndEmbedder(t *testing.T) {
	_, err := NewEngine(context.Background(), nil, juniorSeniorEmbedder(), nil)
	assert.Error(t, err)

	_, err = NewEngine(context.Background(), careergraph.New(), nil, nil)
	assert.Error(t, err)
}

func TestNewEngine_RecordsRoleVectors(t *testing.T) {
	m := metrics.New()
	engine := newEngine(t, careergraph.Default(), embedding.NewHashingEmbedder(64), nil, WithMetrics(m), WithEmbedConcurrency(2), WithAdviceConcurrency(1))

	assert.Equal(t, 12, engine.Graph().Len())
	count, err := testutil.GatherAndCount(m.Registry, "career_role_vectors")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
