package advice

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/career-pathfinder/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	response string
	err      error
	prompts  []string
	tiers    []llm.ModelTier
}

func (f *fakeClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.tiers = append(f.tiers, tier)
	return f.response, f.err
}

func (f *fakeClient) GetModel(tier llm.ModelTier) string { return "fake-" + string(tier) }

func (f *fakeClient) Close() error { return nil }

func TestLLMAdvisor_EmptyGapSkipsModel(t *testing.T) {
	client := &fakeClient{response: "should not be used"}
	advisor := NewLLMAdvisor(client)

	text, err := advisor.Advise(context.Background(), "Senior Backend Developer", nil)
	require.NoError(t, err)

	assert.Equal(t, "You already have a strong skill set for the Senior Backend Developer role. Focus on building projects and gaining experience.", text)
	assert.Empty(t, client.prompts)
}

func TestLLMAdvisor_BuildsPrompt(t *testing.T) {
	client := &fakeClient{response: "  ## Narrative\nLearn Docker.  "}
	advisor := NewLLMAdvisor(client, WithVerbose(true))

	text, err := advisor.Advise(context.Background(), "DevOps Engineer", []string{"docker", "linux"})
	require.NoError(t, err)

	assert.Equal(t, "## Narrative\nLearn Docker.", text)
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "'DevOps Engineer' role")
	assert.Contains(t, client.prompts[0], "docker, linux")
	assert.Contains(t, client.prompts[0], "Project Ideas")
	assert.Equal(t, llm.TierLite, client.tiers[0])
}

func TestLLMAdvisor_Options(t *testing.T) {
	client := &fakeClient{response: "ok"}
	advisor := NewLLMAdvisor(client, WithTier(llm.TierStandard), WithPrompt(PromptBrief))

	_, err := advisor.Advise(context.Background(), "Data Scientist", []string{"statistics"})
	require.NoError(t, err)

	assert.Equal(t, llm.TierStandard, client.tiers[0])
	assert.Contains(t, client.prompts[0], "plain text")
}

func TestLLMAdvisor_Errors(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeClient
		opts   []LLMOption
	}{
		{"client error", &fakeClient{err: errors.New("quota")}, nil},
		{"blank response", &fakeClient{response: "   "}, nil},
		{"unknown prompt", &fakeClient{response: "ok"}, []LLMOption{WithPrompt("missing")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLLMAdvisor(tt.client, tt.opts...).Advise(context.Background(), "Tech Lead", []string{"system design"})
			assert.Error(t, err)
		})
	}
}

func TestStaticAdvisor(t *testing.T) {
	text, err := StaticAdvisor{}.Advise(context.Background(), "Tech Lead", []string{"ci/cd", "system design"})
	require.NoError(t, err)
	assert.Equal(t, "To move into the Tech Lead role, focus on building these skills: ci/cd, system design.", text)

	text, err = StaticAdvisor{}.Advise(context.Background(), "Tech Lead", []string{})
	require.NoError(t, err)
	assert.Equal(t, CongratulationText("Tech Lead"), text)
}

func TestFallbackText(t *testing.T) {
	assert.Equal(t, CongratulationText("PM"), FallbackText("PM", nil))
	assert.Contains(t, FallbackText("PM", []string{"jira"}), "jira")
}
