package advice

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/career-pathfinder/internal/llm"
	"github.com/jonathan/career-pathfinder/internal/prompts"
)

const (
	// PromptFull asks for narrative, project ideas and resources in markdown.
	PromptFull = "career-advice"
	// PromptBrief asks for a short plain-text paragraph.
	PromptBrief = "career-advice-brief"
)

// LLMAdvisor generates advice with an LLM client
type LLMAdvisor struct {
	client    llm.Client
	tier      llm.ModelTier
	promptKey string
	verbose   bool
}

// LLMOption configures an LLMAdvisor
type LLMOption func(*LLMAdvisor)

// WithTier selects the model tier (default lite)
func WithTier(tier llm.ModelTier) LLMOption {
	return func(a *LLMAdvisor) { a.tier = tier }
}

// WithPrompt selects the advice prompt key (default PromptFull)
func WithPrompt(key string) LLMOption {
	return func(a *LLMAdvisor) { a.promptKey = key }
}

// WithVerbose logs each prompt before it is sent
func WithVerbose(verbose bool) LLMOption {
	return func(a *LLMAdvisor) { a.verbose = verbose }
}

// NewLLMAdvisor creates an advisor backed by client
func NewLLMAdvisor(client llm.Client, opts ...LLMOption) *LLMAdvisor {
	a := &LLMAdvisor{
		client:    client,
		tier:      llm.TierLite,
		promptKey: PromptFull,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Advise implements Advisor. An empty gap is answered without calling the model.
func (a *LLMAdvisor) Advise(ctx context.Context, role string, skillGap []string) (string, error) {
	if len(skillGap) == 0 {
		return CongratulationText(role), nil
	}

	prompt, err := prompts.Advice(a.promptKey, role, skillGap)
	if err != nil {
		return "", fmt.Errorf("failed to build advice prompt: %w", err)
	}

	if a.verbose {
		log.Printf("[advice] prompt for %q (%s): %.100s...", role, a.client.GetModel(a.tier), prompt)
	}

	text, err := a.client.GenerateContent(ctx, prompt, a.tier)
	if err != nil {
		return "", fmt.Errorf("failed to generate advice for %q: %w", role, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("empty advice returned for %q", role)
	}
	return text, nil
}
