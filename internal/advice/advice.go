// Package advice produces the narrative text attached to each recommended
// transition.
package advice

import (
	"context"
	"fmt"
	"strings"
)

// TerminalRoleText is the narrative for a role with no outgoing transitions.
const TerminalRoleText = "You are at a senior position with no predefined next steps in our current graph. Consider mentorship or specialized roles!"

// Advisor writes advice for moving into role given the missing skills
type Advisor interface {
	Advise(ctx context.Context, role string, skillGap []string) (string, error)
}

// CongratulationText is the advice for a transition with no skill gap.
func CongratulationText(role string) string {
	return fmt.Sprintf("You already have a strong skill set for the %s role. Focus on building projects and gaining experience.", role)
}

// FallbackText is substituted when an advisor fails, so the recommendation
// still carries usable guidance.
func FallbackText(role string, skillGap []string) string {
	if len(skillGap) == 0 {
		return CongratulationText(role)
	}
	return fmt.Sprintf("To move into the %s role, focus on building these skills: %s.", role, strings.Join(skillGap, ", "))
}

// StaticAdvisor writes deterministic advice without calling a model
type StaticAdvisor struct{}

// Advise implements Advisor
func (StaticAdvisor) Advise(ctx context.Context, role string, skillGap []string) (string, error) {
	return FallbackText(role, skillGap), nil
}
