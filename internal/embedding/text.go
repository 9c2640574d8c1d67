package embedding

import (
	"fmt"
	"strings"

	"github.com/jonathan/career-pathfinder/internal/skills"
)

// RoleText is the canonical description embedded for a role. Skills are
// normalized and sorted so the text does not depend on declaration order.
func RoleText(title string, roleSkills skills.Set) string {
	return fmt.Sprintf("Job Title: %s. Core Skills: %s.", title, strings.Join(roleSkills.Sorted(), " "))
}

// ProfileText is the canonical description embedded for a person. Skills
// come first so literal skill tokens are not diluted by the free text.
func ProfileText(known skills.Set, resumeText string) string {
	return fmt.Sprintf("SKILLS: %s. RESUME: %s", strings.Join(known.Sorted(), " "), strings.TrimSpace(resumeText))
}
