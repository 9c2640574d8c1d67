package profiles

import (
	"context"

	"github.com/jonathan/career-pathfinder/internal/types"
)

// MemorySource serves profiles from a fixed map. When a fallback profile is
// set, unknown IDs receive it instead of a NotFoundError.
type MemorySource struct {
	profiles map[string]types.Profile
	fallback *types.Profile
}

// NewMemorySource creates a source over profiles. fallback may be nil.
func NewMemorySource(profiles map[string]types.Profile, fallback *types.Profile) *MemorySource {
	copied := make(map[string]types.Profile, len(profiles))
	for id, p := range profiles {
		copied[id] = cloneProfile(p)
	}
	var fb *types.Profile
	if fallback != nil {
		p := cloneProfile(*fallback)
		fb = &p
	}
	return &MemorySource{profiles: copied, fallback: fb}
}

// NewDemoSource returns the built-in demo students plus a default profile
// for any other ID.
func NewDemoSource() *MemorySource {
	return NewMemorySource(
		map[string]types.Profile{
			"student123": {
				ResumeText: "Experienced in building web applications using React and JavaScript. Familiar with HTML, CSS, and Git for version control. Eager to learn more about backend development.",
				Skills:     []string{"JavaScript", "React", "HTML", "CSS", "Git"},
			},
			"student456": {
				ResumeText: "Strong foundation in Python and data structures. Completed projects involving SQL databases and algorithms. Interested in a backend or data-focused role.",
				Skills:     []string{"Python", "SQL", "Git", "C++"},
			},
		},
		&types.Profile{
			ResumeText: "Student at University, studying Computer Science. Basic knowledge of Python.",
			Skills:     []string{"Python", "Problem Solving"},
		},
	)
}

// Get implements Source
func (s *MemorySource) Get(ctx context.Context, studentID string) (types.Profile, error) {
	if p, ok := s.profiles[studentID]; ok {
		return cloneProfile(p), nil
	}
	if s.fallback != nil {
		return cloneProfile(*s.fallback), nil
	}
	return types.Profile{}, &NotFoundError{StudentID: studentID}
}

func cloneProfile(p types.Profile) types.Profile {
	out := types.Profile{ResumeText: p.ResumeText, Skills: make([]string, len(p.Skills))}
	copy(out.Skills, p.Skills)
	return out
}
