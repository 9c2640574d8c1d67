// Package skills provides skill-tag normalization and skill-gap computation for career transitions.
package skills

import (
	"sort"
	"strings"
)

// Normalize lowercases and trims a skill tag. Comparison between skills is
// always done on normalized values.
func Normalize(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

// Set is an unordered set of normalized skill names.
type Set map[string]struct{}

// NewSet builds a Set from raw skill tags, dropping blanks and
// case-insensitive duplicates.
func NewSet(skills ...string) Set {
	set := make(Set, len(skills))
	for _, skill := range skills {
		set.Add(skill)
	}
	return set
}

// Add normalizes and inserts a skill. Blank skills are ignored.
func (s Set) Add(skill string) {
	normalized := Normalize(skill)
	if normalized == "" {
		return
	}
	s[normalized] = struct{}{}
}

// Has reports whether the set contains the skill, ignoring case.
func (s Set) Has(skill string) bool {
	_, ok := s[Normalize(skill)]
	return ok
}

// Len returns the number of distinct skills.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the skills in ascending order. The result is never nil.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for skill := range s {
		out = append(out, skill)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for skill := range s {
		out[skill] = struct{}{}
	}
	return out
}

// Minus returns the skills in s that are not in other.
func (s Set) Minus(other Set) Set {
	out := make(Set, len(s))
	for skill := range s {
		if _, ok := other[skill]; !ok {
			out[skill] = struct{}{}
		}
	}
	return out
}

// Union returns the skills present in either set.
func (s Set) Union(other Set) Set {
	out := s.Clone()
	for skill := range other {
		out[skill] = struct{}{}
	}
	return out
}

// Intersect returns the skills present in both sets.
func (s Set) Intersect(other Set) Set {
	out := make(Set)
	for skill := range s {
		if _, ok := other[skill]; ok {
			out[skill] = struct{}{}
		}
	}
	return out
}

// normalized re-normalizes keys so that sets built by hand (map literals)
// compare correctly with sets built through NewSet.
func (s Set) normalized() Set {
	out := make(Set, len(s))
	for skill := range s {
		out.Add(skill)
	}
	return out
}
