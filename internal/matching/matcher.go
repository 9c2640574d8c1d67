// Package matching resolves a person's current role by comparing their
// profile vector against precomputed role vectors.
package matching

import (
	"math"
	"sort"
)

// RoleVector is the cached embedding of one role
type RoleVector struct {
	Title  string
	Vector []float32
}

// Match is a role and its similarity to a profile
type Match struct {
	Title      string  `json:"title"`
	Similarity float64 `json:"similarity"`
}

// NoRolesAvailableError is returned when there are no role vectors to match against
type NoRolesAvailableError struct{}

func (e *NoRolesAvailableError) Error() string {
	return "no roles available for matching"
}

// Matcher finds the role closest to a profile vector by cosine similarity.
// It is immutable and safe for concurrent use.
type Matcher struct {
	roles []RoleVector
}

// NewMatcher creates a matcher over the given vectors. Iteration order, and
// therefore tie-breaking, follows the slice order.
func NewMatcher(vectors []RoleVector) *Matcher {
	roles := make([]RoleVector, len(vectors))
	for i, rv := range vectors {
		vec := make([]float32, len(rv.Vector))
		copy(vec, rv.Vector)
		roles[i] = RoleVector{Title: rv.Title, Vector: vec}
	}
	return &Matcher{roles: roles}
}

// Len returns the number of roles the matcher knows
func (m *Matcher) Len() int {
	return len(m.roles)
}

// ClosestRole returns the role with the highest cosine similarity to the
// profile vector. Ties go to the role that comes first.
func (m *Matcher) ClosestRole(profile []float32) (string, error) {
	if len(m.roles) == 0 {
		return "", &NoRolesAvailableError{}
	}

	best := 0
	bestScore := CosineSimilarity(profile, m.roles[0].Vector)
	for i := 1; i < len(m.roles); i++ {
		score := CosineSimilarity(profile, m.roles[i].Vector)
		if score > bestScore {
			best = i
			bestScore = score
		}
	}
	return m.roles[best].Title, nil
}

// Rank returns every role ordered by descending similarity. Equal scores
// keep matcher order.
func (m *Matcher) Rank(profile []float32) []Match {
	matches := make([]Match, len(m.roles))
	for i, rv := range m.roles {
		matches[i] = Match{Title: rv.Title, Similarity: CosineSimilarity(profile, rv.Vector)}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	return matches
}

// Finite reports whether every component of v is a finite number
func Finite(v []float32) bool {
	for _, x := range v {
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// CosineSimilarity returns the cosine of the angle between a and b. Vectors
// of different length, with zero magnitude, or with NaN or infinite
// components have similarity 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if math.IsNaN(sim) || math.IsInf(sim, 0) {
		return 0
	}
	return sim
}
