package careergraph

import (
	"strings"

	"github.com/jonathan/career-pathfinder/internal/skills"
	"github.com/jonathan/career-pathfinder/internal/types"
)

// Graph is a directed graph of roles keyed by title. Each role carries its
// required skills; edges are one-step transitions kept in insertion order.
//
// A Graph is built once and then only read. Readers may share it across
// goroutines without locking as long as no Add* call runs concurrently.
type Graph struct {
	roles map[string]*roleNode
	order []string
}

type roleNode struct {
	title      string
	skills     skills.Set
	successors []string
	edges      map[string]struct{}
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		roles: make(map[string]*roleNode),
	}
}

// AddRole registers a role with its required skills. Skills are normalized
// and deduplicated. A role with no skills is valid.
func (g *Graph) AddRole(title string, requiredSkills ...string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return &DefinitionError{Message: "role title is empty"}
	}
	if _, exists := g.roles[title]; exists {
		return &DuplicateRoleError{Title: title}
	}

	g.roles[title] = &roleNode{
		title:  title,
		skills: skills.NewSet(requiredSkills...),
		edges:  make(map[string]struct{}),
	}
	g.order = append(g.order, title)
	return nil
}

// AddTransition adds a directed edge from one role to another. Both roles
// must already be registered. Adding the same edge twice is a no-op, and
// self-loops are allowed.
func (g *Graph) AddTransition(from, to string) error {
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)

	src, ok := g.roles[from]
	if !ok {
		return &UnknownRoleError{Title: from}
	}
	if _, ok := g.roles[to]; !ok {
		return &UnknownRoleError{Title: to}
	}

	if _, exists := src.edges[to]; exists {
		return nil
	}
	src.edges[to] = struct{}{}
	src.successors = append(src.successors, to)
	return nil
}

// SkillsOf returns a copy of the role's required skills. Unknown roles have
// no special requirements and yield an empty set.
func (g *Graph) SkillsOf(title string) skills.Set {
	node, ok := g.lookup(title)
	if !ok {
		return skills.Set{}
	}
	return node.skills.Clone()
}

// Successors returns the roles reachable in one step from title, in the
// order the transitions were added. Terminal and unknown roles yield an
// empty slice.
func (g *Graph) Successors(title string) []string {
	node, ok := g.lookup(title)
	if !ok {
		return []string{}
	}
	out := make([]string, len(node.successors))
	copy(out, node.successors)
	return out
}

// lookup finds a role by title, ignoring surrounding whitespace as AddRole does
func (g *Graph) lookup(title string) (*roleNode, bool) {
	node, ok := g.roles[strings.TrimSpace(title)]
	return node, ok
}

// AllRoles returns every registered role title in registration order.
func (g *Graph) AllRoles() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// HasRole reports whether title is registered.
func (g *Graph) HasRole(title string) bool {
	_, ok := g.lookup(title)
	return ok
}

// Len returns the number of registered roles.
func (g *Graph) Len() int {
	return len(g.order)
}

// TransitionCount returns the number of distinct edges.
func (g *Graph) TransitionCount() int {
	count := 0
	for _, node := range g.roles {
		count += len(node.successors)
	}
	return count
}

// Summary describes a single role, or returns false for an unknown title.
func (g *Graph) Summary(title string) (types.RoleSummary, bool) {
	node, ok := g.lookup(title)
	if !ok {
		return types.RoleSummary{}, false
	}
	return types.RoleSummary{
		Title:      node.title,
		Skills:     node.skills.Sorted(),
		Successors: g.Successors(title),
	}, true
}

// Summaries describes every role in registration order.
func (g *Graph) Summaries() []types.RoleSummary {
	out := make([]types.RoleSummary, 0, len(g.order))
	for _, title := range g.order {
		summary, _ := g.Summary(title)
		out = append(out, summary)
	}
	return out
}
