package careergraph

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/jonathan/career-pathfinder/internal/schemas"
	"github.com/jonathan/career-pathfinder/internal/types"
)

const (
	// DefinitionVersion is the version written by Definition.
	DefinitionVersion = "1.0.0"
	// supportedVersions is the range of definition versions this build reads.
	supportedVersions = "^1"
)

// FromDefinition builds a graph from a definition. Roles are registered
// first, then transitions in declaration order.
func FromDefinition(def *types.RoleGraphDefinition) (*Graph, error) {
	if def == nil {
		return nil, &DefinitionError{Message: "definition is nil"}
	}
	if err := checkVersion(def.Version); err != nil {
		return nil, err
	}

	g := New()
	for _, role := range def.Roles {
		if err := g.AddRole(role.Title, role.Skills...); err != nil {
			return nil, fmt.Errorf("failed to add role %q: %w", role.Title, err)
		}
	}
	for _, tr := range def.Transitions {
		if err := g.AddTransition(tr.From, tr.To); err != nil {
			return nil, fmt.Errorf("failed to add transition %q -> %q: %w", tr.From, tr.To, err)
		}
	}
	return g, nil
}

// Definition exports the graph in its on-disk form. Skills are sorted.
func (g *Graph) Definition() *types.RoleGraphDefinition {
	def := &types.RoleGraphDefinition{
		Version:     DefinitionVersion,
		Roles:       make([]types.RoleDefinition, 0, len(g.order)),
		Transitions: make([]types.TransitionDefinition, 0),
	}
	for _, title := range g.order {
		node := g.roles[title]
		def.Roles = append(def.Roles, types.RoleDefinition{
			Title:  title,
			Skills: node.skills.Sorted(),
		})
	}
	for _, title := range g.order {
		for _, to := range g.roles[title].successors {
			def.Transitions = append(def.Transitions, types.TransitionDefinition{From: title, To: to})
		}
	}
	return def
}

// ParseJSON decodes a JSON graph definition after validating it against the
// role graph schema.
func ParseJSON(data []byte) (*types.RoleGraphDefinition, error) {
	if err := schemas.ValidateRoleGraph(data); err != nil {
		return nil, &DefinitionError{Source: "json", Message: "schema validation failed", Cause: err}
	}

	var def types.RoleGraphDefinition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, &DefinitionError{Source: "json", Message: "failed to parse", Cause: err}
	}
	return &def, nil
}

// ParseTOML decodes a TOML graph definition:
//
//	version = "1.0.0"
//
//	[[roles]]
//	title = "Junior Backend Developer"
//	skills = ["Python", "SQL"]
//
//	[[transitions]]
//	from = "Junior Backend Developer"
//	to = "Senior Backend Developer"
func ParseTOML(data []byte) (*types.RoleGraphDefinition, error) {
	var def types.RoleGraphDefinition
	md, err := toml.Decode(string(data), &def)
	if err != nil {
		return nil, &DefinitionError{Source: "toml", Message: "failed to parse", Cause: err}
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, &DefinitionError{
			Source:  "toml",
			Message: fmt.Sprintf("unknown keys: %v", undecoded),
		}
	}
	for i, role := range def.Roles {
		if strings.TrimSpace(role.Title) == "" {
			return nil, &DefinitionError{Source: "toml", Message: fmt.Sprintf("roles[%d] has an empty title", i)}
		}
	}
	return &def, nil
}

// LoadFile reads a graph definition from a .json or .toml file and builds
// the graph.
func LoadFile(path string) (*Graph, error) {
	def, err := ReadDefinitionFile(path)
	if err != nil {
		return nil, err
	}
	g, err := FromDefinition(def)
	if err != nil {
		return nil, fmt.Errorf("failed to build graph from %s: %w", path, err)
	}
	return g, nil
}

// ReadDefinitionFile reads and decodes a graph definition file by extension.
func ReadDefinitionFile(path string) (*types.RoleGraphDefinition, error) {
	if path == "" {
		return nil, &DefinitionError{Message: "graph path is empty"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DefinitionError{Source: path, Message: "failed to read file", Cause: err}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSON(data)
	case ".toml":
		return ParseTOML(data)
	default:
		return nil, &DefinitionError{
			Source:  path,
			Message: fmt.Sprintf("unsupported file extension %q (want .json or .toml)", filepath.Ext(path)),
		}
	}
}

func checkVersion(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return &DefinitionError{Message: "version is required"}
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		return &DefinitionError{Message: fmt.Sprintf("invalid version %q", raw), Cause: err}
	}
	constraint, err := semver.NewConstraint(supportedVersions)
	if err != nil {
		return &DefinitionError{Message: "invalid supported version range", Cause: err}
	}
	if !constraint.Check(v) {
		return &DefinitionError{Message: fmt.Sprintf("unsupported version %s (supported: %s)", v, supportedVersions)}
	}
	return nil
}
