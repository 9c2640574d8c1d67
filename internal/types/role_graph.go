// Package types provides type definitions for structured data used throughout the career-pathfinder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// RoleGraphDefinition is the on-disk description of a role-transition graph.
// Transition order is significant: it fixes successor enumeration order.
type RoleGraphDefinition struct {
	Version     string                 `json:"version" toml:"version"`
	Roles       []RoleDefinition       `json:"roles" toml:"roles"`
	Transitions []TransitionDefinition `json:"transitions" toml:"transitions"`
}

// RoleDefinition declares a single role node and its required skills.
type RoleDefinition struct {
	Title  string   `json:"title" toml:"title"`
	Skills []string `json:"skills" toml:"skills"`
}

// TransitionDefinition declares a directed one-hop career move.
type TransitionDefinition struct {
	From string `json:"from" toml:"from"`
	To   string `json:"to" toml:"to"`
}

// RoleSummary describes a role for API and CLI listings.
type RoleSummary struct {
	Title      string   `json:"title"`
	Skills     []string `json:"skills"`
	Successors []string `json:"successors"`
}
