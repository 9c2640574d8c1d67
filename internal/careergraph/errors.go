// Package careergraph provides the role-transition graph used to recommend career moves.
package careergraph

import "fmt"

// DuplicateRoleError indicates a role title was registered twice
type DuplicateRoleError struct {
	Title string
}

func (e *DuplicateRoleError) Error() string {
	return fmt.Sprintf("duplicate role: %q is already registered", e.Title)
}

// UnknownRoleError indicates a transition references an unregistered role
type UnknownRoleError struct {
	Title string
}

func (e *UnknownRoleError) Error() string {
	return fmt.Sprintf("unknown role: %q is not registered", e.Title)
}

// DefinitionError represents an error while reading or building a graph definition
type DefinitionError struct {
	Source  string
	Message string
	Cause   error
}

func (e *DefinitionError) Error() string {
	prefix := "graph definition error"
	if e.Source != "" {
		prefix = fmt.Sprintf("graph definition error (%s)", e.Source)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *DefinitionError) Unwrap() error {
	return e.Cause
}
