// Package schemas embeds the JSON Schemas that describe on-disk artifacts
// (role graph definitions and profile files).
package schemas

import _ "embed"

// RoleGraph is the JSON Schema for role graph definition files.
//
//go:embed role_graph.schema.json
var RoleGraph string

// Profile is the JSON Schema for profile files passed to the CLI.
//
//go:embed profile.schema.json
var Profile string
