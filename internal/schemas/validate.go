// Package schemas provides JSON Schema validation for role graph definitions and profile files.
package schemas

import (
	"fmt"
	"strings"

	embedded "github.com/jonathan/career-pathfinder/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Document string
	Errors   []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	if ve.Document != "" {
		sb.WriteString(fmt.Sprintf("%s validation failed:\n", ve.Document))
	} else {
		sb.WriteString("validation failed:\n")
	}
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading the schema or the document itself
type SchemaLoadError struct {
	Document string
	Message  string
	Cause    error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load %s: %s: %v", e.Document, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load %s: %s", e.Document, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateRoleGraph validates raw JSON against the role graph schema.
func ValidateRoleGraph(data []byte) error {
	return validate("role graph", embedded.RoleGraph, string(data))
}

// ValidateProfile validates raw JSON against the profile schema.
func ValidateProfile(data []byte) error {
	return validate("profile", embedded.Profile, string(data))
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	return validate("", schemaContent, jsonContent)
}

func validate(document, schemaContent, jsonContent string) error {
	label := document
	if label == "" {
		label = "(string document)"
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaContent),
		gojsonschema.NewStringLoader(jsonContent),
	)
	if err != nil {
		// Malformed schema or malformed document
		return &SchemaLoadError{
			Document: label,
			Message:  "schema validation failed during load",
			Cause:    err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Document: document,
		Errors:   make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
