package scene

import (
	"errors"
	"fmt"
	"strings"
)

// Custom errors
var (
	// ErrNotFound is returned by stores when the requested scene does not exist.
	ErrNotFound = errors.New("scene not found")
	// ErrSchema matches every *SchemaError through errors.Is.
	ErrSchema = errors.New("schema error")
	// ErrNilScene is returned when a nil scene is serialized.
	ErrNilScene = errors.New("nil scene")
)

// Entity kinds used in violations.
const (
	EntityScene     = "scene"
	EntityMaterial  = "material"
	EntityPrimitive = "primitive"
)

// Violation describes one way in which a scene does not conform to the document schema.
type Violation struct {
	Entity  string `json:"entity"`
	Name    string `json:"name,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	var sb strings.Builder
	sb.WriteString(v.Entity)
	if v.Name != "" {
		fmt.Fprintf(&sb, " %q", v.Name)
	}
	if v.Field != "" {
		sb.WriteString(" field ")
		sb.WriteString(v.Field)
	}
	sb.WriteString(": ")
	sb.WriteString(v.Message)
	return sb.String()
}

// SchemaError is raised when scene data is malformed or inconsistent: broken material references,
// wrong vector arity, negative sizes and the like. It is a construction-time error only.
type SchemaError struct {
	Violations []Violation
}

func (e *SchemaError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return "schema error: " + strings.Join(parts, "; ")
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

func schemaViolation(entity, name, field, message string) *SchemaError {
	return &SchemaError{Violations: []Violation{{Entity: entity, Name: name, Field: field, Message: message}}}
}

// asSchemaError keeps schema errors as they are and turns anything else (syntax errors, type mismatches)
// into a scene-level violation.
func asSchemaError(err error) *SchemaError {
	var se *SchemaError
	if errors.As(err, &se) {
		return se
	}
	return schemaViolation(EntityScene, "", "", err.Error())
}

// UpstreamError wraps a failure of the data source a scene was loaded from.
type UpstreamError struct {
	Source string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("scene source %s: %v", e.Source, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
