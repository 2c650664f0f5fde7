package result

import (
	"github.com/chiply/cn-diagrams/internal/diagram"
	"github.com/chiply/cn-diagrams/internal/graph"
)

// Error types reported by the outer surfaces.
const (
	TypeInvalidJSON      = "invalid_json"
	TypeInvalidInput     = "invalid_input"
	TypeUnknownOperation = "unknown_operation"
	TypeInternal         = "internal_error"
)

// Error represents a request-level failure.
type Error struct {
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// NewError returns an error-severity Error.
func NewError(typ, message, suggestion string) Error {
	return Error{Type: typ, Severity: "error", Message: message, Suggestion: suggestion}
}

// ParseResult is the result of parsing a diagram's text.
type ParseResult struct {
	Success     bool            `json:"success"`
	Name        string          `json:"name,omitempty"`
	Description string          `json:"description,omitempty"`
	Elements    []graph.Element `json:"elements"`
	Errors      []string        `json:"errors,omitempty"`
}

// FromDiagram builds a ParseResult from a parsed diagram and its projected
// elements.
func FromDiagram(d *diagram.Diagram, elements []graph.Element) ParseResult {
	if elements == nil {
		elements = []graph.Element{}
	}
	if d == nil {
		return ParseResult{Elements: elements, Errors: []string{"Diagram is nil"}}
	}
	return ParseResult{
		Success:     len(d.Errors) == 0,
		Name:        d.Name,
		Description: d.Description,
		Elements:    elements,
		Errors:      d.Errors,
	}
}

// EditResult is the outcome of one edit operation.
type EditResult struct {
	Text    string `json:"text"`
	Changed bool   `json:"changed"`
}
