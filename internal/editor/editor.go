// Package editor applies graph-originated edits to a diagram's structured
// text.
//
// Every mutator takes the current text and returns the new text. Each call
// parses the text afresh and rewrites only the lines the edit names, so
// comments, blank lines, indentation and untouched entries survive byte for
// byte. When a precondition fails (the text does not parse, a collection is
// not a list, an id is unknown) the original text is returned unchanged; the
// same holds when the edit would not change anything or when its result would
// not parse. Mutators never return errors: callers that need to detect a
// failed edit compare the result with the input.
package editor

import (
	"gopkg.in/yaml.v3"

	"github.com/chiply/cn-diagrams/internal/document"
)

// NodeData is the content of a new node.
type NodeData struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	Technology  string `json:"technology,omitempty"`
}

// NodeProps is a partial node update. Nil fields are left alone; non-nil
// fields are written, including empty strings.
type NodeProps struct {
	Label       *string `json:"label,omitempty"`
	Description *string `json:"description,omitempty"`
	Type        *string `json:"type,omitempty"`
	Technology  *string `json:"technology,omitempty"`
}

// EdgeData is the content of a new edge.
type EdgeData struct {
	ID          string `json:"id,omitempty"`
	Source      string `json:"source"`
	Target      string `json:"target"`
	Label       string `json:"label,omitempty"`
	Description string `json:"description,omitempty"`
	Technology  string `json:"technology,omitempty"`
	Style       string `json:"style,omitempty"`
}

// mutate parses text, runs fn and encodes the document when fn reports a
// change. Any failure, including output that no longer parses (an alias left
// without its anchor), returns text as given.
func mutate(text string, fn func(doc *document.Document) bool) string {
	doc, err := document.Parse(text)
	if err != nil {
		return text
	}
	if !fn(doc) {
		return text
	}
	out, err := doc.Encode()
	if err != nil {
		return text
	}
	if _, err := document.Parse(out); err != nil {
		return text
	}
	return out
}

func (n NodeData) mapping() *yaml.Node {
	return document.NewMapping(
		document.KeyID, n.ID,
		document.KeyLabel, n.Label,
		document.KeyDescription, n.Description,
		document.KeyType, n.Type,
		document.KeyTechnology, n.Technology,
	)
}

func (e EdgeData) mapping() *yaml.Node {
	return document.NewMapping(
		document.KeyID, e.ID,
		document.KeySource, e.Source,
		document.KeyTarget, e.Target,
		document.KeyLabel, e.Label,
		document.KeyDescription, e.Description,
		document.KeyTechnology, e.Technology,
		document.KeyStyle, e.Style,
	)
}

// String returns a pointer to s, for building NodeProps.
func String(s string) *string {
	return &s
}
