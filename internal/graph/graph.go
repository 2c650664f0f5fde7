// Package graph projects a flat diagram into the element list consumed by the
// layout and rendering collaborator.
//
// The element shape follows Cytoscape's element definitions: every element has
// a group ("nodes" or "edges") and a data object. Hierarchy travels through the
// node data's parent field; edges carry source and target ids.
package graph

import (
	"strings"
	"unicode/utf8"

	"github.com/chiply/cn-diagrams/internal/diagram"
)

// DefaultDescriptionLimit is the number of description characters shown in a
// node's display label.
const DefaultDescriptionLimit = 40

// Ellipsis marks a truncated description.
const Ellipsis = "..."

// Element groups.
const (
	GroupNodes = "nodes"
	GroupEdges = "edges"
)

// Options configures the projection.
type Options struct {
	// DescriptionLimit caps the description line of node display labels.
	// Values below 1 use DefaultDescriptionLimit.
	DescriptionLimit int
}

// DefaultOptions returns default projection options.
func DefaultOptions() Options {
	return Options{DescriptionLimit: DefaultDescriptionLimit}
}

// Element is one node or edge handed to the renderer. Data is a NodeData for
// the nodes group and an EdgeData for the edges group.
type Element struct {
	Group string `json:"group"`
	Data  any    `json:"data"`
}

// NodeData describes a graph node.
type NodeData struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	DisplayLabel string `json:"displayLabel"`
	Parent       string `json:"parent,omitempty"`
	Description  string `json:"description,omitempty"`
	Type         string `json:"type,omitempty"`
	Technology   string `json:"technology,omitempty"`
}

// EdgeData describes a graph edge.
type EdgeData struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	Label        string `json:"label"`
	DisplayLabel string `json:"displayLabel"`
	Description  string `json:"description,omitempty"`
	Technology   string `json:"technology,omitempty"`
	Style        string `json:"style,omitempty"`
}

// Project returns one element per node followed by one element per edge, in
// diagram order. A nil diagram projects to an empty list.
func Project(d *diagram.Diagram, opts Options) []Element {
	if d == nil {
		return []Element{}
	}
	limit := opts.DescriptionLimit
	if limit < 1 {
		limit = DefaultDescriptionLimit
	}

	out := make([]Element, 0, len(d.Nodes)+len(d.Edges))
	for _, n := range d.Nodes {
		out = append(out, Element{Group: GroupNodes, Data: NodeData{
			ID:           n.ID,
			Label:        n.Label,
			DisplayLabel: NodeLabel(n, limit),
			Parent:       n.Parent,
			Description:  n.Description,
			Type:         n.Type,
			Technology:   n.Technology,
		}})
	}
	for _, e := range d.Edges {
		out = append(out, Element{Group: GroupEdges, Data: EdgeData{
			ID:           e.ID,
			Source:       e.Source,
			Target:       e.Target,
			Label:        e.Label,
			DisplayLabel: EdgeLabel(e),
			Description:  e.Description,
			Technology:   e.Technology,
			Style:        string(e.Style),
		}})
	}
	return out
}

// NodeLabel builds the multi-line display label of a node: the label, then
// "[technology]", then the description truncated to limit characters.
func NodeLabel(n diagram.Node, limit int) string {
	lines := []string{n.Label}
	if n.Technology != "" {
		lines = append(lines, "["+n.Technology+"]")
	}
	if n.Description != "" {
		lines = append(lines, Truncate(n.Description, limit))
	}
	return strings.Join(lines, "\n")
}

// EdgeLabel builds the display label of an edge: the label followed by
// " [technology]" when a technology is set.
func EdgeLabel(e diagram.Edge) string {
	if e.Technology == "" {
		return e.Label
	}
	if e.Label == "" {
		return "[" + e.Technology + "]"
	}
	return e.Label + " [" + e.Technology + "]"
}

// Truncate cuts s to limit characters, trims trailing whitespace and appends
// Ellipsis. Strings within the limit are returned unchanged.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:limit]), " \t\r\n") + Ellipsis
}

// Nodes returns the node data of elements, in order.
func Nodes(elements []Element) []NodeData {
	var out []NodeData
	for _, el := range elements {
		if n, ok := el.Data.(NodeData); ok {
			out = append(out, n)
		}
	}
	return out
}

// Edges returns the edge data of elements, in order.
func Edges(elements []Element) []EdgeData {
	var out []EdgeData
	for _, el := range elements {
		if e, ok := el.Data.(EdgeData); ok {
			out = append(out, e)
		}
	}
	return out
}
