package parser

import (
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/chiply/cn-diagrams/internal/diagram"
	"github.com/chiply/cn-diagrams/internal/document"
)

// Messages for failures that leave the diagram empty.
const (
	ErrEmptyDocument = "Empty document"
	ErrInvalidNodes  = "Missing or invalid nodes array"
	ErrInvalidEdges  = "Invalid edges array"
)

// DiagramParser turns structured text into a flat diagram.
type DiagramParser struct {
	opts Options
}

// New returns a new parser with the given options.
func New(opts Options) *DiagramParser {
	return &DiagramParser{opts: opts}
}

// Parse parses text with the default options.
func Parse(text string) *diagram.Diagram {
	return New(DefaultOptions()).Parse(text)
}

// Parse builds the flat diagram for text. It never fails: problems are
// collected in the diagram's Errors and everything still well-formed is kept.
func (p *DiagramParser) Parse(text string) *diagram.Diagram {
	doc, err := document.Parse(text)
	if err != nil {
		if cause := errors.Unwrap(err); cause != nil {
			err = cause
		}
		return diagram.Empty("Parse error: " + err.Error())
	}
	if doc.IsEmpty() {
		return diagram.Empty(ErrEmptyDocument)
	}
	nodes := doc.Nodes()
	if nodes == nil {
		return diagram.Empty(ErrInvalidNodes)
	}

	out := diagram.Empty()
	root := doc.Root()
	out.Name, _ = document.String(root, document.KeyName)
	out.Description, _ = document.String(root, document.KeyDescription)

	f := &flattener{out: out, seen: make(map[string]bool)}
	f.flatten(nodes, "", "")

	edges := document.Get(root, document.KeyEdges)
	switch {
	case document.IsNull(edges):
	case edges.Kind != yaml.SequenceNode:
		out.Errors = append(out.Errors, ErrInvalidEdges)
	default:
		p.parseEdges(out, edges, f.seen)
	}
	return out
}

// flattener walks the nodes forest in pre-order.
type flattener struct {
	out  *diagram.Diagram
	seen map[string]bool
}

func (f *flattener) flatten(seq *yaml.Node, parent, path string) {
	for i, item := range seq.Content {
		itemPath := strconv.Itoa(i + 1)
		if path != "" {
			itemPath = path + "." + itemPath
		}
		if item.Kind == yaml.AliasNode {
			item = item.Alias
		}
		if item.Kind != yaml.MappingNode {
			f.errorf("Node %s: Expected a mapping", itemPath)
			continue
		}
		id, _ := document.String(item, document.KeyID)
		if id == "" {
			f.errorf("Node %s: Missing id", itemPath)
			continue
		}

		if f.seen[id] {
			f.out.Errors = append(f.out.Errors, diagram.DuplicateNodeMessage(id))
		} else {
			f.seen[id] = true
			f.out.Nodes = append(f.out.Nodes, f.node(item, id, parent))
		}

		children := document.Get(item, document.KeyChildren)
		switch {
		case document.IsNull(children):
		case children.Kind != yaml.SequenceNode:
			f.errorf("Node %q: Invalid children array", id)
		default:
			f.flatten(children, id, itemPath)
		}
	}
}

func (f *flattener) node(m *yaml.Node, id, parent string) diagram.Node {
	n := diagram.Node{ID: id, Parent: parent}
	label, ok := document.String(m, document.KeyLabel)
	if !ok {
		f.errorf("Node %q: Missing label", id)
		label = id
	}
	n.Label = label
	n.Description, _ = document.String(m, document.KeyDescription)
	n.Type, _ = document.String(m, document.KeyType)
	n.Technology, _ = document.String(m, document.KeyTechnology)
	return n
}

func (f *flattener) errorf(format string, args ...any) {
	f.out.Errors = append(f.out.Errors, fmt.Sprintf(format, args...))
}

func (p *DiagramParser) parseEdges(out *diagram.Diagram, seq *yaml.Node, nodes map[string]bool) {
	var exists func(string) bool
	if p.opts.ValidateReferences {
		exists = func(id string) bool { return nodes[id] }
	}
	ids := document.EdgeIDs(seq)
	seenIDs := make(map[string]bool)

	for i, item := range seq.Content {
		if item.Kind == yaml.AliasNode {
			item = item.Alias
		}
		var e diagram.Edge
		if item.Kind == yaml.MappingNode {
			e.Source, _ = document.String(item, document.KeySource)
			e.Target, _ = document.String(item, document.KeyTarget)
		}
		if e.Source == "" || e.Target == "" {
			out.Errors = append(out.Errors, diagram.MissingEndpointMessage(i))
			continue
		}
		explicit, _ := document.String(item, document.KeyID)
		e.ID = ids.Next(explicit, e.Source, e.Target)

		if msg := diagram.CheckEdge(i, e, exists); msg != "" {
			out.Errors = append(out.Errors, msg)
			continue
		}
		if seenIDs[e.ID] {
			out.Errors = append(out.Errors, diagram.DuplicateEdgeMessage(i, e.ID))
			continue
		}
		seenIDs[e.ID] = true

		e.Label, _ = document.String(item, document.KeyLabel)
		e.Description, _ = document.String(item, document.KeyDescription)
		e.Technology, _ = document.String(item, document.KeyTechnology)
		style, _ := document.String(item, document.KeyStyle)
		e.Style = diagram.EdgeStyle(style)
		if !e.Style.Valid() {
			out.Errors = append(out.Errors, diagram.InvalidStyleMessage(i, style))
			e.Style = ""
		}
		out.Edges = append(out.Edges, e)
	}
}
