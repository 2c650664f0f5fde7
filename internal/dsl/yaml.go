package dsl

import (
	"github.com/chiply/cn-diagrams/internal/diagram"
	"github.com/chiply/cn-diagrams/internal/document"
	"github.com/chiply/cn-diagrams/internal/editor"
)

// ToYAML writes d as diagram YAML. Nodes and edges go through the same
// mutators the editor uses, so the result parses back to d. Nodes that the
// mutators refuse (repeated ids, unknown parents) are left out.
func ToYAML(d *diagram.Diagram) string {
	if d == nil {
		return ""
	}
	text := header(d)
	for _, n := range d.Nodes {
		label := n.Label
		if label == "" {
			label = n.ID
		}
		text = editor.InsertNode(text, editor.NodeData{
			ID:          n.ID,
			Label:       label,
			Description: n.Description,
			Type:        n.Type,
			Technology:  n.Technology,
		}, n.Parent)
	}
	for _, e := range d.Edges {
		text = editor.AddEdge(text, editor.EdgeData{
			Source:      e.Source,
			Target:      e.Target,
			Label:       e.Label,
			Description: e.Description,
			Technology:  e.Technology,
			Style:       string(e.Style),
		})
	}
	return text
}

func header(d *diagram.Diagram) string {
	if d.Name == "" && d.Description == "" {
		return ""
	}
	doc, err := document.Parse("")
	if err != nil {
		return ""
	}
	root, _ := doc.EnsureRoot()
	if d.Name != "" {
		doc.SetString(root, document.KeyName, d.Name)
	}
	if d.Description != "" {
		doc.SetString(root, document.KeyDescription, d.Description)
	}
	text, err := doc.Encode()
	if err != nil {
		return ""
	}
	return text
}
