package diagram

// Diagram is the flat model produced from the structured text. It is always
// returned by the parser, even on failure; Errors lists the structural problems
// found while building it.
type Diagram struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Nodes       []Node   `json:"nodes"`
	Edges       []Edge   `json:"edges"`
	Errors      []string `json:"errors"`
}

// Node is a flattened diagram node. Parent is empty for top-level nodes.
type Node struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Parent      string `json:"parent,omitempty"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	Technology  string `json:"technology,omitempty"`
}

// Edge represents a relationship between two nodes.
type Edge struct {
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	Target      string    `json:"target"`
	Label       string    `json:"label,omitempty"`
	Description string    `json:"description,omitempty"`
	Technology  string    `json:"technology,omitempty"`
	Style       EdgeStyle `json:"style,omitempty"`
}

// EdgeStyle is the line style of an edge.
type EdgeStyle string

const (
	StyleSolid  EdgeStyle = "solid"
	StyleDashed EdgeStyle = "dashed"
	StyleDotted EdgeStyle = "dotted"
)

// Valid reports whether s is one of the known styles. The empty style is valid.
func (s EdgeStyle) Valid() bool {
	switch s {
	case "", StyleSolid, StyleDashed, StyleDotted:
		return true
	}
	return false
}

// Empty returns a diagram with no nodes or edges carrying the given errors.
func Empty(errs ...string) *Diagram {
	return &Diagram{
		Nodes:  []Node{},
		Edges:  []Edge{},
		Errors: append([]string{}, errs...),
	}
}

// NodeByID returns the node with the given id, or nil.
func (d *Diagram) NodeByID(id string) *Node {
	for i := range d.Nodes {
		if d.Nodes[i].ID == id {
			return &d.Nodes[i]
		}
	}
	return nil
}

// Children returns the direct children of the node with the given id, in order.
func (d *Diagram) Children(parentID string) []Node {
	var out []Node
	for _, n := range d.Nodes {
		if n.Parent == parentID && parentID != "" {
			out = append(out, n)
		}
	}
	return out
}

// Roots returns the top-level nodes, in order.
func (d *Diagram) Roots() []Node {
	var out []Node
	for _, n := range d.Nodes {
		if n.Parent == "" {
			out = append(out, n)
		}
	}
	return out
}

// IsCompound reports whether some node names id as its parent.
func (d *Diagram) IsCompound(id string) bool {
	for _, n := range d.Nodes {
		if n.Parent == id {
			return true
		}
	}
	return false
}

// EdgesWithTarget returns edges whose target is the given node id.
func (d *Diagram) EdgesWithTarget(targetID string) []Edge {
	var out []Edge
	for _, e := range d.Edges {
		if e.Target == targetID {
			out = append(out, e)
		}
	}
	return out
}

// EdgesWithSource returns edges whose source is the given node id.
func (d *Diagram) EdgesWithSource(sourceID string) []Edge {
	var out []Edge
	for _, e := range d.Edges {
		if e.Source == sourceID {
			out = append(out, e)
		}
	}
	return out
}
