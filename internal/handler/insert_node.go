package handler

import (
	"encoding/json"

	"github.com/chiply/cn-diagrams/internal/editor"
	"github.com/chiply/cn-diagrams/internal/ident"
	"github.com/chiply/cn-diagrams/internal/registry"
)

type insertNodeParams struct {
	Node     editor.NodeData `json:"node"`
	ParentID string          `json:"parent_id,omitempty"`
}

type insertNodeHandler struct{}

func init() {
	registry.Default.Register(insertNodeHandler{})
}

func (insertNodeHandler) Name() string { return "insert_node" }

// Apply inserts the node, allocating an id from its label when none is given.
func (insertNodeHandler) Apply(text string, params json.RawMessage) (string, error) {
	var p insertNodeParams
	if err := decode(params, &p); err != nil {
		return "", err
	}
	if err := requireParam("node.label", p.Node.Label); err != nil {
		return "", err
	}
	if p.Node.ID == "" {
		p.Node.ID = ident.Allocate(text, p.Node.Label)
	}
	return editor.InsertNode(text, p.Node, p.ParentID), nil
}
