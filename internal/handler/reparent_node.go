package handler

import (
	"encoding/json"

	"github.com/chiply/cn-diagrams/internal/editor"
	"github.com/chiply/cn-diagrams/internal/registry"
)

type reparentNodeParams struct {
	NodeID   string `json:"node_id"`
	ParentID string `json:"parent_id,omitempty"`
}

type reparentNodeHandler struct{}

func init() {
	registry.Default.Register(reparentNodeHandler{})
}

func (reparentNodeHandler) Name() string { return "reparent_node" }

func (reparentNodeHandler) Apply(text string, params json.RawMessage) (string, error) {
	var p reparentNodeParams
	if err := decode(params, &p); err != nil {
		return "", err
	}
	if err := requireParam("node_id", p.NodeID); err != nil {
		return "", err
	}
	return editor.ReparentNode(text, p.NodeID, p.ParentID), nil
}
