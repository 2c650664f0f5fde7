package handler

import (
	"encoding/json"

	"github.com/chiply/cn-diagrams/internal/editor"
	"github.com/chiply/cn-diagrams/internal/registry"
)

type deleteNodeParams struct {
	NodeID string `json:"node_id"`
}

type deleteNodeHandler struct{}

func init() {
	registry.Default.Register(deleteNodeHandler{})
}

func (deleteNodeHandler) Name() string { return "delete_node" }

func (deleteNodeHandler) Apply(text string, params json.RawMessage) (string, error) {
	var p deleteNodeParams
	if err := decode(params, &p); err != nil {
		return "", err
	}
	if err := requireParam("node_id", p.NodeID); err != nil {
		return "", err
	}
	return editor.DeleteNode(text, p.NodeID), nil
}
