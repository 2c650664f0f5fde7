package handler

import (
	"encoding/json"

	"github.com/chiply/cn-diagrams/internal/editor"
	"github.com/chiply/cn-diagrams/internal/registry"
)

type updateNodeParams struct {
	NodeID string           `json:"node_id"`
	Props  editor.NodeProps `json:"props"`
}

type updateNodeHandler struct{}

func init() {
	registry.Default.Register(updateNodeHandler{})
}

func (updateNodeHandler) Name() string { return "update_node" }

func (updateNodeHandler) Apply(text string, params json.RawMessage) (string, error) {
	var p updateNodeParams
	if err := decode(params, &p); err != nil {
		return "", err
	}
	if err := requireParam("node_id", p.NodeID); err != nil {
		return "", err
	}
	return editor.UpdateNodeProperties(text, p.NodeID, p.Props), nil
}
