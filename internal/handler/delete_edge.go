package handler

import (
	"encoding/json"

	"github.com/chiply/cn-diagrams/internal/editor"
	"github.com/chiply/cn-diagrams/internal/registry"
)

type deleteEdgeParams struct {
	EdgeID string `json:"edge_id"`
}

type deleteEdgeHandler struct{}

func init() {
	registry.Default.Register(deleteEdgeHandler{})
}

func (deleteEdgeHandler) Name() string { return "delete_edge" }

func (deleteEdgeHandler) Apply(text string, params json.RawMessage) (string, error) {
	var p deleteEdgeParams
	if err := decode(params, &p); err != nil {
		return "", err
	}
	if err := requireParam("edge_id", p.EdgeID); err != nil {
		return "", err
	}
	return editor.DeleteEdge(text, p.EdgeID), nil
}
