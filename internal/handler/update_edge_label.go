package handler

import (
	"encoding/json"

	"github.com/chiply/cn-diagrams/internal/editor"
	"github.com/chiply/cn-diagrams/internal/registry"
)

type updateEdgeLabelParams struct {
	EdgeID string `json:"edge_id"`
	Label  string `json:"label"`
}

type updateEdgeLabelHandler struct{}

func init() {
	registry.Default.Register(updateEdgeLabelHandler{})
}

func (updateEdgeLabelHandler) Name() string { return "update_edge_label" }

func (updateEdgeLabelHandler) Apply(text string, params json.RawMessage) (string, error) {
	var p updateEdgeLabelParams
	if err := decode(params, &p); err != nil {
		return "", err
	}
	if err := requireParam("edge_id", p.EdgeID); err != nil {
		return "", err
	}
	return editor.UpdateEdgeLabel(text, p.EdgeID, p.Label), nil
}
