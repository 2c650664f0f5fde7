package handler

import (
	"encoding/json"

	"github.com/chiply/cn-diagrams/internal/editor"
	"github.com/chiply/cn-diagrams/internal/registry"
)

type renameLabelParams struct {
	NodeID string `json:"node_id"`
	Label  string `json:"label"`
}

type renameLabelHandler struct{}

func init() {
	registry.Default.Register(renameLabelHandler{})
}

func (renameLabelHandler) Name() string { return "rename_label" }

func (renameLabelHandler) Apply(text string, params json.RawMessage) (string, error) {
	var p renameLabelParams
	if err := decode(params, &p); err != nil {
		return "", err
	}
	if err := requireParam("node_id", p.NodeID); err != nil {
		return "", err
	}
	return editor.RenameLabel(text, p.NodeID, p.Label), nil
}
