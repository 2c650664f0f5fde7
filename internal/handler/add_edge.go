package handler

import (
	"encoding/json"

	"github.com/chiply/cn-diagrams/internal/editor"
	"github.com/chiply/cn-diagrams/internal/registry"
)

type addEdgeParams struct {
	Edge editor.EdgeData `json:"edge"`
}

type addEdgeHandler struct{}

func init() {
	registry.Default.Register(addEdgeHandler{})
}

func (addEdgeHandler) Name() string { return "add_edge" }

func (addEdgeHandler) Apply(text string, params json.RawMessage) (string, error) {
	var p addEdgeParams
	if err := decode(params, &p); err != nil {
		return "", err
	}
	if err := requireParam("edge.source", p.Edge.Source); err != nil {
		return "", err
	}
	if err := requireParam("edge.target", p.Edge.Target); err != nil {
		return "", err
	}
	return editor.AddEdge(text, p.Edge), nil
}
