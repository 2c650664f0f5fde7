// Package hclexport writes a parsed diagram as an HCL configuration: one
// diagram block, one node block per node and one edge block per edge, with
// parents and endpoints written as node.<id> references.
package hclexport

import (
	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/chiply/cn-diagrams/internal/diagram"
)

// Block types of the exported configuration.
const (
	BlockDiagram = "diagram"
	BlockNode    = "node"
	BlockEdge    = "edge"
)

// Export renders d as HCL. A nil diagram gives nil.
func Export(d *diagram.Diagram) []byte {
	if d == nil {
		return nil
	}
	b := NewBuilder()
	if d.Name != "" || d.Description != "" {
		block := hclwrite.NewBlock(BlockDiagram, nil)
		SetAttributeStr(block.Body(), "name", d.Name)
		SetAttributeStr(block.Body(), "description", d.Description)
		b.SetHeader(BlockToBytes(block))
	}
	for _, n := range d.Nodes {
		b.AddNode(BlockToBytes(NodeBlock(n)))
	}
	for _, e := range d.Edges {
		b.AddEdge(BlockToBytes(EdgeBlock(e)))
	}
	return b.Build()
}

// NodeBlock builds the node "<id>" block for n.
func NodeBlock(n diagram.Node) *hclwrite.Block {
	block := hclwrite.NewBlock(BlockNode, []string{n.ID})
	body := block.Body()
	SetAttributeStr(body, "label", n.Label)
	SetNodeRef(body, "parent", n.Parent)
	SetAttributeStr(body, "type", n.Type)
	SetAttributeStr(body, "technology", n.Technology)
	SetAttributeStr(body, "description", n.Description)
	return block
}

// EdgeBlock builds the edge "<id>" block for e.
func EdgeBlock(e diagram.Edge) *hclwrite.Block {
	block := hclwrite.NewBlock(BlockEdge, []string{e.ID})
	body := block.Body()
	SetNodeRef(body, "source", e.Source)
	SetNodeRef(body, "target", e.Target)
	SetAttributeStr(body, "label", e.Label)
	SetAttributeStr(body, "description", e.Description)
	SetAttributeStr(body, "technology", e.Technology)
	SetAttributeStr(body, "style", string(e.Style))
	return block
}
