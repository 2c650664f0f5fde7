package hclexport

import (
	"bytes"
)

// Builder collects the blocks of an exported diagram in order: the diagram
// header first, then nodes, then edges.
type Builder struct {
	header []byte
	nodes  [][]byte
	edges  [][]byte
}

// NewBuilder returns a new empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// SetHeader sets the diagram block.
func (b *Builder) SetHeader(block []byte) {
	b.header = block
}

// AddNode appends a node block.
func (b *Builder) AddNode(block []byte) {
	if len(block) == 0 {
		return
	}
	b.nodes = append(b.nodes, block)
}

// AddEdge appends an edge block.
func (b *Builder) AddEdge(block []byte) {
	if len(block) == 0 {
		return
	}
	b.edges = append(b.edges, block)
}

// Build joins the blocks, separated by blank lines.
func (b *Builder) Build() []byte {
	var blocks [][]byte
	if len(b.header) > 0 {
		blocks = append(blocks, b.header)
	}
	blocks = append(blocks, b.nodes...)
	blocks = append(blocks, b.edges...)
	return bytes.Join(blocks, []byte("\n"))
}
