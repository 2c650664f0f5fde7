package document

import (
	"gopkg.in/yaml.v3"

	"github.com/chiply/cn-diagrams/internal/diagram"
)

// Location is where a diagram node sits in the document.
type Location struct {
	// Node is the node's mapping.
	Node *yaml.Node
	// Parent is the sequence holding Node: the root nodes list or the
	// children list of Owner.
	Parent *yaml.Node
	// Index is Node's position in Parent.
	Index int
	// Owner is the mapping of the enclosing diagram node, nil at the root.
	Owner *yaml.Node
}

// Locate finds the first node with the given id, searching the root nodes
// sequence and every nested children sequence depth-first in document order.
func (d *Document) Locate(id string) (Location, bool) {
	nodes := d.Nodes()
	if nodes == nil {
		return Location{}, false
	}
	return locateIn(nodes, nil, id)
}

func locateIn(seq, owner *yaml.Node, id string) (Location, bool) {
	for i, item := range seq.Content {
		item = resolve(item)
		if item.Kind != yaml.MappingNode {
			continue
		}
		if itemID, ok := String(item, KeyID); ok && itemID == id {
			return Location{Node: item, Parent: seq, Index: i, Owner: owner}, true
		}
		if children := sequence(item, KeyChildren); children != nil {
			if loc, ok := locateIn(children, item, id); ok {
				return loc, true
			}
		}
	}
	return Location{}, false
}

// Contains reports whether the subtree rooted at mapping n holds a node with
// the given id, n included.
func Contains(n *yaml.Node, id string) bool {
	if itemID, ok := String(n, KeyID); ok && itemID == id {
		return true
	}
	children := sequence(n, KeyChildren)
	if children == nil {
		return false
	}
	_, ok := locateIn(children, n, id)
	return ok
}

// WalkNodes calls fn for every node mapping in the forest in pre-order.
func (d *Document) WalkNodes(fn func(n *yaml.Node)) {
	if nodes := d.Nodes(); nodes != nil {
		walk(nodes, fn)
	}
}

func walk(seq *yaml.Node, fn func(n *yaml.Node)) {
	for _, item := range seq.Content {
		item = resolve(item)
		if item.Kind != yaml.MappingNode {
			continue
		}
		fn(item)
		if children := sequence(item, KeyChildren); children != nil {
			walk(children, fn)
		}
	}
}

// EdgeEntry is one well-formed item of the edges sequence.
type EdgeEntry struct {
	Node   *yaml.Node
	Index  int
	ID     string
	Source string
	Target string
}

// EdgeEntries lists the edges that have both a source and a target, with the
// ids the parser assigns them.
func (d *Document) EdgeEntries() []EdgeEntry {
	edges := d.Edges()
	if edges == nil {
		return nil
	}
	ids := EdgeIDs(edges)
	var out []EdgeEntry
	for i, item := range edges.Content {
		item = resolve(item)
		if item.Kind != yaml.MappingNode {
			continue
		}
		source, _ := String(item, KeySource)
		target, _ := String(item, KeyTarget)
		if source == "" || target == "" {
			continue
		}
		explicit, _ := String(item, KeyID)
		out = append(out, EdgeEntry{
			Node:   item,
			Index:  i,
			ID:     ids.Next(explicit, source, target),
			Source: source,
			Target: target,
		})
	}
	return out
}

// EdgeIDs returns an allocator for the edges sequence, seeded with the
// explicit ids of its entries that have both a source and a target.
func EdgeIDs(edges *yaml.Node) *diagram.EdgeIDAllocator {
	var explicit []string
	for _, item := range edges.Content {
		item = resolve(item)
		source, _ := String(item, KeySource)
		target, _ := String(item, KeyTarget)
		if source == "" || target == "" {
			continue
		}
		if id, ok := String(item, KeyID); ok {
			explicit = append(explicit, id)
		}
	}
	return diagram.NewEdgeIDAllocator(explicit...)
}

// SubtreeIDs returns the ids of the node mapping n and all of its
// descendants, in pre-order.
func SubtreeIDs(n *yaml.Node) []string {
	var ids []string
	if id, ok := String(n, KeyID); ok {
		ids = append(ids, id)
	}
	if children := sequence(n, KeyChildren); children != nil {
		walk(children, func(c *yaml.Node) {
			if id, ok := String(c, KeyID); ok {
				ids = append(ids, id)
			}
		})
	}
	return ids
}
