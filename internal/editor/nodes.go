package editor

import (
	"gopkg.in/yaml.v3"

	"github.com/chiply/cn-diagrams/internal/document"
)

// RenameLabel sets the label of the node with the given id.
func RenameLabel(text, nodeID, label string) string {
	return mutate(text, func(doc *document.Document) bool {
		loc, ok := doc.Locate(nodeID)
		if !ok {
			return false
		}
		return doc.SetString(loc.Node, document.KeyLabel, label)
	})
}

// UpdateNodeProperties writes every non-nil field of props onto the node with
// the given id.
func UpdateNodeProperties(text, nodeID string, props NodeProps) string {
	return mutate(text, func(doc *document.Document) bool {
		loc, ok := doc.Locate(nodeID)
		if !ok {
			return false
		}
		changed := false
		for _, f := range []struct {
			key   string
			value *string
		}{
			{document.KeyLabel, props.Label},
			{document.KeyDescription, props.Description},
			{document.KeyType, props.Type},
			{document.KeyTechnology, props.Technology},
		} {
			if f.value != nil && doc.SetString(loc.Node, f.key, *f.value) {
				changed = true
			}
		}
		return changed
	})
}

// DeleteNode removes the node with the given id, together with its children,
// and every edge whose source or target is that id or one of the removed
// children. Edges naming nodeID are cleaned up even when the node itself is not
// found.
func DeleteNode(text, nodeID string) string {
	return mutate(text, func(doc *document.Document) bool {
		removed := map[string]bool{nodeID: true}
		changed := false
		if loc, ok := doc.Locate(nodeID); ok {
			for _, id := range document.SubtreeIDs(loc.Node) {
				removed[id] = true
			}
			doc.RemoveAt(loc.Parent, loc.Index)
			changed = true
		}
		if removeEdgesOf(doc, removed) {
			changed = true
		}
		return changed
	})
}

func removeEdgesOf(doc *document.Document, ids map[string]bool) bool {
	edges := doc.Edges()
	if edges == nil {
		return false
	}
	removed := false
	for i := len(edges.Content) - 1; i >= 0; i-- {
		item := edges.Content[i]
		if item.Kind == yaml.AliasNode {
			item = item.Alias
		}
		source, hasSource := document.String(item, document.KeySource)
		target, hasTarget := document.String(item, document.KeyTarget)
		if (hasSource && ids[source]) || (hasTarget && ids[target]) {
			doc.RemoveAt(edges, i)
			removed = true
		}
	}
	return removed
}

// InsertNode appends a new node under the node parentID, or to the root nodes
// list when parentID is empty. Missing children or nodes lists are created.
// Optional fields are written only when set.
//
// The text is returned unchanged when the node has no id or label, when the id
// is already used anywhere in the forest, or when the parent is not found.
func InsertNode(text string, node NodeData, parentID string) string {
	if node.ID == "" || node.Label == "" {
		return text
	}
	return mutate(text, func(doc *document.Document) bool {
		if _, taken := doc.Locate(node.ID); taken {
			return false
		}
		seq, ok := targetSequence(doc, parentID)
		if !ok {
			return false
		}
		doc.Append(seq, node.mapping())
		return true
	})
}

// ReparentNode moves the node with the given id, with everything it holds,
// to the end of newParentID's children, or to the root nodes list when
// newParentID is empty.
//
// The move fails closed: the text is returned unchanged when the node or the
// new parent is missing, when the new parent is the node itself or one of its
// descendants, or when the node already sits directly under the new parent.
func ReparentNode(text, nodeID, newParentID string) string {
	return mutate(text, func(doc *document.Document) bool {
		loc, ok := doc.Locate(nodeID)
		if !ok {
			return false
		}
		if newParentID == "" {
			if loc.Owner == nil {
				return false
			}
		} else {
			if document.Contains(loc.Node, newParentID) {
				return false
			}
			parent, ok := doc.Locate(newParentID)
			if !ok || parent.Node == loc.Owner {
				return false
			}
		}

		item := loc.Parent.Content[loc.Index]
		// Resolve the destination before detaching so a failure leaves the
		// document untouched.
		seq, ok := targetSequence(doc, newParentID)
		if !ok {
			return false
		}
		doc.RemoveAt(loc.Parent, loc.Index)
		doc.Append(seq, item)
		return true
	})
}

// targetSequence returns the list a new node goes into: the children of
// parentID, or the root nodes list when parentID is empty.
func targetSequence(doc *document.Document, parentID string) (*yaml.Node, bool) {
	if parentID != "" {
		parent, ok := doc.Locate(parentID)
		if !ok {
			return nil, false
		}
		return doc.EnsureSequence(parent.Node, document.KeyChildren)
	}
	if nodes := doc.Nodes(); nodes != nil {
		return nodes, true
	}
	root, ok := doc.EnsureRoot()
	if !ok {
		return nil, false
	}
	return doc.EnsureSequence(root, document.KeyNodes)
}
