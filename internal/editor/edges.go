package editor

import (
	"github.com/chiply/cn-diagrams/internal/document"
)

// AddEdge appends a new edge to the edges list, creating the list when it is
// missing. Optional fields are written only when set. The text is returned
// unchanged when the edge lacks a source or target or when edges is not a list.
func AddEdge(text string, edge EdgeData) string {
	if edge.Source == "" || edge.Target == "" {
		return text
	}
	return mutate(text, func(doc *document.Document) bool {
		root, ok := doc.EnsureRoot()
		if !ok {
			return false
		}
		seq, ok := doc.EnsureSequence(root, document.KeyEdges)
		if !ok {
			return false
		}
		doc.Append(seq, edge.mapping())
		return true
	})
}

// DeleteEdge removes the first edge whose id is edgeID. Edges without an
// explicit id are matched on the id the parser gives them.
func DeleteEdge(text, edgeID string) string {
	return mutate(text, func(doc *document.Document) bool {
		entry, ok := findEdge(doc, edgeID)
		if !ok {
			return false
		}
		doc.RemoveAt(doc.Edges(), entry.Index)
		return true
	})
}

// UpdateEdgeLabel sets the label of the first edge whose id is edgeID.
func UpdateEdgeLabel(text, edgeID, label string) string {
	return mutate(text, func(doc *document.Document) bool {
		entry, ok := findEdge(doc, edgeID)
		if !ok {
			return false
		}
		return doc.SetString(entry.Node, document.KeyLabel, label)
	})
}

func findEdge(doc *document.Document, edgeID string) (document.EdgeEntry, bool) {
	for _, e := range doc.EdgeEntries() {
		if e.ID == edgeID {
			return e, true
		}
	}
	return document.EdgeEntry{}, false
}
