package diagram

import (
	"fmt"
)

// Validate checks the structural well-formedness of a flat diagram and returns
// one message per problem, in node then edge order. It does not modify d.
// Architectural semantics (cycles, technology values) are not checked.
func Validate(d *Diagram) []string {
	if d == nil {
		return []string{"Diagram is nil"}
	}
	var errs []string

	seenNodeIDs := make(map[string]bool)
	for i := range d.Nodes {
		n := &d.Nodes[i]
		if n.ID == "" {
			errs = append(errs, fmt.Sprintf("Node %d: Missing id", i+1))
			continue
		}
		if seenNodeIDs[n.ID] {
			errs = append(errs, DuplicateNodeMessage(n.ID))
			continue
		}
		seenNodeIDs[n.ID] = true
	}
	for _, n := range d.Nodes {
		if n.Parent != "" && !seenNodeIDs[n.Parent] {
			errs = append(errs, fmt.Sprintf("Node %q: Unknown parent %q", n.ID, n.Parent))
		}
	}

	seenEdgeIDs := make(map[string]bool)
	for i, e := range d.Edges {
		if msg := CheckEdge(i, e, func(id string) bool { return seenNodeIDs[id] }); msg != "" {
			errs = append(errs, msg)
			continue
		}
		if seenEdgeIDs[e.ID] {
			errs = append(errs, DuplicateEdgeMessage(i, e.ID))
			continue
		}
		seenEdgeIDs[e.ID] = true
		if !e.Style.Valid() {
			errs = append(errs, InvalidStyleMessage(i, string(e.Style)))
		}
	}
	return errs
}

// CheckEdge returns the message for an edge at index i (0-based) whose
// endpoints are missing or unknown, or "" when the endpoints are fine.
// A nil exists func skips the reference check.
func CheckEdge(i int, e Edge, exists func(id string) bool) string {
	if e.Source == "" || e.Target == "" {
		return MissingEndpointMessage(i)
	}
	if exists == nil {
		return ""
	}
	if !exists(e.Source) {
		return fmt.Sprintf("Edge %d: Unknown source node %q", i+1, e.Source)
	}
	if !exists(e.Target) {
		return fmt.Sprintf("Edge %d: Unknown target node %q", i+1, e.Target)
	}
	return ""
}

// MissingEndpointMessage is reported for the edge at index i (0-based) when it
// lacks a source or target.
func MissingEndpointMessage(i int) string {
	return fmt.Sprintf("Edge %d: Missing source or target", i+1)
}

// DuplicateNodeMessage is reported for every node id seen a second time.
func DuplicateNodeMessage(id string) string {
	return fmt.Sprintf("Duplicate node id %q", id)
}

// DuplicateEdgeMessage is reported for the edge at index i (0-based) whose id
// was already taken.
func DuplicateEdgeMessage(i int, id string) string {
	return fmt.Sprintf("Edge %d: Duplicate edge id %q", i+1, id)
}

// InvalidStyleMessage is reported for the edge at index i (0-based) with an
// unknown style.
func InvalidStyleMessage(i int, style string) string {
	return fmt.Sprintf("Edge %d: Invalid style %q", i+1, style)
}
