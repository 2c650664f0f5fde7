package diagram

import "strconv"

// DefaultEdgeID is the id an edge gets when it has none of its own.
func DefaultEdgeID(source, target string) string {
	return source + "-" + target
}

// EdgeIDAllocator hands out edge ids while walking an edges list in document
// order. The parser and the document mutators both walk with an allocator so
// they agree on which entry an id refers to.
//
// Explicit ids are returned as-is. The first edge without an id between a pair
// of nodes gets "<source>-<target>"; later ones get "<source>-<target>-2",
// "<source>-<target>-3", and so on. Candidates already taken by an explicit id
// or an earlier default are skipped.
type EdgeIDAllocator struct {
	seen  map[string]int
	taken map[string]bool
}

// NewEdgeIDAllocator returns an allocator with no edges seen. explicit lists
// the ids set on the edges of the list; defaults never collide with them.
func NewEdgeIDAllocator(explicit ...string) *EdgeIDAllocator {
	a := &EdgeIDAllocator{seen: make(map[string]int), taken: make(map[string]bool)}
	for _, id := range explicit {
		if id != "" {
			a.taken[id] = true
		}
	}
	return a
}

// Next returns the id of the next edge. Entries without a source or target
// must not be passed in; they have no id.
func (a *EdgeIDAllocator) Next(explicit, source, target string) string {
	if explicit != "" {
		return explicit
	}
	base := DefaultEdgeID(source, target)
	for {
		a.seen[base]++
		id := base
		if n := a.seen[base]; n > 1 {
			id = base + "-" + strconv.Itoa(n)
		}
		if !a.taken[id] {
			a.taken[id] = true
			return id
		}
	}
}
