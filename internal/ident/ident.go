// Package ident allocates node identifiers from human labels.
package ident

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chiply/cn-diagrams/internal/document"
)

// Fallback is the candidate used when a label has no usable characters.
const Fallback = "node"

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Set is a set of node ids.
type Set map[string]struct{}

// NewSet returns a Set holding ids.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Has reports whether id is in the set.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add puts id in the set.
func (s Set) Add(id string) {
	s[id] = struct{}{}
}

// Sorted returns the ids in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Slug lower-cases label, collapses every run of characters outside [a-z0-9]
// into one underscore and trims underscores from both ends.
func Slug(label string) string {
	return strings.Trim(nonAlnum.ReplaceAllString(strings.ToLower(label), "_"), "_")
}

// GenerateID derives an id from label that is not in existing. On collision
// the suffixes _1, _2, ... are tried in order.
func GenerateID(label string, existing Set) string {
	base := Slug(label)
	if base == "" {
		base = Fallback
	}
	if !existing.Has(base) {
		return base
	}
	for i := 1; ; i++ {
		candidate := base + "_" + strconv.Itoa(i)
		if !existing.Has(candidate) {
			return candidate
		}
	}
}

// AllIDs collects the id of every node in the forest of text, nested children
// included. Text that does not parse gives an empty set.
func AllIDs(text string) Set {
	ids := Set{}
	doc, err := document.Parse(text)
	if err != nil {
		return ids
	}
	doc.WalkNodes(func(n *yaml.Node) {
		if id, ok := document.String(n, document.KeyID); ok && id != "" {
			ids.Add(id)
		}
	})
	return ids
}

// Allocate returns a fresh id for a node labelled label in text.
func Allocate(text, label string) string {
	return GenerateID(label, AllIDs(text))
}
