// Package document is the formatting-preserving model of a diagram's
// structured text.
//
// A Document wraps the yaml.v3 node tree of the text together with the text
// itself. Changes made through the Document methods update the tree and record
// a splice against the source at the positions yaml.v3 reports, so Encode
// rewrites only the bytes an edit touches: blank lines, indentation and
// comments elsewhere stay as they were. When a change cannot be expressed as a
// splice (flow collections, unusual layouts) Encode falls back to emitting the
// whole tree. Documents are never cached; callers parse the current text,
// change it and encode it again.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMultipleDocuments is returned by Parse for text holding more than one
// YAML document.
var ErrMultipleDocuments = errors.New("multiple documents in text")

// Top-level and per-node keys of the diagram schema.
const (
	KeyNodes       = "nodes"
	KeyEdges       = "edges"
	KeyChildren    = "children"
	KeyID          = "id"
	KeyLabel       = "label"
	KeyName        = "name"
	KeyDescription = "description"
	KeyType        = "type"
	KeyTechnology  = "technology"
	KeySource      = "source"
	KeyTarget      = "target"
	KeyStyle       = "style"
)

// Indent is the block indentation used when encoding.
const Indent = 2

// Document is a parsed, mutable diagram text.
type Document struct {
	root *yaml.Node
	src  *source
	// prefix keeps the comments of a text that had no content at all, which
	// yaml.v3 drops.
	prefix string

	edits []edit
	// rendered holds sequences whose items are written out when the document
	// is encoded; appends to them need no splice of their own.
	rendered map[*yaml.Node]bool
	// broken is set once a change could not be recorded as a splice.
	broken bool

	// seqIndent is how far block sequence dashes sit right of their key and
	// itemIndent how far item content sits right of its dash, both taken from
	// the root nodes list.
	seqIndent  int
	itemIndent int
}

// Parse decodes text into a Document. Empty or comment-only text gives an
// empty document. The error is the YAML syntax error, if any, or
// ErrMultipleDocuments.
func Parse(text string) (*Document, error) {
	dec := yaml.NewDecoder(strings.NewReader(text))
	var n yaml.Node
	if err := dec.Decode(&n); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	var extra yaml.Node
	switch err := dec.Decode(&extra); {
	case err == nil:
		return nil, fmt.Errorf("parse document: %w", ErrMultipleDocuments)
	case !errors.Is(err, io.EOF):
		return nil, fmt.Errorf("parse document: %w", err)
	}

	d := &Document{
		root:       &n,
		src:        newSource(text),
		rendered:   make(map[*yaml.Node]bool),
		seqIndent:  Indent,
		itemIndent: Indent,
	}
	if n.Kind == 0 {
		d.root = &yaml.Node{Kind: yaml.DocumentNode}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			d.prefix = trimmed + "\n"
		}
	}
	d.src.index(d.root)
	d.measureIndent()
	return d, nil
}

// IsEmpty reports whether the document has no content or only a null.
func (d *Document) IsEmpty() bool {
	if len(d.root.Content) == 0 {
		return true
	}
	return IsNull(d.root.Content[0])
}

// Root returns the top-level mapping, or nil when the document content is not
// a mapping.
func (d *Document) Root() *yaml.Node {
	if len(d.root.Content) == 0 {
		return nil
	}
	n := resolve(d.root.Content[0])
	if n.Kind != yaml.MappingNode {
		return nil
	}
	return n
}

// EnsureRoot returns the top-level mapping, creating it when the document is
// empty. It returns false when the content is something other than a mapping.
func (d *Document) EnsureRoot() (*yaml.Node, bool) {
	if d.IsEmpty() {
		m := NewMapping()
		var old *yaml.Node
		if len(d.root.Content) > 0 {
			old = d.root.Content[0]
		}
		d.root.Content = []*yaml.Node{m}
		d.recordRoot(old, m)
		return m, true
	}
	m := d.Root()
	return m, m != nil
}

// Nodes returns the root nodes sequence, or nil when it is missing or is not a
// sequence.
func (d *Document) Nodes() *yaml.Node {
	return sequence(d.Root(), KeyNodes)
}

// Edges returns the edges sequence, or nil when it is missing or is not a
// sequence.
func (d *Document) Edges() *yaml.Node {
	return sequence(d.Root(), KeyEdges)
}

// Encode returns the text of the changed document: the source with every
// recorded splice applied, or the whole tree emitted by yaml.v3 at Indent
// spaces when a change could not be spliced or the spliced text does not read
// back as the tree.
func (d *Document) Encode() (string, error) {
	tree, err := encodeNode(d.root)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	tree = d.prefix + tree
	if d.broken {
		return tree, nil
	}
	spliced, ok := d.splice()
	if !ok || !sameContent(spliced, tree) {
		return tree, nil
	}
	return spliced, nil
}

func encodeNode(n *yaml.Node) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(Indent)
	if err := enc.Encode(n); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// sameContent reports whether two texts decode to equal values.
func sameContent(a, b string) bool {
	var x, y any
	if yaml.Unmarshal([]byte(a), &x) != nil || yaml.Unmarshal([]byte(b), &y) != nil {
		return false
	}
	return reflect.DeepEqual(x, y)
}

func sequence(m *yaml.Node, key string) *yaml.Node {
	v := Get(m, key)
	if v == nil || v.Kind != yaml.SequenceNode {
		return nil
	}
	return v
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}
