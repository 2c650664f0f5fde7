package document

import (
	"gopkg.in/yaml.v3"
)

const (
	strTag  = "!!str"
	nullTag = "!!null"
)

// IsNull reports whether n is absent or a null scalar.
func IsNull(n *yaml.Node) bool {
	n = resolve(n)
	return n == nil || (n.Kind == yaml.ScalarNode && n.ShortTag() == nullTag)
}

// Get returns the value stored under key in mapping m, following aliases. It
// returns nil when m is not a mapping or has no such key.
func Get(m *yaml.Node, key string) *yaml.Node {
	m = resolve(m)
	i := valueIndex(m, key)
	if i < 0 {
		return nil
	}
	return resolve(m.Content[i])
}

// String returns the scalar text stored under key. The second result is false
// when the key is absent, null, or holds a non-scalar.
func String(m *yaml.Node, key string) (string, bool) {
	v := Get(m, key)
	if v == nil || v.Kind != yaml.ScalarNode || v.ShortTag() == nullTag {
		return "", false
	}
	return v.Value, true
}

// SetString stores value under key in mapping m. An existing scalar keeps its
// quoting style and comments; a missing key is appended after the last key.
// It reports whether the mapping changed.
func (d *Document) SetString(m *yaml.Node, key, value string) bool {
	if m == nil || m.Kind != yaml.MappingNode {
		return false
	}
	i := valueIndex(m, key)
	if i < 0 {
		v := NewScalar(value)
		if positioned(m) {
			d.recordPair(m, key, v)
		}
		m.Content = append(m.Content, NewScalar(key), v)
		return true
	}
	v := m.Content[i]
	if v.Kind == yaml.ScalarNode && v.ShortTag() != nullTag && v.Value == value {
		return false
	}
	if positioned(v) {
		d.recordScalar(m.Content[i-1], v, value)
	}
	if v.Kind != yaml.ScalarNode {
		s := NewScalar(value)
		s.LineComment = v.LineComment
		s.FootComment = v.FootComment
		m.Content[i] = s
		return true
	}
	v.Value = value
	v.Tag = strTag
	v.Style &^= yaml.TaggedStyle
	return true
}

// EnsureSequence returns the sequence stored under key in mapping m, creating
// an empty one when the key is absent or null. It returns false when the key
// holds something other than a sequence.
func (d *Document) EnsureSequence(m *yaml.Node, key string) (*yaml.Node, bool) {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil, false
	}
	i := valueIndex(m, key)
	if i < 0 {
		seq := NewSequence()
		if positioned(m) {
			d.recordPair(m, key, seq)
		}
		m.Content = append(m.Content, NewScalar(key), seq)
		return seq, true
	}
	v := resolve(m.Content[i])
	if IsNull(v) {
		seq := NewSequence()
		seq.LineComment = m.Content[i].LineComment
		if positioned(m.Content[i-1]) {
			d.recordList(m.Content[i-1], m.Content[i], seq)
		}
		m.Content[i] = seq
		return seq, true
	}
	if v.Kind != yaml.SequenceNode {
		return nil, false
	}
	return v, true
}

// Append adds item to the end of seq. An empty flow sequence ("[]") switches
// to block style so the new item is laid out like its siblings would be.
func (d *Document) Append(seq, item *yaml.Node) {
	d.recordAppend(seq, item)
	if len(seq.Content) == 0 {
		seq.Style &^= yaml.FlowStyle
	}
	seq.Content = append(seq.Content, item)
}

// RemoveAt removes the i-th item of seq.
func (d *Document) RemoveAt(seq *yaml.Node, i int) {
	d.recordRemove(seq, i)
	seq.Content = append(seq.Content[:i], seq.Content[i+1:]...)
}

// NewScalar returns a string scalar. The !!str tag makes the encoder quote
// values that would otherwise read back as another type.
func NewScalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: strTag, Value: value}
}

// NewSequence returns an empty block sequence.
func NewSequence() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
}

// NewMapping returns a block mapping holding the given key/value pairs in
// order. Pairs with an empty value are left out.
func NewMapping(pairs ...string) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			continue
		}
		m.Content = append(m.Content, NewScalar(pairs[i]), NewScalar(pairs[i+1]))
	}
	return m
}

// valueIndex returns the index in m.Content of the value stored under key, or
// -1. Keys are matched on their scalar text.
func valueIndex(m *yaml.Node, key string) int {
	m = resolve(m)
	if m == nil || m.Kind != yaml.MappingNode {
		return -1
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		k := m.Content[i]
		if k.Kind == yaml.ScalarNode && k.Value == key {
			return i + 1
		}
	}
	return -1
}
