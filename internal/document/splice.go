package document

import (
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// edit replaces src[start:end] with the text render returns. Rendering waits
// until Encode so that containers created by one change hold everything later
// changes put in them.
type edit struct {
	start, end int
	render     func() (string, bool)
}

func static(text string) func() (string, bool) {
	return func() (string, bool) { return text, true }
}

func (d *Document) record(start, end int, render func() (string, bool)) {
	d.edits = append(d.edits, edit{start: start, end: end, render: render})
}

// positioned reports whether n came from the source text. Nodes built by a
// change have no position and are written out by whichever edit inserts them.
func positioned(n *yaml.Node) bool {
	return n != nil && n.Line > 0
}

// splice applies the recorded edits to the source. Edits are applied in
// source order; an insertion that lands inside a removed range moves to its
// end, any other overlap fails.
func (d *Document) splice() (string, bool) {
	edits := make([]edit, len(d.edits))
	copy(edits, d.edits)
	sort.SliceStable(edits, func(i, j int) bool { return edits[i].start < edits[j].start })

	t := d.src.text
	var out strings.Builder
	cursor := 0
	for _, e := range edits {
		text, ok := e.render()
		if !ok {
			return "", false
		}
		start, end := e.start, e.end
		if start < cursor {
			if start != end {
				return "", false
			}
			start, end = cursor, cursor
		}
		out.WriteString(t[cursor:start])
		out.WriteString(text)
		cursor = end
	}
	out.WriteString(t[cursor:])
	return out.String(), true
}

// measureIndent reads the list layout of the root nodes list so new lists and
// items follow it.
func (d *Document) measureIndent() {
	root := d.Root()
	i := valueIndex(root, KeyNodes)
	if i < 0 {
		return
	}
	seq := root.Content[i]
	if seq.Kind != yaml.SequenceNode || seq.Style&yaml.FlowStyle != 0 || len(seq.Content) == 0 {
		return
	}
	key, ok := d.src.start(root.Content[i-1])
	if !ok {
		return
	}
	b, ok := d.src.item(seq.Content[0])
	if !ok {
		return
	}
	d.seqIndent = b.dash - d.src.column(key)
	d.itemIndent = b.indent - b.dash
}

// keyIndent is the column of mapping m's keys.
func (d *Document) keyIndent(m *yaml.Node) (int, bool) {
	if len(m.Content) == 0 || m.Style&yaml.FlowStyle != 0 {
		return 0, false
	}
	p, ok := d.src.start(m.Content[0])
	if !ok {
		return 0, false
	}
	return d.src.column(p), true
}

// endOf is the offset just past the last line of m's text, with a newline
// prefix to write first when that line ends the text unterminated.
func (d *Document) endOf(n *yaml.Node) (int, string, bool) {
	_, end, ok := d.src.span(n)
	if !ok || end == 0 {
		return 0, "", false
	}
	off := d.src.lineEnd(d.src.lineAt(end - 1))
	return off, d.newlineAt(off), true
}

func (d *Document) newlineAt(off int) string {
	t := d.src.text
	if off == len(t) && off > 0 && t[off-1] != '\n' {
		return "\n"
	}
	return ""
}

// keyOf returns the key under which v is stored, searching the whole tree.
func (d *Document) keyOf(v *yaml.Node) *yaml.Node {
	var find func(n *yaml.Node) *yaml.Node
	find = func(n *yaml.Node) *yaml.Node {
		if n.Kind == yaml.MappingNode {
			for i := 1; i < len(n.Content); i += 2 {
				if n.Content[i] == v {
					return n.Content[i-1]
				}
			}
		}
		for _, c := range n.Content {
			if k := find(c); k != nil {
				return k
			}
		}
		return nil
	}
	return find(d.root)
}

// recordScalar records value replacing the text of the existing scalar v,
// keeping v's quoting style.
func (d *Document) recordScalar(key, v *yaml.Node, value string) {
	if isEmptyNull(v) {
		colon, ok := d.src.colonAfter(key)
		if !ok {
			d.broken = true
			return
		}
		d.record(colon, colon, static(" "+renderScalar(value, 0)))
		return
	}
	start, end, ok := d.src.span(v)
	if !ok || (v.Kind != yaml.ScalarNode && v.Style&yaml.FlowStyle == 0) {
		d.broken = true
		return
	}
	style := yaml.Style(0)
	if v.Kind == yaml.ScalarNode {
		style = v.Style
	}
	d.record(start, end, static(renderScalar(value, style)))
}

// recordPair records a new key/value pair at the end of mapping m.
func (d *Document) recordPair(m *yaml.Node, key string, v *yaml.Node) {
	indent, ok := d.keyIndent(m)
	if !ok {
		d.broken = true
		return
	}
	off, nl, ok := d.endOf(m)
	if !ok {
		d.broken = true
		return
	}
	if v.Kind == yaml.SequenceNode {
		d.rendered[v] = true
	}
	d.record(off, off, func() (string, bool) {
		text, ok := d.renderPair(key, v, indent)
		return nl + text, ok
	})
}

// recordList records seq replacing the value text under key: an empty or null
// value, or an empty flow list.
func (d *Document) recordList(key, old, seq *yaml.Node) {
	colon, ok := d.src.colonAfter(key)
	if !ok {
		d.broken = true
		return
	}
	end := colon
	if !isEmptyNull(old) {
		if _, end, ok = d.src.span(old); !ok {
			d.broken = true
			return
		}
	}
	p, _ := d.src.start(key)
	indent := d.src.column(p) + d.seqIndent
	d.rendered[seq] = true
	d.record(colon, end, func() (string, bool) {
		if len(seq.Content) == 0 {
			return " []", true
		}
		items, ok := d.renderItems(seq.Content, indent, d.itemIndent)
		return "\n" + strings.TrimSuffix(items, "\n"), ok
	})
}

// recordAppend records item added after the current last item of seq.
func (d *Document) recordAppend(seq, item *yaml.Node) {
	if !positioned(seq) || d.rendered[seq] {
		return
	}
	if len(seq.Content) == 0 {
		key := d.keyOf(seq)
		if key == nil || seq.Style&yaml.FlowStyle == 0 {
			d.broken = true
			return
		}
		d.recordList(key, seq, seq)
		return
	}
	if seq.Style&yaml.FlowStyle != 0 {
		d.broken = true
		return
	}
	last, ok := d.src.item(seq.Content[len(seq.Content)-1])
	if !ok {
		d.broken = true
		return
	}
	off := d.src.lineEnd(last.last)
	prefix := d.newlineAt(off)
	if d.src.blank(last.first - 1) {
		prefix += "\n"
	}
	d.record(off, off, func() (string, bool) {
		text, ok := d.renderItem(item, last.dash, last.indent-last.dash)
		return prefix + text, ok
	})
}

// recordRemove records the i-th item of seq being cut, with the blank lines
// that separated it from the next item when the separation survives above it.
func (d *Document) recordRemove(seq *yaml.Node, i int) {
	if !positioned(seq) || d.rendered[seq] {
		return
	}
	if seq.Style&yaml.FlowStyle != 0 {
		d.broken = true
		return
	}
	b, ok := d.src.item(seq.Content[i])
	if !ok {
		d.broken = true
		return
	}
	start, end := d.src.lines[b.first], d.src.lineEnd(b.last)
	if d.src.blank(b.first-1) || (i == 0 && len(seq.Content) > 1) {
		for l := b.last + 1; l < len(d.src.lines) && d.src.lines[l] < len(d.src.text) && d.src.blank(l); l++ {
			end = d.src.lineEnd(l)
		}
	}
	d.record(start, end, static(""))

	if len(seq.Content) == 1 {
		key := d.keyOf(seq)
		if key == nil {
			d.broken = true
			return
		}
		colon, ok := d.src.colonAfter(key)
		if !ok {
			d.broken = true
			return
		}
		d.record(colon, colon, static(" []"))
	}
}

// recordRoot records root becoming the content of an empty document. old is
// the previous content, if any.
func (d *Document) recordRoot(old, root *yaml.Node) {
	render := func() (string, bool) {
		text, err := encodeNode(root)
		return text, err == nil
	}
	if old != nil && positioned(old) && !isEmptyNull(old) {
		start, end, ok := d.src.span(old)
		if !ok {
			d.broken = true
			return
		}
		d.record(start, end, func() (string, bool) {
			text, ok := render()
			return strings.TrimSuffix(text, "\n"), ok
		})
		return
	}
	off := len(d.src.text)
	nl := d.newlineAt(off)
	d.record(off, off, func() (string, bool) {
		text, ok := render()
		return nl + text, ok
	})
}

func (d *Document) renderPair(key string, v *yaml.Node, indent int) (string, bool) {
	pad := strings.Repeat(" ", indent)
	switch v.Kind {
	case yaml.ScalarNode:
		return pad + key + ": " + renderScalar(v.Value, v.Style) + "\n", true
	case yaml.SequenceNode:
		if len(v.Content) == 0 {
			return pad + key + ": []\n", true
		}
		items, ok := d.renderItems(v.Content, indent+d.seqIndent, d.itemIndent)
		return pad + key + ":\n" + items, ok
	}
	return "", false
}

func (d *Document) renderItems(items []*yaml.Node, dash, indent int) (string, bool) {
	var out strings.Builder
	for _, item := range items {
		text, ok := d.renderItem(item, dash, indent)
		if !ok {
			return "", false
		}
		out.WriteString(text)
	}
	return out.String(), true
}

// renderItem writes one block sequence item with its dash at column dash. An
// item from the source keeps its own lines, shifted; a new one is emitted by
// yaml.v3 with its content indent columns right of the dash.
func (d *Document) renderItem(item *yaml.Node, dash, indent int) (string, bool) {
	if positioned(item) {
		b, ok := d.src.item(item)
		if !ok {
			return "", false
		}
		return d.src.blockText(b, dash-b.dash)
	}
	if indent < 2 {
		indent = 2
	}
	body, err := encodeNode(item)
	if err != nil {
		return "", false
	}
	var out strings.Builder
	for i, line := range strings.Split(strings.TrimSuffix(body, "\n"), "\n") {
		switch {
		case i == 0:
			out.WriteString(strings.Repeat(" ", dash) + "-" + strings.Repeat(" ", indent-1))
		case line != "":
			out.WriteString(strings.Repeat(" ", dash+indent))
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}
	return out.String(), true
}

// renderScalar writes value as a string scalar on one line: in the given
// quoting style when it had one, otherwise plain when yaml.v3 finds that safe.
func renderScalar(value string, style yaml.Style) string {
	style &= yaml.DoubleQuotedStyle | yaml.SingleQuotedStyle
	text, err := encodeNode(&yaml.Node{Kind: yaml.ScalarNode, Tag: strTag, Value: value, Style: style})
	text = strings.TrimSuffix(text, "\n")
	if err != nil || strings.Contains(text, "\n") {
		text, _ = encodeNode(&yaml.Node{Kind: yaml.ScalarNode, Tag: strTag, Value: value, Style: yaml.DoubleQuotedStyle})
		text = strings.TrimSuffix(text, "\n")
	}
	return text
}
