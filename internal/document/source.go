package document

import (
	"sort"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// source is the original text with its line index. Offsets are byte offsets;
// yaml.v3 reports 1-based lines and 1-based columns counted in characters.
type source struct {
	text  string
	lines []int
	// spans holds the extent of every parsed node, measured before any change
	// so that removing a child does not move its ancestors' ends.
	spans map[*yaml.Node]extent
}

type extent struct {
	start, end int
	ok         bool
}

func newSource(text string) *source {
	lines := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &source{text: text, lines: lines, spans: make(map[*yaml.Node]extent)}
}

// index measures n and everything below it.
func (s *source) index(n *yaml.Node) {
	for _, c := range n.Content {
		s.index(c)
	}
	if positioned(n) {
		s.span(n)
	}
}

func (s *source) offset(line, column int) (int, bool) {
	if line < 1 || line > len(s.lines) || column < 1 {
		return 0, false
	}
	off := s.lines[line-1]
	for c := 1; c < column; c++ {
		if off >= len(s.text) || s.text[off] == '\n' {
			return 0, false
		}
		_, size := utf8.DecodeRuneInString(s.text[off:])
		off += size
	}
	return off, true
}

func (s *source) start(n *yaml.Node) (int, bool) {
	return s.offset(n.Line, n.Column)
}

// lineAt returns the 0-based index of the line holding off.
func (s *source) lineAt(off int) int {
	return sort.Search(len(s.lines), func(i int) bool { return s.lines[i] > off }) - 1
}

// eol is the offset of the newline ending line i, or the end of the text.
func (s *source) eol(i int) int {
	if i+1 < len(s.lines) {
		return s.lines[i+1] - 1
	}
	return len(s.text)
}

// lineEnd is the offset just past line i and its newline.
func (s *source) lineEnd(i int) int {
	if i+1 < len(s.lines) {
		return s.lines[i+1]
	}
	return len(s.text)
}

func (s *source) line(i int) string {
	return strings.TrimSuffix(s.text[s.lines[i]:s.eol(i)], "\r")
}

func (s *source) blank(i int) bool {
	return i >= 0 && i < len(s.lines) && strings.TrimSpace(s.line(i)) == ""
}

func (s *source) comment(i int) bool {
	return strings.HasPrefix(strings.TrimSpace(s.line(i)), "#")
}

// column is the byte position of off within its line.
func (s *source) column(off int) int {
	return off - s.lines[s.lineAt(off)]
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}

func isEmptyNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == nullTag && n.Value == ""
}

// span returns the byte range of n's text. Scalars start after any anchor or
// tag. Empty scalars have no text and report false.
func (s *source) span(n *yaml.Node) (int, int, bool) {
	if e, ok := s.spans[n]; ok {
		return e.start, e.end, e.ok
	}
	start, end, ok := s.measure(n)
	if positioned(n) {
		s.spans[n] = extent{start: start, end: end, ok: ok}
	}
	return start, end, ok
}

func (s *source) measure(n *yaml.Node) (int, int, bool) {
	p, ok := s.start(n)
	if !ok {
		return 0, 0, false
	}
	switch n.Kind {
	case yaml.ScalarNode:
		if isEmptyNull(n) {
			return 0, 0, false
		}
		return s.scalarSpan(skipProps(s.text, p), n)
	case yaml.AliasNode:
		end := p + 1
		for end < len(s.text) && !strings.ContainsRune(" \t\r\n,]}", rune(s.text[end])) {
			end++
		}
		return p, end, true
	case yaml.MappingNode, yaml.SequenceNode:
		if n.Style&yaml.FlowStyle != 0 {
			return s.flowSpan(skipProps(s.text, p))
		}
		if len(n.Content) == 0 {
			return 0, 0, false
		}
		last := n.Content[len(n.Content)-1]
		if n.Kind == yaml.MappingNode && isEmptyNull(last) {
			last = n.Content[len(n.Content)-2]
		}
		_, end, ok := s.span(last)
		return p, end, ok
	}
	return 0, 0, false
}

func skipProps(t string, p int) int {
	for p < len(t) && (t[p] == '&' || t[p] == '!') {
		for p < len(t) && !strings.ContainsRune(" \t\r\n", rune(t[p])) {
			p++
		}
		for p < len(t) && (t[p] == ' ' || t[p] == '\t') {
			p++
		}
	}
	return p
}

func (s *source) scalarSpan(p int, n *yaml.Node) (int, int, bool) {
	t := s.text
	if p >= len(t) {
		return 0, 0, false
	}
	switch {
	case n.Style&yaml.DoubleQuotedStyle != 0:
		if t[p] != '"' {
			return 0, 0, false
		}
		for i := p + 1; i < len(t); i++ {
			switch t[i] {
			case '\\':
				i++
			case '"':
				return p, i + 1, true
			}
		}
	case n.Style&yaml.SingleQuotedStyle != 0:
		if t[p] != '\'' {
			return 0, 0, false
		}
		for i := p + 1; i < len(t); i++ {
			if t[i] != '\'' {
				continue
			}
			if i+1 < len(t) && t[i+1] == '\'' {
				i++
				continue
			}
			return p, i + 1, true
		}
	case n.Style&(yaml.LiteralStyle|yaml.FoldedStyle) != 0:
		return s.blockScalarSpan(p)
	default:
		return s.plainSpan(p, n.Value)
	}
	return 0, 0, false
}

// plainSpan finds the end of a plain scalar by matching its text against the
// decoded value, folding over following lines when the value continues there.
func (s *source) plainSpan(p int, value string) (int, int, bool) {
	t := s.text
	if strings.HasPrefix(t[p:], value) {
		end := p + len(value)
		if end == len(t) || strings.ContainsRune(" \t\r\n:,]}", rune(t[end])) {
			return p, end, true
		}
	}
	line := s.lineAt(p)
	end := trimLine(t, p, s.eol(line))
	folded := t[p:end]
	for len(folded) < len(value) {
		line++
		if line >= len(s.lines) {
			return 0, 0, false
		}
		e := trimLine(t, s.lines[line], s.eol(line))
		seg := strings.TrimSpace(t[s.lines[line]:e])
		if seg == "" {
			return 0, 0, false
		}
		folded += " " + seg
		end = e
	}
	if folded != value {
		return 0, 0, false
	}
	return p, end, true
}

// trimLine cuts a trailing comment and whitespace from t[from:to] and returns
// the new end.
func trimLine(t string, from, to int) int {
	for i := from + 1; i < to; i++ {
		if t[i] == '#' && (t[i-1] == ' ' || t[i-1] == '\t') {
			to = i
			break
		}
	}
	for to > from && strings.ContainsRune(" \t\r", rune(t[to-1])) {
		to--
	}
	return to
}

// blockScalarSpan covers a literal or folded scalar: its header and every
// following line indented deeper than the header's line.
func (s *source) blockScalarSpan(p int) (int, int, bool) {
	header := s.lineAt(p)
	parent := indentOf(s.line(header))
	end := s.eol(header)
	content := -1
	for l := header + 1; l < len(s.lines); l++ {
		if s.blank(l) {
			continue
		}
		ind := indentOf(s.line(l))
		if content < 0 {
			if ind <= parent {
				break
			}
			content = ind
		} else if ind < content {
			break
		}
		end = s.eol(l)
	}
	return p, end, true
}

func (s *source) flowSpan(p int) (int, int, bool) {
	t := s.text
	if p >= len(t) || (t[p] != '[' && t[p] != '{') {
		return 0, 0, false
	}
	depth := 0
	for i := p; i < len(t); i++ {
		switch t[i] {
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 {
				return p, i + 1, true
			}
		case '"':
			for i++; i < len(t) && t[i] != '"'; i++ {
				if t[i] == '\\' {
					i++
				}
			}
		case '\'':
			for i++; i < len(t); i++ {
				if t[i] == '\'' {
					if i+1 < len(t) && t[i+1] == '\'' {
						i++
						continue
					}
					break
				}
			}
		case '#':
			if i > p && (t[i-1] == ' ' || t[i-1] == '\t') {
				i = s.eol(s.lineAt(i))
			}
		}
	}
	return 0, 0, false
}

// colonAfter returns the offset just past the ':' that follows key.
func (s *source) colonAfter(key *yaml.Node) (int, bool) {
	_, end, ok := s.span(key)
	if !ok {
		return 0, false
	}
	for end < len(s.text) && (s.text[end] == ' ' || s.text[end] == '\t') {
		end++
	}
	if end >= len(s.text) || s.text[end] != ':' {
		return 0, false
	}
	return end + 1, true
}

// block is the run of whole lines holding one block sequence item: its head
// comments at the dash's indentation, the item itself and any deeper-indented
// comments trailing it.
type block struct {
	first, last int
	// dash is the column of the item's "-", indent the column of its content.
	dash, indent int
}

func (s *source) item(n *yaml.Node) (block, bool) {
	p, ok := s.start(n)
	if !ok {
		return block{}, false
	}
	_, end, ok := s.span(n)
	if !ok {
		return block{}, false
	}
	l := s.lineAt(p)
	prefix := s.text[s.lines[l]:p]
	rest := strings.TrimLeft(prefix, " ")
	if !strings.HasPrefix(rest, "- ") || strings.TrimSpace(rest[1:]) != "" {
		return block{}, false
	}
	b := block{first: l, last: s.lineAt(end - 1), dash: len(prefix) - len(rest), indent: len(prefix)}
	if end <= p {
		b.last = l
	}
	for b.first > 0 && s.comment(b.first-1) && indentOf(s.line(b.first-1)) == b.dash {
		b.first--
	}
	for b.last+1 < len(s.lines) && s.comment(b.last+1) && indentOf(s.line(b.last+1)) > b.dash {
		b.last++
	}
	return b, true
}

// blockText returns the lines of b, newline-terminated, shifted right by delta
// columns (left when negative).
func (s *source) blockText(b block, delta int) (string, bool) {
	var out strings.Builder
	for l := b.first; l <= b.last; l++ {
		line := s.line(l)
		switch {
		case strings.TrimSpace(line) == "":
		case delta >= 0:
			line = strings.Repeat(" ", delta) + line
		case indentOf(line) < -delta:
			return "", false
		default:
			line = line[-delta:]
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}
	return out.String(), true
}
