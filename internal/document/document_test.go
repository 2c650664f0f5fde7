package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const nested = `nodes:
  - id: p
    label: P
    children:
      - id: c
        label: C
        children:
          - id: g
            label: G
  - id: q
    label: Q
edges:
  - source: p
    target: q
  - source: p
    target: q
  - id: explicit
    source: q
    target: c
  - source: q
`

func TestParseEmpty(t *testing.T) {
	for _, text := range []string{"", "   \n", "~\n"} {
		d, err := Parse(text)
		require.NoError(t, err)
		assert.True(t, d.IsEmpty(), "text %q", text)
		assert.Nil(t, d.Root())
		assert.Nil(t, d.Nodes())
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse("nodes: [\n")
	assert.Error(t, err)
}

func TestParseMultipleDocuments(t *testing.T) {
	_, err := Parse("nodes:\n  - id: a\n    label: A\n---\nother: 1\n")
	assert.ErrorIs(t, err, ErrMultipleDocuments)

	_, err = Parse("---\nnodes: []\n")
	assert.NoError(t, err)
}

func TestEnsureRoot(t *testing.T) {
	d, err := Parse("")
	require.NoError(t, err)
	m, ok := d.EnsureRoot()
	require.True(t, ok)
	assert.Equal(t, yaml.MappingNode, m.Kind)

	d, err = Parse("- a\n- b\n")
	require.NoError(t, err)
	_, ok = d.EnsureRoot()
	assert.False(t, ok)
}

func TestLocate(t *testing.T) {
	d, err := Parse(nested)
	require.NoError(t, err)

	loc, ok := d.Locate("g")
	require.True(t, ok)
	assert.Equal(t, 0, loc.Index)
	label, _ := String(loc.Node, KeyLabel)
	assert.Equal(t, "G", label)
	ownerID, _ := String(loc.Owner, KeyID)
	assert.Equal(t, "c", ownerID)

	loc, ok = d.Locate("q")
	require.True(t, ok)
	assert.Equal(t, 1, loc.Index)
	assert.Nil(t, loc.Owner)
	assert.Same(t, d.Nodes(), loc.Parent)

	_, ok = d.Locate("missing")
	assert.False(t, ok)
}

func TestContains(t *testing.T) {
	d, err := Parse(nested)
	require.NoError(t, err)
	loc, ok := d.Locate("p")
	require.True(t, ok)
	assert.True(t, Contains(loc.Node, "p"))
	assert.True(t, Contains(loc.Node, "g"))
	assert.False(t, Contains(loc.Node, "q"))
}

func TestWalkNodes(t *testing.T) {
	d, err := Parse(nested)
	require.NoError(t, err)
	var ids []string
	d.WalkNodes(func(n *yaml.Node) {
		id, _ := String(n, KeyID)
		ids = append(ids, id)
	})
	assert.Equal(t, []string{"p", "c", "g", "q"}, ids)
}

func TestEdgeEntries(t *testing.T) {
	d, err := Parse(nested)
	require.NoError(t, err)
	entries := d.EdgeEntries()
	require.Len(t, entries, 3)
	assert.Equal(t, "p-q", entries[0].ID)
	assert.Equal(t, "p-q-2", entries[1].ID)
	assert.Equal(t, "explicit", entries[2].ID)
	assert.Equal(t, 2, entries[2].Index)
}

func TestSetString(t *testing.T) {
	d, err := Parse("nodes:\n  - id: a\n    label: \"A\"\n")
	require.NoError(t, err)
	loc, ok := d.Locate("a")
	require.True(t, ok)

	assert.False(t, d.SetString(loc.Node, KeyLabel, "A"))
	assert.True(t, d.SetString(loc.Node, KeyLabel, "Alpha"))
	assert.True(t, d.SetString(loc.Node, KeyType, "true"))

	out, err := d.Encode()
	require.NoError(t, err)
	assert.Equal(t, "nodes:\n  - id: a\n    label: \"Alpha\"\n    type: \"true\"\n", out)
}

func TestEnsureSequence(t *testing.T) {
	d, err := Parse("nodes:\nname: x\n")
	require.NoError(t, err)
	root := d.Root()

	seq, ok := d.EnsureSequence(root, KeyNodes)
	require.True(t, ok)
	assert.Equal(t, yaml.SequenceNode, seq.Kind)

	_, ok = d.EnsureSequence(root, KeyName)
	assert.False(t, ok)

	seq, ok = d.EnsureSequence(root, KeyEdges)
	require.True(t, ok)
	assert.Empty(t, seq.Content)
	assert.NotNil(t, d.Edges())
}

func TestNewMappingSkipsEmpty(t *testing.T) {
	m := NewMapping(KeyID, "a", KeyLabel, "A", KeyType, "")
	assert.Len(t, m.Content, 4)
	_, ok := String(m, KeyType)
	assert.False(t, ok)
}

func TestEncodeRoundTrip(t *testing.T) {
	d, err := Parse(nested)
	require.NoError(t, err)
	out, err := d.Encode()
	require.NoError(t, err)
	assert.Equal(t, nested, out)
}

func TestEncodeKeepsCommentOnlyPrefix(t *testing.T) {
	d, err := Parse("# just a comment\n")
	require.NoError(t, err)
	root, ok := d.EnsureRoot()
	require.True(t, ok)
	seq, ok := d.EnsureSequence(root, KeyNodes)
	require.True(t, ok)
	d.Append(seq, NewMapping(KeyID, "a", KeyLabel, "A"))

	out, err := d.Encode()
	require.NoError(t, err)
	assert.Equal(t, "# just a comment\nnodes:\n  - id: a\n    label: A\n", out)
}

const spaced = `# Simple Web Application
name: Simple Web App

nodes:
  - id: browser
    label: Web Browser
    description: "User's web browser"

  - id: webapp
    label: Web Server
    children:
    - id: inner
      label: Inner

  - id: database
    label: Database # primary store
`

func encode(t *testing.T, d *Document) string {
	t.Helper()
	out, err := d.Encode()
	require.NoError(t, err)
	return out
}

func TestSpliceScalar(t *testing.T) {
	tests := []struct {
		name, id, key, value string
		from, to             string
	}{
		{"plain", "browser", KeyLabel, "Browser", "label: Web Browser\n", "label: Browser\n"},
		{"double quoted", "browser", KeyDescription, "Client", `"User's web browser"`, `"Client"`},
		{"before comment", "database", KeyLabel, "DB", "label: Database # primary", "label: DB # primary"},
		{"needs quoting", "inner", KeyLabel, "true", "label: Inner\n", "label: \"true\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse(spaced)
			require.NoError(t, err)
			loc, ok := d.Locate(tt.id)
			require.True(t, ok)
			require.True(t, d.SetString(loc.Node, tt.key, tt.value))
			assert.Equal(t, strings.Replace(spaced, tt.from, tt.to, 1), encode(t, d))
		})
	}
}

func TestSpliceNewKey(t *testing.T) {
	d, err := Parse(spaced)
	require.NoError(t, err)
	loc, ok := d.Locate("webapp")
	require.True(t, ok)
	require.True(t, d.SetString(loc.Node, KeyTechnology, "Go"))

	want := strings.Replace(spaced, "      label: Inner\n", "      label: Inner\n    technology: Go\n", 1)
	assert.Equal(t, want, encode(t, d))
}

func TestSpliceRemoveKeepsSeparation(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"browser", strings.Replace(spaced,
			"  - id: browser\n    label: Web Browser\n    description: \"User's web browser\"\n\n", "", 1)},
		{"webapp", strings.Replace(spaced,
			"  - id: webapp\n    label: Web Server\n    children:\n    - id: inner\n      label: Inner\n\n", "", 1)},
		{"database", strings.Replace(spaced, "\n  - id: database\n    label: Database # primary store\n", "\n", 1)},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			d, err := Parse(spaced)
			require.NoError(t, err)
			loc, ok := d.Locate(tt.id)
			require.True(t, ok)
			d.RemoveAt(loc.Parent, loc.Index)
			assert.Equal(t, tt.want, encode(t, d))
		})
	}
}

func TestSpliceAppend(t *testing.T) {
	d, err := Parse(spaced)
	require.NoError(t, err)
	d.Append(d.Nodes(), NewMapping(KeyID, "cache", KeyLabel, "Cache"))
	assert.Equal(t, spaced+"\n  - id: cache\n    label: Cache\n", encode(t, d))

	d, err = Parse(spaced)
	require.NoError(t, err)
	loc, ok := d.Locate("webapp")
	require.True(t, ok)
	children, ok := d.EnsureSequence(loc.Node, KeyChildren)
	require.True(t, ok)
	d.Append(children, NewMapping(KeyID, "worker", KeyLabel, "Worker"))
	want := strings.Replace(spaced, "      label: Inner\n", "      label: Inner\n    - id: worker\n      label: Worker\n", 1)
	assert.Equal(t, want, encode(t, d))
}

func TestSpliceFallsBackForFlowLists(t *testing.T) {
	d, err := Parse("nodes: [{id: a, label: A}, {id: b, label: B}]\n")
	require.NoError(t, err)
	d.RemoveAt(d.Nodes(), 0)
	assert.Equal(t, "nodes: [{id: b, label: B}]\n", encode(t, d))
}
