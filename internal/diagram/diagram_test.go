package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdgeIDAllocator(t *testing.T) {
	a := NewEdgeIDAllocator()
	assert.Equal(t, "a-b", a.Next("", "a", "b"))
	assert.Equal(t, "custom", a.Next("custom", "a", "b"))
	assert.Equal(t, "a-b-2", a.Next("", "a", "b"))
	assert.Equal(t, "b-a", a.Next("", "b", "a"))
	assert.Equal(t, "a-b-3", a.Next("", "a", "b"))
}

func TestEdgeIDAllocatorSkipsExplicitIDs(t *testing.T) {
	a := NewEdgeIDAllocator("a-b", "a-b-3", "")
	assert.Equal(t, "a-b", a.Next("a-b", "x", "y"))
	assert.Equal(t, "a-b-2", a.Next("", "a", "b"))
	assert.Equal(t, "a-b-4", a.Next("", "a", "b"))

	b := NewEdgeIDAllocator()
	assert.Equal(t, "a-b-2", b.Next("", "a", "b-2"))
	assert.Equal(t, "a-b", b.Next("", "a", "b"))
	assert.Equal(t, "a-b-2-2", b.Next("", "a", "b-2"))
	assert.Equal(t, "a-b-3", b.Next("", "a", "b"))
}

func TestEdgeStyleValid(t *testing.T) {
	for _, s := range []EdgeStyle{"", StyleSolid, StyleDashed, StyleDotted} {
		assert.True(t, s.Valid(), "style %q", s)
	}
	assert.False(t, EdgeStyle("wavy").Valid())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		d    *Diagram
		want []string
	}{
		{
			name: "nil",
			d:    nil,
			want: []string{"Diagram is nil"},
		},
		{
			name: "clean",
			d: &Diagram{
				Nodes: []Node{{ID: "a", Label: "A"}, {ID: "b", Label: "B", Parent: "a"}},
				Edges: []Edge{{ID: "a-b", Source: "a", Target: "b", Style: StyleDashed}},
			},
		},
		{
			name: "duplicate node",
			d: &Diagram{
				Nodes: []Node{{ID: "a"}, {ID: "a"}},
			},
			want: []string{`Duplicate node id "a"`},
		},
		{
			name: "unknown parent",
			d: &Diagram{
				Nodes: []Node{{ID: "c", Parent: "p"}},
			},
			want: []string{`Node "c": Unknown parent "p"`},
		},
		{
			name: "edge problems",
			d: &Diagram{
				Nodes: []Node{{ID: "a"}, {ID: "b"}},
				Edges: []Edge{
					{ID: "x", Source: "a"},
					{ID: "a-z", Source: "a", Target: "z"},
					{ID: "a-b", Source: "a", Target: "b"},
					{ID: "a-b", Source: "a", Target: "b"},
					{ID: "b-a", Source: "b", Target: "a", Style: "wavy"},
				},
			},
			want: []string{
				"Edge 1: Missing source or target",
				`Edge 2: Unknown target node "z"`,
				`Edge 4: Duplicate edge id "a-b"`,
				`Edge 5: Invalid style "wavy"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.d))
		})
	}
}

func TestDiagramAccessors(t *testing.T) {
	d := &Diagram{
		Nodes: []Node{
			{ID: "p", Label: "P"},
			{ID: "c1", Label: "C1", Parent: "p"},
			{ID: "c2", Label: "C2", Parent: "p"},
			{ID: "q", Label: "Q"},
		},
		Edges: []Edge{
			{ID: "c1-q", Source: "c1", Target: "q"},
			{ID: "q-c2", Source: "q", Target: "c2"},
		},
	}

	n := d.NodeByID("c2")
	require.NotNil(t, n)
	assert.Equal(t, "C2", n.Label)
	assert.Nil(t, d.NodeByID("missing"))

	children := d.Children("p")
	require.Len(t, children, 2)
	assert.Equal(t, "c1", children[0].ID)
	assert.Empty(t, d.Children(""))
	require.NotEmpty(t, d.Roots())
	assert.Equal(t, "", d.Roots()[0].Parent)

	assert.True(t, d.IsCompound("p"))
	assert.False(t, d.IsCompound("q"))

	assert.Len(t, d.EdgesWithSource("q"), 1)
	assert.Len(t, d.EdgesWithTarget("q"), 1)
}

func TestEmpty(t *testing.T) {
	d := Empty("Empty document")
	assert.NotNil(t, d.Nodes)
	assert.NotNil(t, d.Edges)
	assert.Equal(t, []string{"Empty document"}, d.Errors)
}
