package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiply/cn-diagrams/internal/diagram"
	"github.com/chiply/cn-diagrams/internal/parser"
)

const shop = `# Shop
node web "Web"
node api "API" {
  node handler "Handler"
}
edge web -> api "calls"
edge handler->web
`

func TestParse(t *testing.T) {
	d := Parse(shop)
	assert.Empty(t, d.Errors)
	assert.Equal(t, []diagram.Node{
		{ID: "web", Label: "Web"},
		{ID: "api", Label: "API"},
		{ID: "handler", Label: "Handler", Parent: "api"},
	}, d.Nodes)
	assert.Equal(t, []diagram.Edge{
		{ID: "web-api", Source: "web", Target: "api", Label: "calls"},
		{ID: "handler-web", Source: "handler", Target: "web"},
	}, d.Edges)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "unknown line",
			text: "node a \"A\"\nbox b\n",
			want: []string{`Line 2: Unable to parse "box b"`},
		},
		{
			name: "stray brace",
			text: "}\nnode a \"A\"\n",
			want: []string{`Line 1: Unexpected "}"`},
		},
		{
			name: "unclosed block",
			text: "node a \"A\" {\n  node b \"B\"\n",
			want: []string{`Line 1: Unclosed block for node "a"`},
		},
		{
			name: "unknown edge endpoint",
			text: "node a \"A\"\nedge a -> ghost\n",
			want: []string{`Edge 1: Unknown target node "ghost"`},
		},
		{
			name: "duplicate node",
			text: "node a \"A\"\nnode a \"Again\"\n",
			want: []string{`Duplicate node id "a"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.text).Errors)
		})
	}
}

func TestParseKeepsReadingAfterErrors(t *testing.T) {
	d := Parse("node a \"A\"\n???\nnode b \"B\"\nedge a -> b\n")
	assert.Len(t, d.Errors, 1)
	assert.Len(t, d.Nodes, 2)
	assert.Len(t, d.Edges, 1)
}

func TestToYAML(t *testing.T) {
	want := `nodes:
  - id: web
    label: Web
  - id: api
    label: API
    children:
      - id: handler
        label: Handler
edges:
  - source: web
    target: api
    label: calls
  - source: handler
    target: web
`
	assert.Equal(t, want, ToYAML(Parse(shop)))
}

func TestToYAMLRoundTrip(t *testing.T) {
	src := Parse(shop)
	src.Name = "Shop"
	src.Description = "Online store"

	out := parser.Parse(ToYAML(src))
	require.Empty(t, out.Errors)
	assert.Equal(t, "Shop", out.Name)
	assert.Equal(t, "Online store", out.Description)
	assert.Equal(t, src.Nodes, out.Nodes)
	assert.Equal(t, src.Edges, out.Edges)
}

func TestToYAMLNil(t *testing.T) {
	assert.Equal(t, "", ToYAML(nil))
}
