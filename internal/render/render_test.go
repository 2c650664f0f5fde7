package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiply/cn-diagrams/internal/graph"
	"github.com/chiply/cn-diagrams/internal/parser"
)

const shop = `nodes:
  - id: web
    label: Web
  - id: api
    label: API
    technology: Go
    children:
      - id: handler
        label: Handler
edges:
  - source: web
    target: api
    label: calls
    style: dashed
  - source: handler
    target: web
`

func elements(t *testing.T, text string) []graph.Element {
	t.Helper()
	d := parser.Parse(text)
	require.Empty(t, d.Errors)
	return graph.Project(d, graph.DefaultOptions())
}

func TestToDOT(t *testing.T) {
	want := `digraph G {
  rankdir=LR;
  compound=true;
  bgcolor="transparent";
  node [shape=box, style="rounded,filled", fillcolor=white];

  "web" [label="Web"];
  subgraph "cluster_api" {
    label="API\n[Go]";
    style="rounded";
    "api" [shape=point, style=invis, width=0, height=0, label=""];
    "handler" [label="Handler"];
  }

  "web" -> "api" [label="calls", style=dashed, lhead="cluster_api"];
  "handler" -> "web";
}
`
	assert.Equal(t, want, ToDOT(elements(t, shop), Options{RankDir: "LR"}))
}

func TestToDOTDefaults(t *testing.T) {
	dot := ToDOT(elements(t, "nodes:\n  - id: a\n    label: A\n"), Options{})
	assert.Contains(t, dot, "rankdir=TB;")
	assert.Contains(t, dot, `"a" [label="A"];`)
	assert.NotContains(t, dot, "->")
}

func TestToDOTNestedClusters(t *testing.T) {
	text := `nodes:
  - id: region
    label: Region
    children:
      - id: vpc
        label: VPC
        children:
          - id: vm
            label: VM
edges:
  - source: region
    target: vpc
`
	dot := ToDOT(elements(t, text), Options{})
	assert.Contains(t, dot, "  subgraph \"cluster_region\" {\n")
	assert.Contains(t, dot, "    subgraph \"cluster_vpc\" {\n")
	assert.Contains(t, dot, "      \"vm\" [label=\"VM\"];\n")
	assert.Contains(t, dot, `"region" -> "vpc" [ltail="cluster_region", lhead="cluster_vpc"];`)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"dot", FormatDOT},
		{"gv", FormatDOT},
		{"SVG", FormatSVG},
		{"png", FormatPNG},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseFormat("pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestRenderDOT(t *testing.T) {
	out, err := Render(context.Background(), "digraph G {}\n", FormatDOT)
	require.NoError(t, err)
	assert.Equal(t, "digraph G {}\n", string(out))

	_, err = Render(context.Background(), "digraph G {}\n", Format("pdf"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(elements(t, shop), Options{}))
	require.NoError(t, err)
	assert.True(t, bytes.Contains(svg, []byte("<svg")))
}
