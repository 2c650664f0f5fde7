package render

import (
	"fmt"
	"strings"

	"github.com/chiply/cn-diagrams/internal/diagram"
	"github.com/chiply/cn-diagrams/internal/graph"
)

// DefaultRankDir lays the graph out top to bottom.
const DefaultRankDir = "TB"

// ClusterPrefix prefixes the subgraph name of a compound node.
const ClusterPrefix = "cluster_"

// Options configures DOT generation.
type Options struct {
	// RankDir is the Graphviz rankdir (TB, LR, BT or RL).
	RankDir string
}

// ToDOT converts projected elements to Graphviz DOT. Nodes that hold other
// nodes become clusters containing an invisible anchor point, so edges can
// attach to them; such edges are clipped at the cluster border.
func ToDOT(elements []graph.Element, opts Options) string {
	rankDir := opts.RankDir
	if rankDir == "" {
		rankDir = DefaultRankDir
	}

	nodes := graph.Nodes(elements)
	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n.ID] = true
	}
	children := make(map[string][]graph.NodeData)
	var roots []graph.NodeData
	for _, n := range nodes {
		if n.Parent != "" && known[n.Parent] {
			children[n.Parent] = append(children[n.Parent], n)
			continue
		}
		roots = append(roots, n)
	}

	var sb strings.Builder
	sb.WriteString("digraph G {\n")
	fmt.Fprintf(&sb, "  rankdir=%s;\n", rankDir)
	sb.WriteString("  compound=true;\n")
	sb.WriteString("  bgcolor=\"transparent\";\n")
	sb.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white];\n")
	sb.WriteString("\n")

	w := &dotWriter{sb: &sb, children: children}
	for _, n := range roots {
		w.node(n, 1)
	}

	edges := graph.Edges(elements)
	if len(edges) > 0 {
		sb.WriteString("\n")
	}
	for _, e := range edges {
		attrs := edgeAttrs(e, children)
		if len(attrs) == 0 {
			fmt.Fprintf(&sb, "  %q -> %q;\n", e.Source, e.Target)
			continue
		}
		fmt.Fprintf(&sb, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(attrs, ", "))
	}

	sb.WriteString("}\n")
	return sb.String()
}

type dotWriter struct {
	sb       *strings.Builder
	children map[string][]graph.NodeData
}

func (w *dotWriter) node(n graph.NodeData, depth int) {
	indent := strings.Repeat("  ", depth)
	kids := w.children[n.ID]
	if len(kids) == 0 {
		fmt.Fprintf(w.sb, "%s%q [label=%q];\n", indent, n.ID, n.DisplayLabel)
		return
	}
	fmt.Fprintf(w.sb, "%ssubgraph %q {\n", indent, ClusterPrefix+n.ID)
	fmt.Fprintf(w.sb, "%s  label=%q;\n", indent, n.DisplayLabel)
	fmt.Fprintf(w.sb, "%s  style=\"rounded\";\n", indent)
	fmt.Fprintf(w.sb, "%s  %q [shape=point, style=invis, width=0, height=0, label=\"\"];\n", indent, n.ID)
	for _, c := range kids {
		w.node(c, depth+1)
	}
	fmt.Fprintf(w.sb, "%s}\n", indent)
}

func edgeAttrs(e graph.EdgeData, children map[string][]graph.NodeData) []string {
	var attrs []string
	if e.DisplayLabel != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.DisplayLabel))
	}
	switch diagram.EdgeStyle(e.Style) {
	case diagram.StyleDashed:
		attrs = append(attrs, "style=dashed")
	case diagram.StyleDotted:
		attrs = append(attrs, "style=dotted")
	}
	if len(children[e.Source]) > 0 {
		attrs = append(attrs, fmt.Sprintf("ltail=%q", ClusterPrefix+e.Source))
	}
	if len(children[e.Target]) > 0 {
		attrs = append(attrs, fmt.Sprintf("lhead=%q", ClusterPrefix+e.Target))
	}
	return attrs
}
