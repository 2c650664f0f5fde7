package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/chiply/cn-diagrams/internal/diagram"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorDim   = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
)

// printSummary writes a human-readable report of a parsed diagram.
func printSummary(w io.Writer, d *diagram.Diagram) {
	title := d.Name
	if title == "" {
		title = "diagram"
	}
	fmt.Fprintln(w, styleTitle.Render(title))
	if d.Description != "" {
		fmt.Fprintln(w, styleDim.Render(d.Description))
	}
	fmt.Fprintf(w, "%d nodes, %d edges\n", len(d.Nodes), len(d.Edges))
	printTree(w, d, d.Roots(), "  ")
	if len(d.Errors) == 0 {
		fmt.Fprintln(w, styleSuccess.Render(iconSuccess+" no problems"))
		return
	}
	for _, e := range d.Errors {
		fmt.Fprintln(w, styleError.Render(iconError+" "+e))
	}
}

// printTree lists nodes and their descendants, groups marked with "+", each
// with its incoming and outgoing edge counts.
func printTree(w io.Writer, d *diagram.Diagram, nodes []diagram.Node, indent string) {
	for _, n := range nodes {
		mark := "-"
		if d.IsCompound(n.ID) {
			mark = "+"
		}
		in, out := len(d.EdgesWithTarget(n.ID)), len(d.EdgesWithSource(n.ID))
		fmt.Fprintf(w, "%s%s %s %s\n", indent, mark, n.ID, styleDim.Render(fmt.Sprintf("(%d in, %d out)", in, out)))
		printTree(w, d, d.Children(n.ID), indent+"  ")
	}
}
