// Package dsl reads the line-oriented diagram language that predates the
// YAML format and converts it to YAML.
//
//	# comment
//	node api "API" {
//	  node handler "Handler"
//	}
//	edge handler -> api "reports"
package dsl

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/chiply/cn-diagrams/internal/diagram"
)

var (
	nodeLine = regexp.MustCompile(`^node\s+(\w+)\s+"([^"]*)"(\s*\{)?$`)
	edgeLine = regexp.MustCompile(`^edge\s+(\w+)\s*->\s*(\w+)(?:\s+"([^"]*)")?$`)
)

type openBlock struct {
	id   string
	line int
}

// Parse reads text into a flat diagram. Lines that match nothing are
// reported and skipped; the rest of the text is still read. Reference checks
// run once everything is read.
func Parse(text string) *diagram.Diagram {
	d := diagram.Empty()
	ids := diagram.NewEdgeIDAllocator()
	var stack []openBlock

	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if line == "}" {
			if len(stack) == 0 {
				d.Errors = append(d.Errors, fmt.Sprintf(`Line %d: Unexpected "}"`, lineNo))
				continue
			}
			stack = stack[:len(stack)-1]
			continue
		}

		if m := nodeLine.FindStringSubmatch(line); m != nil {
			n := diagram.Node{ID: m[1], Label: m[2]}
			if len(stack) > 0 {
				n.Parent = stack[len(stack)-1].id
			}
			d.Nodes = append(d.Nodes, n)
			if m[3] != "" {
				stack = append(stack, openBlock{id: n.ID, line: lineNo})
			}
			continue
		}

		if m := edgeLine.FindStringSubmatch(line); m != nil {
			d.Edges = append(d.Edges, diagram.Edge{
				ID:     ids.Next("", m[1], m[2]),
				Source: m[1],
				Target: m[2],
				Label:  m[3],
			})
			continue
		}

		d.Errors = append(d.Errors, fmt.Sprintf("Line %d: Unable to parse %q", lineNo, line))
	}

	for i := len(stack) - 1; i >= 0; i-- {
		d.Errors = append(d.Errors, fmt.Sprintf("Line %d: Unclosed block for node %q", stack[i].line, stack[i].id))
	}
	d.Errors = append(d.Errors, diagram.Validate(d)...)
	return d
}
