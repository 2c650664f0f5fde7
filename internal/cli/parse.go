package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chiply/cn-diagrams/internal/graph"
	"github.com/chiply/cn-diagrams/internal/parser"
	"github.com/chiply/cn-diagrams/internal/result"
)

// ErrDiagramInvalid is returned by parse when the diagram has errors.
var ErrDiagramInvalid = errors.New("diagram has errors")

func (a *app) newParseCmd() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "parse <file|->",
		Short: "Check a diagram and report its problems",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			d := parser.New(a.cfg.ParserOptions()).Parse(text)
			if jsonOut {
				res := result.FromDiagram(d, graph.Project(d, a.cfg.GraphOptions()))
				if err := writeJSON(cmd, res); err != nil {
					return err
				}
			} else {
				printSummary(cmd.OutOrStdout(), d)
			}
			if len(d.Errors) > 0 {
				return fmt.Errorf("%w: %d problem(s)", ErrDiagramInvalid, len(d.Errors))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the parse result as JSON")
	return cmd
}

func (a *app) newElementsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "elements <file|->",
		Short: "Print the graph elements of a diagram as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			d := parser.New(a.cfg.ParserOptions()).Parse(text)
			return writeJSON(cmd, graph.Project(d, a.cfg.GraphOptions()))
		},
	}
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
