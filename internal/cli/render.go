package cli

import (
	"github.com/spf13/cobra"

	"github.com/chiply/cn-diagrams/internal/graph"
	"github.com/chiply/cn-diagrams/internal/logger"
	"github.com/chiply/cn-diagrams/internal/parser"
	"github.com/chiply/cn-diagrams/internal/render"
)

func (a *app) newRenderCmd() *cobra.Command {
	var format, output, rankDir string
	cmd := &cobra.Command{
		Use:   "render <file|->",
		Short: "Render a diagram as DOT, SVG or PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}
			text, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			l := logger.FromContext(cmd.Context())
			d := parser.New(a.cfg.ParserOptions()).Parse(text)
			for _, e := range d.Errors {
				l.Warn(e)
			}

			opts := a.cfg.RenderOptions()
			if rankDir != "" {
				opts.RankDir = rankDir
			}
			prog := logger.NewProgress(l)
			out, err := render.Render(cmd.Context(), render.ToDOT(graph.Project(d, a.cfg.GraphOptions()), opts), f)
			if err != nil {
				return err
			}
			prog.Done("rendered " + string(f))
			return writeOutput(cmd, output, out)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(render.FormatSVG), "output format: dot, svg, png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&rankDir, "rankdir", "", "layout direction: TB, LR, BT, RL")
	return cmd
}
