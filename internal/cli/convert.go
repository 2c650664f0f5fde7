package cli

import (
	"github.com/spf13/cobra"

	"github.com/chiply/cn-diagrams/internal/dsl"
	"github.com/chiply/cn-diagrams/internal/hclexport"
	"github.com/chiply/cn-diagrams/internal/logger"
	"github.com/chiply/cn-diagrams/internal/parser"
)

func (a *app) newExportHCLCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export-hcl <file|->",
		Short: "Write a diagram as HCL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			d := parser.New(a.cfg.ParserOptions()).Parse(text)
			for _, e := range d.Errors {
				logger.FromContext(cmd.Context()).Warn(e)
			}
			return writeOutput(cmd, output, hclexport.Export(d))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func (a *app) newImportDSLCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "import-dsl <file|->",
		Short: "Convert a diagram in the line-based language to YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			d := dsl.Parse(text)
			for _, e := range d.Errors {
				logger.FromContext(cmd.Context()).Warn(e)
			}
			return writeOutput(cmd, output, []byte(dsl.ToYAML(d)))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
