package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chiply/cn-diagrams/internal/ident"
	"github.com/chiply/cn-diagrams/internal/logger"
	"github.com/chiply/cn-diagrams/internal/registry"
)

func (a *app) newEditCmd() *cobra.Command {
	var params string
	var inPlace bool
	cmd := &cobra.Command{
		Use:   "edit <operation> <file|->",
		Short: "Apply one edit operation and print the new text",
		Long: `Apply one edit operation to a diagram. Parameters are given as JSON, for example

  cndiagram edit rename_label shop.yaml --params '{"node_id":"api","label":"Gateway"}'

Run "cndiagram ops" for the list of operations.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, path := args[0], args[1]
			if inPlace && path == "-" {
				return fmt.Errorf("--in-place needs a file, not stdin")
			}
			text, err := readInput(cmd, path)
			if err != nil {
				return err
			}
			res, err := registry.Apply(cmd.Context(), op, text, json.RawMessage(params))
			if err != nil {
				return err
			}
			l := logger.FromContext(cmd.Context())
			if !res.Changed {
				l.Warn("nothing changed", "op", op)
			}
			if !inPlace {
				_, err := fmt.Fprint(cmd.OutOrStdout(), res.Text)
				return err
			}
			if !res.Changed {
				return nil
			}
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(res.Text), info.Mode().Perm()); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			l.Info("updated", "path", path, "op", op)
			return nil
		},
	}
	cmd.Flags().StringVarP(&params, "params", "p", "{}", "operation parameters as JSON")
	cmd.Flags().BoolVarP(&inPlace, "in-place", "i", false, "rewrite the file instead of printing")
	return cmd
}

func (a *app) newOpsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List the edit operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range registry.Default.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func (a *app) newIDCmd() *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "id <file|-> [label]",
		Short: "Print a fresh node id for a label, or list the ids in use",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !list && len(args) != 2 {
				return fmt.Errorf("a label is required unless --list is set")
			}
			text, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			if list {
				for _, id := range ident.AllIDs(text).Sorted() {
					fmt.Fprintln(cmd.OutOrStdout(), id)
				}
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ident.Allocate(text, args[1]))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&list, "list", "l", false, "list the node ids in use")
	return cmd
}
