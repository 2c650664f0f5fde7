// Package cli implements the cndiagram command-line interface.
//
// Every command reads diagram text from a file or, given "-", from standard
// input, and writes to standard output unless -o names a file. Settings come
// from cndiagram.toml and the environment (see package config); --verbose
// (-v) switches logging to debug. Loggers travel through context.Context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/chiply/cn-diagrams/internal/config"
	_ "github.com/chiply/cn-diagrams/internal/handler" // register edit operations
	"github.com/chiply/cn-diagrams/internal/logger"
)

// app is the state shared by the commands of one invocation.
type app struct {
	configPath string
	verbose    bool
	cfg        config.Config
	stderr     io.Writer
}

// NewRootCommand builds the command tree. Logs go to stderr.
func NewRootCommand(stderr io.Writer) *cobra.Command {
	a := &app{cfg: config.Default(), stderr: stderr}

	root := &cobra.Command{
		Use:           "cndiagram",
		Short:         "Parse, edit and render YAML architecture diagrams",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			level, err := logger.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			if a.verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(logger.WithContext(cmd.Context(), logger.New(a.stderr, level)))
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default "+config.DefaultFile+" when present)")

	root.AddCommand(
		a.newParseCmd(),
		a.newElementsCmd(),
		a.newRenderCmd(),
		a.newExportHCLCmd(),
		a.newImportDSLCmd(),
		a.newEditCmd(),
		a.newOpsCmd(),
		a.newIDCmd(),
		a.newServeCmd(),
	)
	return root
}

// Execute runs the command line with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stderr).ExecuteContext(ctx)
}

// readInput reads path, or standard input when path is "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

// writeOutput writes data to path, or to standard output when path is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	logger.FromContext(cmd.Context()).Info("wrote", "path", path, "bytes", len(data))
	return nil
}
