// Package cmd implements the sadt command line.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sadt/config"
	"sadt/diagram"
	"sadt/ui"
)

var version = "0.3.0"

var (
	cfgFile  string
	logLevel string

	cfg    = config.Default()
	logger = slog.New(slog.DiscardHandler)
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sadt [file]",
		Short: "sadt: SADT activity diagram editor",
		Long: ui.Brand.Sprint("sadt") + " edits SADT/IDEF0 activity diagrams in the terminal\n" +
			ui.Subtle.Sprint("Draw activities and ICOM arrows, then export them or generate code"),
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if logLevel != "" {
				c.Log.Level = logLevel
			}
			cfg = c
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args, editFlags{})
		},
	}
	root.SetVersionTemplate("sadt {{ .Version }}\n")
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default "+config.Path()+")")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")

	root.AddCommand(
		editCmd(),
		newCmd(),
		validateCmd(),
		exportCmd(),
		importCmd(),
		generateCmd(),
		listCmd(),
		serveCmd(),
		configCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		ui.Bad.Fprintf(os.Stderr, "sadt: %v\n", err)
	}
	return err
}

// setupLogging points the global logger at w, or at the configured log file
// when one is set.
func setupLogging(w io.Writer) (func(), error) {
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return nil, err
	}
	closer := func() {}
	if cfg.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, func() { f.Close() }
	}
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return closer, nil
}

// loadDiagram reads a diagram file with the configured node defaults.
func loadDiagram(path string) (*diagram.Diagram, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := diagram.Parse(data, cfg.DiagramOptions()...)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return d, nil
}

// writeOutput writes s to path, or to the command's stdout when path is
// empty.
func writeOutput(cmd *cobra.Command, path, s string) error {
	if path == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), s)
		return err
	}
	if err := os.WriteFile(path, []byte(s), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s wrote %s\n", ui.StatusIcon(true), path)
	return nil
}
