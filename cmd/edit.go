package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"sadt/canvas"
	"sadt/config"
	"sadt/diagram"
	"sadt/editor"
	"sadt/geometry"
	"sadt/terminal"
)

type editFlags struct {
	ascii   bool
	noWatch bool
}

func editCmd() *cobra.Command {
	var flags editFlags
	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Edit a diagram in the terminal",
		Long: `Open the interactive editor. A missing file is created on first save.

  sadt edit order.json
  sadt edit --ascii order.json     # plain ASCII box drawing`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args, flags)
		},
	}
	cmd.Flags().BoolVar(&flags.ascii, "ascii", false, "Draw with ASCII characters only")
	cmd.Flags().BoolVar(&flags.noWatch, "no-watch", false, "Do not reload the file when it changes on disk")
	return cmd
}

func runEdit(cmd *cobra.Command, args []string, flags editFlags) error {
	var path string
	d := diagram.New(cfg.DiagramOptions()...)
	if len(args) == 1 {
		path = args[0]
		loaded, err := loadDiagram(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return err
		default:
			d = loaded
		}
	}

	// The screen owns the terminal, so logs go to a file.
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(config.ConfigDir(), "sadt.log")
	}
	closeLog, err := setupLogging(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	ed := editor.New(d,
		editor.WithSettings(cfg.Settings()),
		editor.WithLogger(logger),
		editor.WithHistoryDepth(cfg.Editor.HistoryDepth),
		editor.WithTransform(geometry.NewTransform(geometry.V(0, 0), cfg.Terminal.InitialZoom)),
	)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	glyphs := canvas.UnicodeGlyphs
	if flags.ascii || !cfg.Terminal.Unicode {
		glyphs = canvas.ASCIIGlyphs
	}
	app := terminal.New(screen, ed, terminal.Options{
		Path:       path,
		Watch:      path != "" && !flags.noWatch,
		CellWidth:  cfg.Terminal.CellWidth,
		CellHeight: cfg.Terminal.CellHeight,
		Glyphs:     glyphs,
		Logger:     logger,

		DiagramOptions: cfg.DiagramOptions(),
	})
	logger.Info("editor started", "path", path, "nodes", d.NodeCount(), "arrows", d.ArrowCount())
	return app.Run(context.Background())
}
