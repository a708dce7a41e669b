package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"sadt/diagram"
	"sadt/geometry"
	"sadt/store"
	"sadt/ui"
)

func newCmd() *cobra.Command {
	var (
		force   bool
		example bool
	)
	cmd := &cobra.Command{
		Use:   "new <file>",
		Short: "Create an empty diagram file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return err
				}
			}
			d := diagram.New(cfg.DiagramOptions()...)
			if example {
				exampleDiagram(d)
			}
			if err := store.SaveFile(path, d); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s created %s\n", ui.StatusIcon(true), path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	cmd.Flags().BoolVar(&example, "example", false, "Start from a small example with one arrow of each type")
	return cmd
}

// exampleDiagram fills d with an activity fed by one arrow of each type.
func exampleDiagram(d *diagram.Diagram) {
	w, h := d.NodeSize()
	supply := d.AddNode("Receive Order", geometry.Pt(0, 0))
	process := d.AddNode("Process Order", geometry.Pt(2*w, 0))
	rules := d.AddNode("Pricing Rules", geometry.Pt(2*w, -2*h))
	staff := d.AddNode("Clerk", geometry.Pt(2*w, 2*h))
	ship := d.AddNode("Ship Order", geometry.Pt(4*w, 0))

	d.AddArrow(
		diagram.ConnectionPoint{Node: supply, Side: diagram.Right},
		diagram.ConnectionPoint{Node: process, Side: diagram.Left},
		diagram.Input, "order")
	d.AddArrow(
		diagram.ConnectionPoint{Node: rules, Side: diagram.Bottom},
		diagram.ConnectionPoint{Node: process, Side: diagram.Top},
		diagram.Control, "prices")
	d.AddArrow(
		diagram.ConnectionPoint{Node: staff, Side: diagram.Top},
		diagram.ConnectionPoint{Node: process, Side: diagram.Bottom},
		diagram.Mechanism, "clerk")
	d.AddArrow(
		diagram.ConnectionPoint{Node: process, Side: diagram.Right},
		diagram.ConnectionPoint{Node: ship, Side: diagram.Left},
		diagram.Output, "invoice")
}
