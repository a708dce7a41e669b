package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sadt/canvas"
	"sadt/diagram"
	"sadt/export"
	"sadt/markdown"
	"sadt/ui"
)

func exportCmd() *cobra.Command {
	var (
		format string
		output string
		color  bool
		ascii  bool
		into   string
		block  int
	)
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export a diagram to another format",
		Long: "Export a diagram.\n\nFormats:\n" + formatList() + `
Examples:
  sadt export order.json -f svg -o order.svg
  sadt export order.json -f mermaid
  sadt export order.json --color
  sadt export order.json --into README.md --block 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDiagram(args[0])
			if err != nil {
				return err
			}
			if into != "" {
				if !cmd.Flags().Changed("format") {
					format = ""
				}
				return exportInto(cmd, d, into, block, format)
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return fmt.Errorf("%w (available: %s)", err, strings.Join(formatNames(), ", "))
			}
			exporter, err := export.NewExporter(f)
			if err != nil {
				return err
			}
			if a, ok := exporter.(*export.ASCIIExporter); ok {
				a.CellWidth, a.CellHeight = cfg.Terminal.CellWidth, cfg.Terminal.CellHeight
				a.Color = color
				if ascii || !cfg.Terminal.Unicode {
					a.Glyphs = canvas.ASCIIGlyphs
				}
			}
			out, err := exporter.Export(d)
			if err != nil {
				return err
			}
			if !strings.HasSuffix(out, "\n") {
				out += "\n"
			}
			return writeOutput(cmd, output, out)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "ascii", "Output format")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVar(&color, "color", false, "Colour ASCII output with ANSI escapes")
	cmd.Flags().BoolVar(&ascii, "ascii", false, "Use plain ASCII instead of box-drawing characters")
	cmd.Flags().StringVar(&into, "into", "", "Rewrite a diagram block of this Markdown file instead")
	cmd.Flags().IntVar(&block, "block", 0, "Block to rewrite with --into, counting from 1")
	return cmd
}

func formatNames() []string {
	var names []string
	for _, f := range export.GetAvailableFormats() {
		names = append(names, string(f))
	}
	return names
}

func formatList() string {
	var b strings.Builder
	desc := export.GetFormatDescriptions()
	for _, f := range export.GetAvailableFormats() {
		fmt.Fprintf(&b, "  %-9s %s\n", f, desc[f])
	}
	return b.String()
}

// exportInto replaces a fenced diagram block of a Markdown file with d, in
// the block's own format unless one is given.
func exportInto(cmd *cobra.Command, d *diagram.Diagram, path string, n int, format string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	scanner := markdown.NewScanner(string(data))
	b, err := pickBlock(scanner.FindDiagramBlocks(), n, path)
	if err != nil {
		return err
	}
	if format == "" {
		format = b.Type
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	exporter, err := export.NewExporter(f)
	if err != nil {
		return err
	}
	out, err := exporter.Export(d)
	if err != nil {
		return err
	}
	doc, err := scanner.ReplaceBlock(b, out)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s updated %s block at line %d of %s\n",
		ui.StatusIcon(true), b.Type, b.StartLine+1, path)
	return nil
}
