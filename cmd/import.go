package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sadt/diagram"
	"sadt/export"
	"sadt/importer"
	"sadt/markdown"
	"sadt/store"
	"sadt/ui"
)

func importCmd() *cobra.Command {
	var (
		format string
		output string
		block  int
		force  bool
	)
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Create a diagram from Mermaid, DOT, PlantUML or D2",
		Long: `Import a diagram written for another tool.

The format is taken from --format, then from the file extension, then
detected from the content. Markdown files are searched for fenced diagram
blocks; pick one with --block when there are several. Sources without
positions are laid out automatically.

Examples:
  sadt import flow.mmd -o flow.json
  sadt import README.md --block 2 -o flow.json
  sadt import - -f dot < graph.dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := importFile(cmd, args[0], format, block)
			if err != nil {
				return err
			}
			if output == "" {
				out, err := export.NewJSONExporter().Export(d)
				if err != nil {
					return err
				}
				return writeOutput(cmd, "", out)
			}
			if _, err := os.Stat(output); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", output)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			if err := store.SaveFile(output, d); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s imported %s and %s into %s\n", ui.StatusIcon(true),
				plural(d.NodeCount(), "node"), plural(d.ArrowCount(), "arrow"), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Source format: "+strings.Join(importer.NewImporterRegistry().GetAvailableFormats(), ", "))
	cmd.Flags().StringVarP(&output, "output", "o", "", "Diagram file to write (default stdout)")
	cmd.Flags().IntVar(&block, "block", 0, "Diagram block to import from a Markdown file, counting from 1")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite the output file")
	return cmd
}

func importFile(cmd *cobra.Command, path, format string, block int) (*diagram.Diagram, error) {
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
		return nil, err
	}
	content := string(data)
	reg := importer.NewImporterRegistry()

	if isMarkdown(path) {
		b, err := pickBlock(markdown.NewScanner(content).FindDiagramBlocks(), block, path)
		if err != nil {
			return nil, err
		}
		content = b.Content
		if format == "" {
			format = b.Type
		}
	}

	var d *diagram.Diagram
	switch imp, ok := reg.ForFile(path); {
	case format != "":
		d, err = reg.ImportWithFormat(content, format)
	case ok:
		d, err = imp.Import(content)
	default:
		d, err = reg.Import(content)
	}
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	logger.Debug("imported diagram", "path", path, "nodes", d.NodeCount(), "arrows", d.ArrowCount())
	return d, nil
}

func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// pickBlock selects block n, counting from 1. Zero picks the only block and
// is an error when there are several.
func pickBlock(blocks []markdown.DiagramBlock, n int, path string) (markdown.DiagramBlock, error) {
	switch {
	case len(blocks) == 0:
		return markdown.DiagramBlock{}, fmt.Errorf("no diagram blocks in %s", path)
	case n == 0 && len(blocks) == 1:
		return blocks[0], nil
	case n == 0:
		var sb strings.Builder
		fmt.Fprintf(&sb, "%s has %d diagram blocks, pick one with --block:", path, len(blocks))
		for i, b := range blocks {
			sb.WriteString("\n  " + markdown.FormatBlockInfo(b, i))
		}
		return markdown.DiagramBlock{}, errors.New(sb.String())
	case n < 0 || n > len(blocks):
		return markdown.DiagramBlock{}, fmt.Errorf("%s has no diagram block %d (found %d)", path, n, len(blocks))
	}
	return blocks[n-1], nil
}
