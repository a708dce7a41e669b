package cmd

import (
	"fmt"
	"html"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sadt/codegen"
)

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate code or documentation from a diagram",
		Long: `Derive artefacts from the activities and their ICOM arrows.

  sadt generate code order.json --package order -o order.go
  sadt generate doc order.json --html -o order.html`,
	}
	cmd.AddCommand(generateCodeCmd(), generateDocCmd())
	return cmd
}

func generateCodeCmd() *cobra.Command {
	var (
		pkg    string
		output string
	)
	cmd := &cobra.Command{
		Use:   "code <file>",
		Short: "Generate a Go skeleton with one function per activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDiagram(args[0])
			if err != nil {
				return err
			}
			gen, err := codegen.New()
			if err != nil {
				return err
			}
			src, err := gen.GoModule(d, pkg)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, src)
		},
	}
	cmd.Flags().StringVarP(&pkg, "package", "p", "process", "Go package name")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}

func generateDocCmd() *cobra.Command {
	var (
		asHTML bool
		title  string
		output string
	)
	cmd := &cobra.Command{
		Use:   "doc <file>",
		Short: "Generate a Markdown or HTML description of the diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDiagram(args[0])
			if err != nil {
				return err
			}
			gen, err := codegen.New()
			if err != nil {
				return err
			}
			if title == "" {
				title = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}
			md, err := gen.MarkdownTitled(d, title)
			if err != nil {
				return err
			}
			if !asHTML {
				return writeOutput(cmd, output, md)
			}
			body, err := codegen.RenderHTML(md)
			if err != nil {
				return err
			}
			page := fmt.Sprintf("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>%s</title></head>\n<body>\n%s</body></html>\n",
				html.EscapeString(title), body)
			return writeOutput(cmd, output, page)
		},
	}
	cmd.Flags().BoolVar(&asHTML, "html", false, "Render the Markdown to an HTML page")
	cmd.Flags().StringVarP(&title, "title", "t", "", "Document title (default: file name)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}
