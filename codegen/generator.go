package codegen

import (
	"bytes"
	"embed"
	"fmt"
	"go/format"
	"go/token"
	"strings"
	"text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"sadt/diagram"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Generator renders diagrams through the embedded templates.
type Generator struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Generator, error) {
	tmpl, err := template.New("codegen").Funcs(template.FuncMap{
		"cell":   tableCell,
		"quote":  func(s string) string { return fmt.Sprintf("%q", s) },
		"params": paramList,
		"labels": labelList,
		"num":    func(f float64) string { return fmt.Sprintf("%g", f) },
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Generator{tmpl: tmpl}, nil
}

type moduleData struct {
	Package   string
	Functions []Signature
}

type docNode struct {
	diagram.Node
	Signature Signature
}

type docData struct {
	Title  string
	Nodes  []docNode
	Arrows int
}

// GoModule renders a Go source file declaring one function per activity in
// package pkg. The result is gofmt-formatted.
func (g *Generator) GoModule(d diagram.View, pkg string) (string, error) {
	if pkg == "" {
		pkg = "process"
	}
	if !token.IsIdentifier(pkg) {
		return "", fmt.Errorf("invalid package name %q", pkg)
	}
	var buf bytes.Buffer
	data := moduleData{Package: pkg, Functions: ClassifyAll(d)}
	if err := g.tmpl.ExecuteTemplate(&buf, "go_module.tmpl", data); err != nil {
		return "", fmt.Errorf("render go module: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("format go module: %w", err)
	}
	return string(src), nil
}

// Markdown renders a document listing every activity with its geometry and
// signature.
func (g *Generator) Markdown(d diagram.View) (string, error) {
	return g.markdown(d, "SADT diagram")
}

// MarkdownTitled is Markdown with a custom document title.
func (g *Generator) MarkdownTitled(d diagram.View, title string) (string, error) {
	return g.markdown(d, title)
}

func (g *Generator) markdown(d diagram.View, title string) (string, error) {
	sigs := ClassifyAll(d)
	nodes := d.Nodes()
	data := docData{Title: title, Nodes: make([]docNode, len(nodes)), Arrows: len(d.Arrows())}
	for i, n := range nodes {
		data.Nodes[i] = docNode{Node: n, Signature: sigs[i]}
	}
	var buf bytes.Buffer
	if err := g.tmpl.ExecuteTemplate(&buf, "markdown_doc.tmpl", data); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// RenderHTML converts Markdown, tables included, to an HTML fragment.
func RenderHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

func tableCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

func paramList(ps []Param) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.Name + " " + p.Type
	}
	return strings.Join(parts, ", ")
}

func labelList(ps []Param) string {
	if len(ps) == 0 {
		return "none"
	}
	parts := make([]string, len(ps))
	for i, p := range ps {
		label := p.Label
		if label == "" {
			label = "(unlabelled)"
		}
		parts[i] = tableCell(label)
	}
	return strings.Join(parts, ", ")
}
