// Package markdown finds diagram code blocks in Markdown documents and
// rewrites them in place.
package markdown

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ErrBlockChanged is returned by ReplaceBlock when the document no longer
// holds the block as it was found.
var ErrBlockChanged = errors.New("diagram block changed since it was read")

// DiagramBlock represents a diagram code block found in markdown
type DiagramBlock struct {
	Type        string // mermaid, plantuml, etc.
	Content     string // The diagram content, without the fence indentation
	StartLine   int    // Line of the opening fence (0-based)
	EndLine     int    // Line of the closing fence
	Indent      string // Indentation before the code fence
	ContentHash string // SHA256 of Content

	// Byte range of the content lines in the document.
	start, end int
	// eol is the line ending of the opening fence, "\n" or "\r\n".
	eol string
}

// Scanner finds and extracts diagram blocks from markdown content
type Scanner struct {
	source []byte
	parser goldmark.Markdown
}

// NewScanner creates a new markdown scanner
func NewScanner(content string) *Scanner {
	return &Scanner{source: []byte(content), parser: goldmark.New()}
}

// UpdateContent updates the scanner's internal content after a successful replacement
func (s *Scanner) UpdateContent(newContent string) {
	s.source = []byte(newContent)
}

// GetContent returns the current markdown content
func (s *Scanner) GetContent() string {
	return string(s.source)
}

// FindDiagramBlocks returns the fenced blocks tagged with a diagram
// language, in document order. Blocks inside block quotes are skipped since
// their lines carry a prefix that would not survive a rewrite.
func (s *Scanner) FindDiagramBlocks() []DiagramBlock {
	doc := s.parser.Parser().Parse(text.NewReader(s.source))
	var blocks []DiagramBlock
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if n.Kind() == ast.KindBlockquote {
			return ast.WalkSkipChildren, nil
		}
		fence, ok := n.(*ast.FencedCodeBlock)
		if !ok || fence.Info == nil {
			return ast.WalkContinue, nil
		}
		lang := string(fence.Language(s.source))
		if !isDiagramLanguage(lang) {
			return ast.WalkContinue, nil
		}
		blocks = append(blocks, s.block(fence, lang))
		return ast.WalkSkipChildren, nil
	})
	return blocks
}

func (s *Scanner) block(fence *ast.FencedCodeBlock, lang string) DiagramBlock {
	info := fence.Info.Segment
	start := len(s.source)
	eol := "\n"
	if i := bytes.IndexByte(s.source[info.Stop:], '\n'); i >= 0 {
		start = info.Stop + i + 1
		if start >= 2 && s.source[start-2] == '\r' {
			eol = "\r\n"
		}
	}
	end := start

	var content strings.Builder
	lines := fence.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		content.Write(seg.Value(s.source))
		end = seg.Stop
	}

	fenceLine := lineStart(s.source, info.Start)
	line := s.source[fenceLine:info.Start]
	indent := line[:len(line)-len(bytes.TrimLeft(line, " \t"))]

	b := DiagramBlock{
		Type:      lang,
		Content:   strings.TrimSuffix(normalize(content.String()), "\n"),
		StartLine: bytes.Count(s.source[:info.Start], []byte("\n")),
		EndLine:   bytes.Count(s.source[:end], []byte("\n")),
		Indent:    string(indent),
		start:     start,
		end:       end,
		eol:       eol,
	}
	b.ContentHash = hash(b.Content)
	return b
}

// ValidateBlockUnchanged checks that the document still holds block at the
// same place with the same content.
func (s *Scanner) ValidateBlockUnchanged(block DiagramBlock) error {
	for _, b := range s.FindDiagramBlocks() {
		if b.StartLine != block.StartLine {
			continue
		}
		if b.Type != block.Type || b.ContentHash != block.ContentHash {
			return fmt.Errorf("%w: line %d", ErrBlockChanged, block.StartLine+1)
		}
		return nil
	}
	return fmt.Errorf("%w: no %s block at line %d", ErrBlockChanged, block.Type, block.StartLine+1)
}

// ReplaceBlock replaces a diagram block's content, keeping its fences,
// indentation and line endings, and returns the new document. The scanner's
// content is not changed; call UpdateContent with the result to keep going.
func (s *Scanner) ReplaceBlock(block DiagramBlock, newContent string) (string, error) {
	if err := s.ValidateBlockUnchanged(block); err != nil {
		return "", err
	}
	eol := block.eol
	if eol == "" {
		eol = "\n"
	}
	var body strings.Builder
	for _, line := range strings.Split(strings.TrimSuffix(normalize(newContent), "\n"), "\n") {
		if line != "" {
			body.WriteString(block.Indent)
		}
		body.WriteString(line)
		body.WriteString(eol)
	}

	var out bytes.Buffer
	out.Write(s.source[:block.start])
	out.WriteString(body.String())
	out.Write(s.source[block.end:])
	return out.String(), nil
}

// normalize turns CRLF line endings into LF.
func normalize(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

func lineStart(src []byte, offset int) int {
	return bytes.LastIndexByte(src[:offset], '\n') + 1
}

func hash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// isDiagramLanguage checks if a language identifier is a diagram type we support
func isDiagramLanguage(lang string) bool {
	switch strings.ToLower(lang) {
	case "mermaid", "plantuml", "puml", "graphviz", "dot", "d2":
		return true
	default:
		return false
	}
}

// FormatBlockInfo returns a human-readable description of a block
func FormatBlockInfo(block DiagramBlock, index int) string {
	preview := ""
	for _, line := range strings.Split(strings.TrimSpace(block.Content), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "@startuml") && !strings.HasPrefix(trimmed, "@enduml") {
			preview = trimmed
			if len(preview) > 50 {
				preview = preview[:47] + "..."
			}
			break
		}
	}
	return fmt.Sprintf("%d. %s (line %d): %s", index+1, block.Type, block.StartLine+1, preview)
}
