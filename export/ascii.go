package export

import (
	"fmt"

	"sadt/canvas"
	"sadt/diagram"
)

// ASCIIExporter exports diagrams to Unicode box drawing, the same picture the
// terminal editor shows at zoom 1.
type ASCIIExporter struct {
	// CellWidth and CellHeight are the world units covered by one character.
	CellWidth, CellHeight float64
	Glyphs                canvas.Glyphs
	// Color wraps arrows and boxes in ANSI colours.
	Color bool
}

// NewASCIIExporter creates a new ASCII exporter
func NewASCIIExporter() *ASCIIExporter {
	return &ASCIIExporter{CellWidth: 8, CellHeight: 16, Glyphs: canvas.UnicodeGlyphs}
}

// Export converts the diagram to ASCII/Unicode art
func (e *ASCIIExporter) Export(d diagram.View) (string, error) {
	if d == nil {
		return "", fmt.Errorf("diagram is nil")
	}
	t, w, h := canvas.Fit(d, e.CellWidth, e.CellHeight)
	c := canvas.New(w, h)
	canvas.Scene{
		View:       d,
		Transform:  t,
		CellWidth:  e.CellWidth,
		CellHeight: e.CellHeight,
		Glyphs:     e.Glyphs,
	}.Draw(c)
	if e.Color {
		return c.ColoredString(canvas.Palette()) + "\n", nil
	}
	return c.String() + "\n", nil
}

// GetFileExtension returns the recommended file extension
func (e *ASCIIExporter) GetFileExtension() string {
	return ".txt"
}

// GetFormatName returns the format name
func (e *ASCIIExporter) GetFormatName() string {
	return "ASCII/Unicode Art"
}
