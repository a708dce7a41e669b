package export

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"sadt/diagram"
	"sadt/geometry"
	"sadt/hittest"
)

// SVGExporter draws the diagram as it appears in the editor: arrows first,
// then activity boxes on top, with a coloured arrowhead per arrow type.
type SVGExporter struct {
	// Margin around the bounding box of all nodes, in world units.
	Margin int
}

// NewSVGExporter creates a new SVG exporter
func NewSVGExporter() *SVGExporter {
	return &SVGExporter{Margin: 40}
}

const (
	svgFont      = "font-family:sans-serif"
	svgNodeStyle = "fill:#fafafa;stroke:#222;stroke-width:1.5"
)

// Export writes a standalone SVG document. An empty diagram yields an empty
// image of margin size.
func (e *SVGExporter) Export(d diagram.View) (string, error) {
	if d == nil {
		return "", fmt.Errorf("diagram is nil")
	}
	nodes, arrows := d.Nodes(), d.Arrows()

	bounds := geometry.Rect{}
	for i, n := range nodes {
		if i == 0 {
			bounds = n.Rect
			continue
		}
		bounds = bounds.Union(n.Rect)
	}
	m := float64(e.Margin)
	origin := geometry.V(m-bounds.Min.X, m-bounds.Min.Y)
	at := func(p geometry.Point) (int, int) {
		q := p.Add(origin)
		return int(math.Round(q.X)), int(math.Round(q.Y))
	}
	width := int(math.Ceil(bounds.Width())) + 2*e.Margin
	height := int(math.Ceil(bounds.Height())) + 2*e.Margin

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(width, height)

	canvas.Def()
	for _, t := range diagram.ArrowTypes {
		canvas.Marker(markerID(t), 10, 5, 10, 10, `orient="auto"`, `markerUnits="userSpaceOnUse"`)
		canvas.Polygon([]int{0, 10, 0}, []int{0, 5, 10}, "fill:"+ArrowColor(t))
		canvas.MarkerEnd()
	}
	canvas.DefEnd()
	canvas.Rect(0, 0, width, height, "fill:white")

	for _, a := range arrows {
		from, to, ok := hittest.Endpoints(d, a)
		if !ok {
			continue
		}
		x1, y1 := at(from)
		x2, y2 := at(to)
		style := fmt.Sprintf("stroke:%s;stroke-width:2", ArrowColor(a.Type))
		if a.Type == diagram.Control {
			style += ";stroke-dasharray:6,3"
		}
		canvas.Line(x1, y1, x2, y2, style, fmt.Sprintf(`marker-end="url(#%s)"`, markerID(a.Type)))
		if a.HasLabel() {
			mx, my := at(from.Lerp(to, 0.5))
			canvas.Text(mx, my-6, a.Label, "text-anchor:middle;font-size:12px;fill:#333;"+svgFont)
		}
	}

	for _, n := range nodes {
		x, y := at(n.Rect.Min)
		canvas.Rect(x, y, int(math.Round(n.Rect.Width())), int(math.Round(n.Rect.Height())), svgNodeStyle)
		cx, cy := at(n.Rect.Center())
		canvas.Text(cx, cy+5, n.Name, "text-anchor:middle;font-size:14px;"+svgFont)
		if n.Algorithm != "" {
			bx, by := at(geometry.Pt(n.Rect.Right(), n.Rect.Bottom()))
			canvas.Text(bx-4, by-4, n.Algorithm, "text-anchor:end;font-size:9px;fill:#777;"+svgFont)
		}
	}

	canvas.End()
	return buf.String(), nil
}

func markerID(t diagram.ArrowType) string {
	return "head-" + strings.ToLower(t.String())
}

// GetFileExtension returns the recommended file extension
func (e *SVGExporter) GetFileExtension() string {
	return ".svg"
}

// GetFormatName returns the format name
func (e *SVGExporter) GetFormatName() string {
	return "SVG"
}
