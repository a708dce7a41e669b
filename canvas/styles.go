package canvas

import (
	"github.com/fatih/color"

	"sadt/diagram"
)

// Style tags a cell with its role so each front-end can colour it.
type Style uint8

const (
	StyleDefault Style = iota
	StyleNode
	StyleSelected
	StyleInput
	StyleOutput
	StyleControl
	StyleMechanism
	StyleLabel
	StylePoint
	StylePreview
	StyleStatus
)

// ArrowStyle returns the style of an arrow of type t.
func ArrowStyle(t diagram.ArrowType) Style {
	switch t {
	case diagram.Output:
		return StyleOutput
	case diagram.Control:
		return StyleControl
	case diagram.Mechanism:
		return StyleMechanism
	default:
		return StyleInput
	}
}

// BoxStyle holds the characters used to outline a rectangle.
type BoxStyle struct {
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	Horizontal  rune
	Vertical    rune
}

var (
	// RoundedBox is used for unselected activities.
	RoundedBox = BoxStyle{'╭', '╮', '╰', '╯', '─', '│'}
	// DoubleBox marks the selected activity.
	DoubleBox = BoxStyle{'╔', '╗', '╚', '╝', '═', '║'}
	// SimpleBox is plain ASCII.
	SimpleBox = BoxStyle{'+', '+', '+', '+', '-', '|'}
)

// Heads are arrowhead runes by the direction the head points.
type Heads struct {
	Right, Left, Up, Down rune
}

var (
	TriangleHeads = Heads{'▶', '◀', '▲', '▼'}
	ASCIIHeads    = Heads{'>', '<', '^', 'v'}
)

// entering returns the head pointing into a node through side s.
func (h Heads) entering(s diagram.Side) rune {
	switch s {
	case diagram.Left:
		return h.Right
	case diagram.Right:
		return h.Left
	case diagram.Top:
		return h.Down
	default:
		return h.Up
	}
}

// Glyphs is the character set a Scene draws with.
type Glyphs struct {
	Box      BoxStyle
	Selected BoxStyle
	Heads    Heads
	// Horizontal, Vertical, Falling and Rising draw arrow shafts; Falling
	// runs top-left to bottom-right.
	Horizontal, Vertical, Falling, Rising rune
	Point                                  rune
	Preview                                rune
	Ellipsis                               string
}

var (
	UnicodeGlyphs = Glyphs{
		Box: RoundedBox, Selected: DoubleBox, Heads: TriangleHeads,
		Horizontal: '─', Vertical: '│', Falling: '╲', Rising: '╱',
		Point: 'o', Preview: '·', Ellipsis: "…",
	}
	ASCIIGlyphs = Glyphs{
		Box: SimpleBox, Selected: BoxStyle{'#', '#', '#', '#', '=', '#'}, Heads: ASCIIHeads,
		Horizontal: '-', Vertical: '|', Falling: '\\', Rising: '/',
		Point: 'o', Preview: '.', Ellipsis: "~",
	}
)

// Palette colours styles with ANSI escapes, matching the arrow colours of
// the SVG export as closely as the 16-colour set allows.
func Palette() map[Style]*color.Color {
	return map[Style]*color.Color{
		StyleNode:      color.New(color.FgWhite),
		StyleSelected:  color.New(color.FgHiWhite, color.Bold),
		StyleInput:     color.New(color.FgGreen),
		StyleOutput:    color.New(color.FgCyan),
		StyleControl:   color.New(color.FgRed),
		StyleMechanism: color.New(color.FgYellow),
		StyleLabel:     color.New(color.Faint),
		StylePoint:     color.New(color.FgMagenta),
		StylePreview:   color.New(color.FgHiYellow),
	}
}
