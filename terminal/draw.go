package terminal

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"sadt/canvas"
	"sadt/editor"
)

var styles = map[canvas.Style]tcell.Style{
	canvas.StyleDefault:   tcell.StyleDefault,
	canvas.StyleNode:      tcell.StyleDefault.Foreground(tcell.ColorWhite),
	canvas.StyleSelected:  tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
	canvas.StyleInput:     tcell.StyleDefault.Foreground(tcell.ColorGreen),
	canvas.StyleOutput:    tcell.StyleDefault.Foreground(tcell.ColorDodgerBlue),
	canvas.StyleControl:   tcell.StyleDefault.Foreground(tcell.ColorRed),
	canvas.StyleMechanism: tcell.StyleDefault.Foreground(tcell.ColorOlive),
	canvas.StyleLabel:     tcell.StyleDefault.Foreground(tcell.ColorGray),
	canvas.StylePoint:     tcell.StyleDefault.Foreground(tcell.ColorFuchsia),
	canvas.StylePreview:   tcell.StyleDefault.Foreground(tcell.ColorYellow).Dim(true),
	canvas.StyleStatus:    tcell.StyleDefault.Reverse(true),
}

var errorStyle = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)

// Draw renders the diagram, the status line and, if open, the help box.
func (a *App) Draw() {
	a.screen.Clear()
	w, h := a.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}
	if c := canvas.New(w, h-1); c != nil {
		a.Scene().Draw(c)
		a.blit(c)
	}
	a.drawStatus(w, h-1)
	if a.showHelp {
		a.drawHelp(w, h)
	}
	a.screen.Show()
}

func (a *App) blit(c *canvas.Canvas) {
	w, h := c.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cell := c.Get(x, y)
			if cell.Rune == 0 {
				continue
			}
			a.screen.SetContent(x, y, cell.Rune, nil, styles[cell.Style])
		}
	}
}

func (a *App) drawStatus(w, y int) {
	status := styles[canvas.StyleStatus]
	for x := 0; x < w; x++ {
		a.screen.SetContent(x, y, ' ', nil, status)
	}
	a.screen.HideCursor()

	if text, ok := editor.RenameText(a.ed.Mode()); ok {
		prompt := "Rename: "
		if _, arrow := a.ed.Mode().(editor.RenamingArrow); arrow {
			prompt = "Label: "
		}
		end := a.put(0, y, prompt+text, status)
		if end < w {
			a.screen.ShowCursor(end, y)
		}
		return
	}

	name := "untitled"
	if a.opts.Path != "" {
		name = filepath.Base(a.opts.Path)
	}
	dirty := ""
	if a.ed.HasChanges() {
		dirty = " [+]"
	}
	x := a.put(0, y, fmt.Sprintf(" %s%s | %s ", name, dirty, a.ed.Mode()), status)
	if a.message != "" && x < w {
		style := status
		if a.isError {
			style = errorStyle
		}
		x = a.put(x, y, runewidth.Truncate(a.message, w-x, "…"), style)
	}

	cur, total := a.ed.History().Stats()
	stats := fmt.Sprintf(" Activities: %d | Arrows: %d | Zoom: %.0f%% | History: %d/%d ",
		a.ed.Diagram().NodeCount(), a.ed.Diagram().ArrowCount(),
		a.ed.Session().Transform.Zoom*100, cur, total)
	if sw := runewidth.StringWidth(stats); x+sw <= w {
		a.put(w-sw, y, stats, status)
	}
}

func (a *App) drawHelp(w, h int) {
	lines := strings.Split(strings.TrimRight(HelpText(), "\n"), "\n")
	bw := 0
	for _, l := range lines {
		bw = max(bw, runewidth.StringWidth(l))
	}
	x0 := max(0, (w-bw)/2)
	y0 := max(0, (h-len(lines))/2)
	for i, l := range lines {
		if y0+i >= h {
			break
		}
		a.put(x0, y0+i, l, styles[canvas.StyleDefault])
	}
}

// put writes s from (x, y) and returns the column after it.
func (a *App) put(x, y int, s string, style tcell.Style) int {
	w, _ := a.screen.Size()
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x+rw > w {
			break
		}
		a.screen.SetContent(x, y, r, nil, style)
		x += rw
	}
	return x
}
