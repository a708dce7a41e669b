package canvas

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		valid         bool
	}{
		{"Small", 10, 5, true},
		{"Wide", 100, 1, true},
		{"ZeroWidth", 0, 5, false},
		{"Negative", 3, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.width, tt.height)
			if !tt.valid {
				if c != nil {
					t.Fatal("expected nil canvas")
				}
				return
			}
			w, h := c.Size()
			if w != tt.width || h != tt.height {
				t.Errorf("Size() = (%d, %d), want (%d, %d)", w, h, tt.width, tt.height)
			}
			if got := c.Get(0, 0).Rune; got != ' ' {
				t.Errorf("new cell = %q, want space", got)
			}
		})
	}
}

func TestSetClips(t *testing.T) {
	c := New(3, 3)
	if c.Set(3, 0, 'x', StyleDefault) || c.Set(-1, 1, 'x', StyleDefault) {
		t.Error("out of bounds Set reported success")
	}
	if !c.Set(2, 2, 'x', StyleNode) {
		t.Fatal("in bounds Set failed")
	}
	if got := c.Get(2, 2); got.Rune != 'x' || got.Style != StyleNode {
		t.Errorf("Get = %+v", got)
	}
	if got := c.Get(9, 9).Rune; got != ' ' {
		t.Errorf("out of bounds Get = %q", got)
	}
}

func TestDrawLine(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 int
		want           string
	}{
		{"horizontal", 0, 0, 3, 0, "****"},
		{"reversed", 3, 0, 0, 0, "****"},
		{"vertical", 1, 0, 1, 2, " *\n *\n *"},
		{"diagonal", 0, 0, 2, 2, "*\n *\n  *"},
		{"clipped", -2, 1, 1, 1, "\n**"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(4, 3)
			c.DrawLine(tt.x1, tt.y1, tt.x2, tt.y2, '*', StyleDefault)
			if got := strings.TrimRight(c.String(), "\n"); got != tt.want {
				t.Errorf("got\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestDrawBox(t *testing.T) {
	c := New(7, 5)
	c.DrawBox(1, 1, 5, 3, RoundedBox, StyleNode)
	want := "\n ╭───╮\n │   │\n ╰───╯\n"
	if got := c.String(); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}

	c.Clear()
	c.DrawBox(0, 0, 1, 4, RoundedBox, StyleNode)
	if strings.TrimSpace(c.String()) != "" {
		t.Error("a box narrower than two cells must not be drawn")
	}
}

func TestDrawText(t *testing.T) {
	c := New(6, 1)
	n := c.DrawText(0, 0, "a世b", StyleLabel)
	if n != 4 {
		t.Errorf("advanced %d cells, want 4", n)
	}
	if got := c.String(); got != "a世b" {
		t.Errorf("String() = %q", got)
	}

	c.Clear()
	c.DrawText(4, 0, "x世", StyleLabel)
	if got := c.String(); got != "    x" {
		t.Errorf("wide rune straddling the edge: %q", got)
	}
}

func TestColoredString(t *testing.T) {
	red := color.New(color.FgRed)
	red.EnableColor()

	c := New(5, 1)
	c.DrawText(0, 0, "ab", StyleControl)
	c.DrawText(2, 0, "cd", StyleDefault)
	got := c.ColoredString(map[Style]*color.Color{StyleControl: red})
	want := red.Sprint("ab") + "cd"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
