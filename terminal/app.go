// Package terminal runs the diagram editor in a terminal with tcell.
package terminal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"sadt/canvas"
	"sadt/diagram"
	"sadt/editor"
	"sadt/geometry"
	"sadt/layout"
	"sadt/store"
)

// Options configures an App.
type Options struct {
	// Path is the file Ctrl-S saves to. When Watch is set it is also
	// reloaded whenever it changes on disk.
	Path  string
	Watch bool
	// CellWidth and CellHeight give the size of one terminal cell in
	// screen units, which is what the editor's radii are measured in.
	CellWidth  float64
	CellHeight float64
	Glyphs     canvas.Glyphs
	Logger     *slog.Logger
	// DiagramOptions configure diagrams read back from disk or from an
	// external edit, so new nodes keep the configured size and algorithm.
	DiagramOptions []diagram.Option
}

// App connects a tcell screen to an editor.
type App struct {
	screen tcell.Screen
	ed     *editor.Editor
	opts   Options
	log    *slog.Logger

	// buttons is the last reported button state; presses and releases are
	// derived by comparing against it.
	buttons tcell.ButtonMask
	pointer geometry.Point
	tracked bool

	message    string
	isError    bool
	showHelp   bool
	showPoints bool
	quitArmed  bool
}

// reloadEvent carries a watcher result into the event loop.
type reloadEvent struct{ store.Reload }

type stopEvent struct{}

// New creates an App. The screen must already be initialised.
func New(screen tcell.Screen, ed *editor.Editor, opts Options) *App {
	if opts.CellWidth <= 0 {
		opts.CellWidth = 8
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = 16
	}
	if opts.Glyphs == (canvas.Glyphs{}) {
		opts.Glyphs = canvas.UnicodeGlyphs
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &App{screen: screen, ed: ed, opts: opts, log: log, showPoints: true}
}

// Run handles events until the user quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.screen.EnableMouse()
	a.screen.EnableFocus()
	a.screen.HideCursor()

	if a.opts.Watch && a.opts.Path != "" {
		reloads, err := store.WatchFile(ctx, a.opts.Path, a.log, a.opts.DiagramOptions...)
		if err != nil {
			a.log.Warn("file watching disabled", "path", a.opts.Path, "err", err)
		} else {
			go a.forward(reloads)
		}
	}
	go func() {
		<-ctx.Done()
		a.post(stopEvent{})
	}()

	a.setMessage(CompactHelp(), false)
	for {
		a.Draw()
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if a.HandleEvent(ev) {
			return nil
		}
	}
}

func (a *App) forward(reloads <-chan store.Reload) {
	for r := range reloads {
		a.post(reloadEvent{r})
	}
}

func (a *App) post(data any) {
	if err := a.screen.PostEvent(tcell.NewEventInterrupt(data)); err != nil {
		a.log.Debug("event dropped", "err", err)
	}
}

// HandleEvent processes one tcell event and reports whether the app should
// exit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		return a.key(ev)
	case *tcell.EventMouse:
		a.mouse(ev)
	case *tcell.EventFocus:
		if !ev.Focused {
			a.ed.Handle(editor.FocusLost{})
			a.buttons = tcell.ButtonNone
		}
	case *tcell.EventInterrupt:
		switch data := ev.Data().(type) {
		case stopEvent:
			return true
		case reloadEvent:
			a.reload(data.Reload)
		}
	}
	return false
}

// Scene returns what the next Draw renders.
func (a *App) Scene() canvas.Scene {
	s := canvas.Scene{
		View:       a.ed.View(),
		Transform:  a.ed.Session().Transform,
		CellWidth:  a.opts.CellWidth,
		CellHeight: a.opts.CellHeight,
		Glyphs:     a.opts.Glyphs,
		ShowPoints: a.showPoints,
	}
	mode := a.ed.Mode()
	if id, ok := editor.SelectedNode(mode); ok {
		s.SelectedNode = id
	}
	if id, ok := editor.SelectedArrow(mode); ok {
		s.SelectedArrow = id
	}
	if from, to, ok := a.ed.PreviewLine(); ok {
		s.Preview = &[2]geometry.Point{from, to}
	}
	return s
}

var buttonMap = []struct {
	mask   tcell.ButtonMask
	button editor.Button
}{
	{tcell.Button1, editor.ButtonPrimary},
	{tcell.Button2, editor.ButtonSecondary},
	{tcell.Button3, editor.ButtonMiddle},
}

func (a *App) mouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	pos := a.Scene().CellCenter(x, y)
	if a.tracked && pos != a.pointer {
		a.ed.Handle(editor.PointerMove{Pos: pos, Delta: pos.Sub(a.pointer)})
	}
	a.pointer, a.tracked = pos, true

	btns := ev.Buttons()
	for _, b := range buttonMap {
		was, is := a.buttons&b.mask != 0, btns&b.mask != 0
		switch {
		case is && !was:
			a.ed.Handle(editor.PointerPress{Pos: pos, Button: b.button})
			a.quitArmed = false
		case was && !is:
			a.ed.Handle(editor.PointerRelease{Pos: pos, Button: b.button})
		}
	}
	a.buttons = btns & (tcell.Button1 | tcell.Button2 | tcell.Button3)

	switch {
	case btns&tcell.WheelUp != 0:
		a.ed.Handle(editor.Scroll{Pos: pos, Delta: 1})
	case btns&tcell.WheelDown != 0:
		a.ed.Handle(editor.Scroll{Pos: pos, Delta: -1})
	}
}

func (a *App) key(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}
	if a.showHelp {
		a.showHelp = false
		return false
	}
	if _, renaming := editor.RenameText(a.ed.Mode()); renaming {
		if k, ok := textKey(ev); ok {
			a.ed.Handle(k)
		}
		return false
	}

	quitArmed := a.quitArmed
	a.quitArmed = false
	switch ev.Key() {
	case tcell.KeyCtrlS:
		a.save()
		return false
	case tcell.KeyCtrlZ:
		a.ed.Handle(editor.KeyPress{Key: editor.KeyUndo})
		return false
	case tcell.KeyCtrlY, tcell.KeyCtrlR:
		a.ed.Handle(editor.KeyPress{Key: editor.KeyRedo})
		return false
	case tcell.KeyEnter:
		a.ed.BeginRename()
		return false
	case tcell.KeyRune:
	default:
		if k, ok := textKey(ev); ok {
			a.ed.Handle(k)
		}
		return false
	}

	switch ev.Rune() {
	case 'q':
		if a.ed.HasChanges() && !quitArmed {
			a.quitArmed = true
			a.setMessage("unsaved changes, press q again to quit", true)
			return false
		}
		return true
	case 'n':
		a.ed.AddNodeAt(a.cursor())
	case 'r':
		a.ed.BeginRename()
	case 'a':
		a.ed.CycleAlgorithm()
	case 'u':
		a.ed.Handle(editor.KeyPress{Key: editor.KeyUndo})
	case '+', '=':
		a.ed.Handle(editor.Scroll{Pos: a.center(), Delta: 1})
	case '-':
		a.ed.Handle(editor.Scroll{Pos: a.center(), Delta: -1})
	case 'f':
		a.fit()
	case 'p':
		a.showPoints = !a.showPoints
	case 'e':
		a.external()
	case 'L':
		a.arrange()
	case '?':
		a.showHelp = true
	}
	return false
}

// textKey maps keys with a meaning to the editor's text editing and
// selection handling.
func textKey(ev *tcell.EventKey) (editor.KeyPress, bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		return editor.KeyPress{Key: editor.KeyRune, Rune: ev.Rune()}, true
	case tcell.KeyEnter:
		return editor.KeyPress{Key: editor.KeyEnter}, true
	case tcell.KeyEscape:
		return editor.KeyPress{Key: editor.KeyEscape}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return editor.KeyPress{Key: editor.KeyBackspace}, true
	case tcell.KeyDelete:
		return editor.KeyPress{Key: editor.KeyDelete}, true
	case tcell.KeyCtrlW:
		return editor.KeyPress{Key: editor.KeyDeleteWord}, true
	}
	return editor.KeyPress{}, false
}

// cursor is the last pointer position, or the middle of the canvas before
// the mouse has moved.
func (a *App) cursor() geometry.Point {
	if a.tracked {
		return a.pointer
	}
	return a.center()
}

func (a *App) center() geometry.Point {
	w, h := a.screen.Size()
	return a.Scene().CellCenter(w/2, (h-1)/2)
}

// fit zooms and pans so every node is visible with a two-cell margin.
func (a *App) fit() {
	b, ok := a.ed.Diagram().Bounds()
	if !ok {
		a.ed.SetTransform(geometry.Identity())
		return
	}
	w, h := a.screen.Size()
	cw, ch := a.opts.CellWidth, a.opts.CellHeight
	availW := float64(w-4) * cw
	availH := float64(h-5) * ch
	if availW <= 0 || availH <= 0 {
		return
	}
	zoom := math.Min(availW/math.Max(b.Width(), 1), availH/math.Max(b.Height(), 1))
	zoom = a.ed.Settings().Zoom.Clamp(zoom)
	pan := geometry.V(b.Min.X-2*cw/zoom, b.Min.Y-2*ch/zoom)
	a.ed.SetTransform(geometry.NewTransform(pan, zoom))
}

// arrange lays every activity out again as an undoable edit.
func (a *App) arrange() {
	d := a.ed.Diagram().Clone()
	if d.NodeCount() == 0 {
		return
	}
	layout.NewLayered().Layout(d)
	a.ed.Replace(d)
	a.fit()
	a.setMessage("arranged", false)
}

func (a *App) save() {
	if a.opts.Path == "" {
		a.setMessage("no file to save to", true)
		return
	}
	if err := store.SaveFile(a.opts.Path, a.ed.Diagram()); err != nil {
		a.log.Error("save failed", "path", a.opts.Path, "err", err)
		a.setMessage(err.Error(), true)
		return
	}
	a.ed.MarkSaved()
	a.log.Info("saved", "path", a.opts.Path)
	a.setMessage("saved "+filepath.Base(a.opts.Path), false)
}

func (a *App) reload(r store.Reload) {
	if r.Err != nil {
		a.log.Warn("reload failed", "path", a.opts.Path, "err", r.Err)
		a.setMessage("reload failed: "+r.Err.Error(), true)
		return
	}
	if sameDocument(r.Diagram, a.ed.Diagram()) {
		return
	}
	if a.ed.HasChanges() {
		a.setMessage("file changed on disk, keeping unsaved edits", true)
		return
	}
	a.ed.SetDiagram(r.Diagram)
	a.log.Info("reloaded", "path", a.opts.Path)
	a.setMessage("reloaded "+filepath.Base(a.opts.Path), false)
}

// sameDocument compares the serialized forms, which is what a save of
// either diagram would write.
func sameDocument(x, y *diagram.Diagram) bool {
	bx, err1 := json.Marshal(x)
	by, err2 := json.Marshal(y)
	return err1 == nil && err2 == nil && bytes.Equal(bx, by)
}

func (a *App) external() {
	if editor.IsExclusive(a.ed.Mode()) {
		return
	}
	cmd, err := FindEditor()
	if err != nil {
		a.setMessage(err.Error(), true)
		return
	}
	if err := a.screen.Suspend(); err != nil {
		a.setMessage(err.Error(), true)
		return
	}
	d, changed, err := EditExternally(a.ed.Diagram(), cmd, os.Stdin, os.Stdout, os.Stderr, a.opts.DiagramOptions...)
	if rerr := a.screen.Resume(); rerr != nil {
		a.log.Error("resume screen", "err", rerr)
	}
	a.buttons = tcell.ButtonNone
	switch {
	case err != nil:
		a.log.Warn("external edit failed", "err", err)
		a.setMessage(err.Error(), true)
	case changed:
		a.ed.Replace(d)
		a.setMessage(fmt.Sprintf("applied external edit (%d activities, %d arrows)", d.NodeCount(), d.ArrowCount()), false)
	}
}

func (a *App) setMessage(msg string, isError bool) {
	a.message, a.isError = msg, isError
}
