package editor

// Key identifies a keyboard key the editor reacts to. Printable characters
// arrive as KeyRune with the character alongside.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyEnter
	KeyEscape
	KeyDelete
	KeyBackspace
	KeyDeleteWord
	KeyUndo
	KeyRedo
)

func (k Key) String() string {
	switch k {
	case KeyRune:
		return "Rune"
	case KeyEnter:
		return "Enter"
	case KeyEscape:
		return "Escape"
	case KeyDelete:
		return "Delete"
	case KeyBackspace:
		return "Backspace"
	case KeyDeleteWord:
		return "DeleteWord"
	case KeyUndo:
		return "Undo"
	case KeyRedo:
		return "Redo"
	default:
		return "None"
	}
}

// Button is a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)
