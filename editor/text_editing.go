package editor

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// editText applies a key to a rename buffer. Only printable runes are
// inserted; the buffer is a single line.
func editText(text string, ev KeyPress) string {
	switch ev.Key {
	case KeyRune:
		if unicode.IsPrint(ev.Rune) {
			return text + string(ev.Rune)
		}
	case KeyBackspace:
		return deleteBackward(text)
	case KeyDeleteWord:
		return deleteWordBackward(text)
	}
	return text
}

func deleteBackward(text string) string {
	_, size := utf8.DecodeLastRuneInString(text)
	return text[:len(text)-size]
}

// deleteWordBackward deletes the previous word (Ctrl+W)
func deleteWordBackward(text string) string {
	// Skip any trailing spaces, then the word itself
	text = strings.TrimRightFunc(text, unicode.IsSpace)
	end := strings.LastIndexFunc(text, unicode.IsSpace)
	return text[:end+1]
}
