package terminal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"sadt/diagram"
)

// ErrNoEditor is returned when neither $EDITOR nor $VISUAL is set and no
// fallback editor is installed.
var ErrNoEditor = errors.New("no editor found, set $EDITOR")

// FindEditor returns the external editor command line.
func FindEditor() (string, error) {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if cmd := strings.TrimSpace(os.Getenv(env)); cmd != "" {
			return cmd, nil
		}
	}
	for _, name := range []string{"vim", "nano", "vi"} {
		if _, err := exec.LookPath(name); err == nil {
			return name, nil
		}
	}
	return "", ErrNoEditor
}

// EditExternally writes d to a temporary JSON file, runs editorCmd on it with
// the given stdio and parses the result. It reports false when the file came
// back unchanged or emptied. A document that fails to parse is kept next to
// the temporary file so the edit is not lost. opts configure the returned
// diagram the way d was configured.
func EditExternally(d *diagram.Diagram, editorCmd string, stdin io.Reader, stdout, stderr io.Writer, opts ...diagram.Option) (*diagram.Diagram, bool, error) {
	args := strings.Fields(editorCmd)
	if len(args) == 0 {
		return nil, false, ErrNoEditor
	}

	tmp, err := os.CreateTemp("", "sadt-edit-*.json")
	if err != nil {
		return nil, false, fmt.Errorf("create temp file: %w", err)
	}
	name := tmp.Name()
	defer os.Remove(name)

	original, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		tmp.Close()
		return nil, false, fmt.Errorf("marshal diagram: %w", err)
	}
	original = append(original, '\n')
	if _, err := tmp.Write(original); err != nil {
		tmp.Close()
		return nil, false, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, false, fmt.Errorf("write temp file: %w", err)
	}

	cmd := exec.Command(args[0], append(args[1:], name)...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = stdin, stdout, stderr
	if err := cmd.Run(); err != nil {
		return nil, false, fmt.Errorf("editor failed: %w", err)
	}

	edited, err := os.ReadFile(name)
	if err != nil {
		return nil, false, fmt.Errorf("read edited file: %w", err)
	}
	if bytes.Equal(edited, original) || len(bytes.TrimSpace(edited)) == 0 {
		return nil, false, nil
	}

	out, err := diagram.Parse(edited, opts...)
	if err != nil {
		saved := ""
		keep := filepath.Join(os.TempDir(), "sadt-invalid.json")
		if werr := os.WriteFile(keep, edited, 0o644); werr == nil {
			saved = fmt.Sprintf(" (saved to %s)", keep)
		}
		var syntax *json.SyntaxError
		if errors.As(err, &syntax) {
			line, col := position(edited, syntax.Offset)
			return nil, false, fmt.Errorf("JSON syntax error at line %d, column %d%s: %w", line, col, saved, err)
		}
		return nil, false, fmt.Errorf("invalid diagram%s: %w", saved, err)
	}
	return out, true, nil
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	lines := bytes.Split(data[:offset], []byte("\n"))
	return len(lines), len(lines[len(lines)-1]) + 1
}
