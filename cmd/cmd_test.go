package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sadt/store"
)

// run executes the command line in a fresh command tree with an empty
// configuration directory.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func exampleFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "order.json")
	_, err := run(t, "new", "--example", path)
	require.NoError(t, err)
	return path
}

func TestNewAndValidate(t *testing.T) {
	path := exampleFile(t)

	out, err := run(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ACTIVITIES")
	assert.Regexp(t, `order\.json\s+5\s+4`, out)

	_, err = run(t, "new", path)
	assert.ErrorContains(t, err, "already exists")
	_, err = run(t, "new", "--force", path)
	assert.NoError(t, err)
	d, err := store.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0, d.NodeCount())
}

func TestValidateReportsBadFiles(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"nodes": [`), 0o644))

	out, err := run(t, "validate", exampleFile(t), bad)
	assert.EqualError(t, err, "1 invalid diagram")
	assert.Contains(t, out, "bad.json")
}

func TestExport(t *testing.T) {
	path := exampleFile(t)

	out, err := run(t, "export", "-f", "mermaid", path)
	require.NoError(t, err)
	assert.Contains(t, out, "graph LR")
	assert.Contains(t, out, `"order"`)

	out, err = run(t, "export", "--ascii", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Process Order")
	assert.NotContains(t, out, "╭")

	svg := filepath.Join(t.TempDir(), "order.svg")
	_, err = run(t, "export", "-f", "svg", "-o", svg, path)
	require.NoError(t, err)
	data, err := os.ReadFile(svg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")

	_, err = run(t, "export", "-f", "pdf", path)
	assert.ErrorContains(t, err, "available: json, svg")
}

func TestGenerate(t *testing.T) {
	path := exampleFile(t)

	out, err := run(t, "generate", "code", "--package", "order", path)
	require.NoError(t, err)
	assert.Contains(t, out, "package order")
	assert.Contains(t, out, "func ProcessOrder(")

	_, err = run(t, "generate", "code", "--package", "not-valid", path)
	assert.Error(t, err)

	out, err = run(t, "generate", "doc", path)
	require.NoError(t, err)
	assert.Contains(t, out, "# order")

	out, err = run(t, "generate", "doc", "--html", "--title", "Orders & Co", path)
	require.NoError(t, err)
	assert.Contains(t, out, "<title>Orders &amp; Co</title>")
	assert.Contains(t, out, "<table>")
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "list", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "no diagrams")

	_, err = run(t, "new", "--example", filepath.Join(dir, "order.json"))
	require.NoError(t, err)
	out, err = run(t, "ls", "--dir", dir)
	require.NoError(t, err)
	assert.Regexp(t, `order\s+5\s+4`, out)
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sadt.toml")

	out, err := run(t, "--config", path, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)

	_, err = run(t, "--config", path, "config", "init")
	require.NoError(t, err)
	_, err = run(t, "--config", path, "config", "init")
	assert.ErrorContains(t, err, "already exists")

	out, err = run(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "[editor]")
	assert.Contains(t, out, "cell_width = 8.0")
}

func TestBadLogLevelIsRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.json")
	_, err := run(t, "--log-level", "loud", "serve", "--dir", path)
	assert.Error(t, err)
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "flow.mmd")
	require.NoError(t, os.WriteFile(src, []byte("graph LR\n  A[Take] ==>|order| B[Pack]\n  C[Rules] -.-> B\n"), 0o644))

	dst := filepath.Join(dir, "flow.json")
	out, err := run(t, "import", src, "-o", dst)
	require.NoError(t, err)
	assert.Contains(t, out, "3 nodes and 2 arrows")
	d, err := store.LoadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, 3, d.NodeCount())

	_, err = run(t, "import", src, "-o", dst)
	assert.ErrorContains(t, err, "already exists")

	out, err = run(t, "import", src)
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Pack"`)
}

func TestImportFromMarkdown(t *testing.T) {
	doc := filepath.Join(t.TempDir(), "README.md")
	require.NoError(t, os.WriteFile(doc, []byte("# Flow\n\n```mermaid\ngraph LR\n  A --> B\n```\n\n```dot\ndigraph g {\n  x -> y;\n  y -> z;\n}\n```\n"), 0o644))

	_, err := run(t, "import", doc)
	assert.ErrorContains(t, err, "pick one with --block")
	assert.ErrorContains(t, err, "2. dot (line 8)")

	out, err := run(t, "import", doc, "--block", "2")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "z"`)

	_, err = run(t, "import", doc, "--block", "3")
	assert.ErrorContains(t, err, "no diagram block 3")
}

func TestExportIntoMarkdown(t *testing.T) {
	path := exampleFile(t)
	doc := filepath.Join(t.TempDir(), "README.md")
	require.NoError(t, os.WriteFile(doc, []byte("Intro\n\n```d2\nold -> stuff\n```\n\nOutro\n"), 0o644))

	_, err := run(t, "export", path, "--into", doc)
	require.NoError(t, err)
	data, err := os.ReadFile(doc)
	require.NoError(t, err)
	text := string(data)
	assert.NotContains(t, text, "old -> stuff")
	assert.Contains(t, text, "```d2\ndirection: right\n")
	assert.Contains(t, text, "```\n\nOutro\n")

	// The block now round-trips through import.
	out, err := run(t, "import", doc)
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Process Order"`)
}
