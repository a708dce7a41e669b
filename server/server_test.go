package server_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sadt/diagram"
	"sadt/geometry"
	"sadt/server"
	"sadt/store"
)

type fixture struct {
	srv   *server.Server
	store *store.FileStore
	node  diagram.NodeID
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	fs, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	d := diagram.New()
	a := d.AddNode("Collect Orders", geometry.Pt(0, 0))
	b := d.AddNode("Ship", geometry.Pt(200, 0))
	_, ok := d.AddArrow(
		diagram.ConnectionPoint{Node: a, Side: diagram.Right},
		diagram.ConnectionPoint{Node: b, Side: diagram.Left},
		diagram.Input, "orders")
	require.True(t, ok)
	require.NoError(t, fs.Save(context.Background(), "shop", d))

	srv, err := server.New(fs, nil)
	require.NoError(t, err)
	return fixture{srv: srv, store: fs, node: b}
}

func (f fixture) do(t *testing.T, method, target, body string) (int, string, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	resp, err := f.srv.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, resp.Header.Get("Content-Type"), string(out)
}

func TestListAndGet(t *testing.T) {
	f := newFixture(t)

	status, _, body := f.do(t, http.MethodGet, "/diagrams", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"diagrams": ["shop"]}`, body)

	status, _, body = f.do(t, http.MethodGet, "/diagrams/shop", "")
	require.Equal(t, http.StatusOK, status)
	d, err := diagram.Parse([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, 2, d.NodeCount())
	assert.Equal(t, 1, d.ArrowCount())
}

func TestStatusCodes(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{"missing diagram", http.MethodGet, "/diagrams/nope", "", http.StatusNotFound},
		{"bad name", http.MethodPut, "/diagrams/.hidden", `{"nodes": [], "arrows": []}`, http.StatusBadRequest},
		{"malformed body", http.MethodPut, "/diagrams/x", `{"nodes": [`, http.StatusUnprocessableEntity},
		{"unknown format", http.MethodGet, "/diagrams/shop/export/pdf", "", http.StatusBadRequest},
		{"bad package", http.MethodGet, "/diagrams/shop/code?package=not-ident", "", http.StatusBadRequest},
		{"bad node id", http.MethodGet, "/diagrams/shop/nodes/xyz/signature", "", http.StatusBadRequest},
		{"unknown node", http.MethodGet, "/diagrams/shop/nodes/" + diagram.NewNodeID().String() + "/signature", "", http.StatusNotFound},
		{"delete missing", http.MethodDelete, "/diagrams/nope", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _, body := f.do(t, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.want, status)
			var e map[string]string
			require.NoError(t, json.Unmarshal([]byte(body), &e))
			assert.NotEmpty(t, e["error"])
		})
	}
}

func TestPutAndDelete(t *testing.T) {
	f := newFixture(t)
	_, _, doc := f.do(t, http.MethodGet, "/diagrams/shop", "")

	status, _, body := f.do(t, http.MethodPut, "/diagrams/copy", doc)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"name": "copy", "nodes": 2, "arrows": 1}`, body)

	names, err := f.store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"copy", "shop"}, names)

	status, _, _ = f.do(t, http.MethodDelete, "/diagrams/copy", "")
	assert.Equal(t, http.StatusNoContent, status)
	_, err = f.store.Load(context.Background(), "copy")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestExport(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		format   string
		ctype    string
		contains string
	}{
		{"svg", "image/svg+xml", "<svg"},
		{"json", "application/json", `"nodes"`},
		{"mermaid", "text/plain", "graph LR"},
		{"DOT", "text/plain", "digraph sadt"},
		{"ascii", "text/plain", "orders"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			status, ctype, body := f.do(t, http.MethodGet, "/diagrams/shop/export/"+tt.format, "")
			require.Equal(t, http.StatusOK, status)
			assert.Contains(t, ctype, tt.ctype)
			assert.Contains(t, body, tt.contains)
		})
	}
}

func TestCodeAndDocs(t *testing.T) {
	f := newFixture(t)

	status, _, body := f.do(t, http.MethodGet, "/diagrams/shop/code?package=shop", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "package shop")
	assert.Contains(t, body, "func Ship(")

	status, ctype, body := f.do(t, http.MethodGet, "/diagrams/shop/doc", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, ctype, "text/markdown")
	assert.Contains(t, body, "# shop")

	status, ctype, body = f.do(t, http.MethodGet, "/diagrams/shop/doc.html", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, ctype, "text/html")
	assert.Contains(t, body, "<title>shop</title>")
	assert.Contains(t, body, "<table>")
}

func TestSignature(t *testing.T) {
	f := newFixture(t)
	status, _, body := f.do(t, http.MethodGet, "/diagrams/shop/nodes/"+f.node.String()+"/signature", "")
	require.Equal(t, http.StatusOK, status)

	var sig struct {
		Name   string `json:"name"`
		Func   string `json:"func"`
		Inputs []struct {
			Name  string `json:"name"`
			Label string `json:"label"`
		} `json:"inputs"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &sig))
	assert.Equal(t, "Ship", sig.Name)
	assert.Equal(t, "Ship", sig.Func)
	require.Len(t, sig.Inputs, 1)
	assert.Equal(t, "orders", sig.Inputs[0].Label)
}
