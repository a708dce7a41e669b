package codegen_test

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sadt/codegen"
	"sadt/diagram"
	"sadt/geometry"
)

func TestIdentifier(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Traiter Données", "TraiterDonnees"},
		{"générer rapport", "GenererRapport"},
		{"ship-order", "ShipOrder"},
		{"   ", "Activity"},
		{"", "Activity"},
		{"42", "A42"},
		{"日本 計画", "A日本計画"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := codegen.Identifier(tt.in)
			assert.Equal(t, tt.want, got)
			assert.True(t, token.IsExported(got), got)
		})
	}
}

func TestParamName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Données brutes", "donneesBrutes"},
		{"RAPPORT final", "rapportFinal"},
		{"", "data"},
		{"!!", "data"},
		{"type", "type_"},
		{"2 items", "v2Items"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, codegen.ParamName(tt.in))
		})
	}
}

// process builds: raw --Input--> Process --Output--> Report, plus a Control
// and a Mechanism into Process, and an Output arrow that only enters it.
func process(t *testing.T) (*diagram.Diagram, map[string]diagram.NodeID) {
	t.Helper()
	d := diagram.New()
	ids := map[string]diagram.NodeID{
		"source":  d.AddNode("Collect", geometry.Pt(0, 0)),
		"process": d.AddNode("Traiter Données", geometry.Pt(200, 0)),
		"report":  d.AddNode("Générer Rapport", geometry.Pt(400, 0)),
		"rules":   d.AddNode("Rules", geometry.Pt(200, -200)),
		"staff":   d.AddNode("Staff", geometry.Pt(200, 200)),
	}
	cp := func(n string, s diagram.Side) diagram.ConnectionPoint {
		return diagram.ConnectionPoint{Node: ids[n], Side: s}
	}
	add := func(from, to diagram.ConnectionPoint, typ diagram.ArrowType, label string) {
		_, ok := d.AddArrow(from, to, typ, label)
		require.True(t, ok)
	}
	add(cp("source", diagram.Right), cp("process", diagram.Left), diagram.Input, "données brutes")
	add(cp("rules", diagram.Bottom), cp("process", diagram.Top), diagram.Control, "policy")
	add(cp("staff", diagram.Top), cp("process", diagram.Bottom), diagram.Mechanism, "")
	add(cp("process", diagram.Right), cp("report", diagram.Left), diagram.Output, "données traitées")
	add(cp("source", diagram.Bottom), cp("process", diagram.Left), diagram.Output, "ignored")
	add(cp("report", diagram.Left), cp("process", diagram.Right), diagram.Input, "")
	return d, ids
}

func TestClassify(t *testing.T) {
	d, ids := process(t)

	sig, ok := codegen.Classify(d, ids["process"])
	require.True(t, ok)
	assert.Equal(t, "TraiterDonnees", sig.Func)
	assert.Equal(t, "add", sig.Algorithm)

	names := func(ps []codegen.Param) []string {
		var out []string
		for _, p := range ps {
			out = append(out, p.Name+":"+p.Type)
		}
		return out
	}
	assert.Equal(t, []string{"donneesBrutes:InputData", "data2:InputData"}, names(sig.Inputs))
	assert.Equal(t, []string{"policy:ControlParam"}, names(sig.Controls))
	assert.Equal(t, []string{"data:MechanismResource"}, names(sig.Mechanisms))
	assert.Equal(t, []string{"donneesTraitees:OutputData"}, names(sig.Outputs))
	assert.Len(t, sig.Params(), 4)

	// Output arrows only count at their source; Input arrows only at their target.
	report, _ := codegen.Classify(d, ids["report"])
	assert.Empty(t, report.Inputs)
	assert.Empty(t, report.Outputs)
	collect, _ := codegen.Classify(d, ids["source"])
	assert.Equal(t, []string{"ignored:OutputData"}, names(collect.Outputs))

	_, ok = codegen.Classify(d, diagram.NewNodeID())
	assert.False(t, ok)
}

func TestClassifyAllUniqueFuncs(t *testing.T) {
	d := diagram.New()
	d.AddNode("Ship", geometry.Pt(0, 0))
	d.AddNode("ship", geometry.Pt(0, 0))
	d.AddNode("Input Data", geometry.Pt(0, 0))

	sigs := codegen.ClassifyAll(d)
	require.Len(t, sigs, 3)
	assert.Equal(t, "Ship", sigs[0].Func)
	assert.Equal(t, "Ship2", sigs[1].Func)
	assert.Equal(t, "InputData2", sigs[2].Func)
}

func TestGoModule(t *testing.T) {
	d, _ := process(t)
	g, err := codegen.New()
	require.NoError(t, err)

	src, err := g.GoModule(d, "process")
	require.NoError(t, err)

	_, err = parser.ParseFile(token.NewFileSet(), "process.go", src, parser.ParseComments)
	require.NoError(t, err, src)

	assert.Contains(t, src, "package process")
	assert.Contains(t, src, "func TraiterDonnees(donneesBrutes InputData, data2 InputData, policy ControlParam, data MechanismResource) (donneesTraitees OutputData) {")
	assert.Contains(t, src, "func Collect() (ignored OutputData) {")
	assert.Contains(t, src, "func Rules() {")
	assert.Contains(t, src, `// Implement "Traiter Données" here.`)
	assert.Contains(t, src, "Algorithm: add")
	assert.Equal(t, 5, strings.Count(src, "\nfunc "))

	_, err = g.GoModule(d, "not a package")
	assert.Error(t, err)
}

func TestGoModuleEmptyDiagram(t *testing.T) {
	g, err := codegen.New()
	require.NoError(t, err)
	src, err := g.GoModule(diagram.New(), "")
	require.NoError(t, err)
	assert.Contains(t, src, "package process")
	assert.NotContains(t, src, "\nfunc ")
}

func TestMarkdown(t *testing.T) {
	d, ids := process(t)
	g, err := codegen.New()
	require.NoError(t, err)

	md, err := g.Markdown(d)
	require.NoError(t, err)

	assert.Contains(t, md, "# SADT diagram")
	assert.Contains(t, md, "5 activities, 6 arrows.")
	assert.Contains(t, md, "| "+ids["process"].String()+" | Traiter Données | 200 | 0 | 120 | 60 | add |")
	assert.Contains(t, md, "### Traiter Données")
	assert.Contains(t, md, "- Inputs: données brutes, (unlabelled)")
	assert.Contains(t, md, "- Outputs: données traitées")
	assert.Contains(t, md, "- Controls: none")

	// Table rows follow insertion order.
	assert.Less(t, strings.Index(md, "| Collect |"), strings.Index(md, "| Traiter Données |"))
}

func TestMarkdownEscapesPipes(t *testing.T) {
	d := diagram.New()
	d.AddNode("a | b", geometry.Pt(0, 0))
	g, err := codegen.New()
	require.NoError(t, err)

	md, err := g.MarkdownTitled(d, "Pipes")
	require.NoError(t, err)
	assert.Contains(t, md, `a \| b`)
	assert.True(t, strings.HasPrefix(md, "# Pipes"))
}

func TestRenderHTML(t *testing.T) {
	d, _ := process(t)
	g, err := codegen.New()
	require.NoError(t, err)
	md, err := g.Markdown(d)
	require.NoError(t, err)

	html, err := codegen.RenderHTML(md)
	require.NoError(t, err)
	assert.Contains(t, html, "<h1>SADT diagram</h1>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<td>Traiter Données</td>")
	assert.Contains(t, html, "<code>TraiterDonnees</code>")
}
