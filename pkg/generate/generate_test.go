package generate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svgmerge/svgmerge/pkg/substitute"
	"github.com/svgmerge/svgmerge/pkg/tabdata"
)

const testTemplate = `<svg xmlns="http://www.w3.org/2000/svg" xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape">
<text>Hello %VAR_name%!</text>
<g inkscape:label="Greeting %IF_show%" style="display:none"><text>welcome</text></g>
</svg>`

func TestMaterialize(t *testing.T) {
	desc := tabdata.Descriptor{"name": "Alice", "show": "yes"}

	out, err := Materialize(testTemplate, desc, nil, true)
	require.NoError(t, err)

	assert.Contains(t, out, "Hello Alice!")
	assert.NotContains(t, out, "%VAR_name%")
	// IF true: style stripped, content intact.
	assert.NotContains(t, out, "display:none")
	assert.Contains(t, out, "welcome")
}

func TestMaterializeHiddenLayer(t *testing.T) {
	desc := tabdata.Descriptor{"name": "Bob", "show": "no"}

	out, err := Materialize(testTemplate, desc, nil, true)
	require.NoError(t, err)

	assert.Contains(t, out, "Hello Bob!")
	assert.NotContains(t, out, "welcome")
}

func TestMaterializeEscapesValues(t *testing.T) {
	desc := tabdata.Descriptor{"name": `<Ms. A & Co>`, "show": "yes"}

	out, err := Materialize(testTemplate, desc, nil, true)
	require.NoError(t, err)
	// The document survives metacharacters in data values and they
	// stay escaped in the serialized output.
	assert.Contains(t, out, "&lt;Ms. A &amp; Co&gt;")
	assert.NotContains(t, out, "<Ms. A")
}

func TestMaterializeExtraVars(t *testing.T) {
	desc := tabdata.Descriptor{"name": "Alice", "show": "yes"}
	rules, err := substitute.ParseRules("Hello=>name")
	require.NoError(t, err)

	out, err := Materialize(testTemplate, desc, rules, true)
	require.NoError(t, err)
	assert.Contains(t, out, "Alice Alice!")
}

func TestMaterializeUnknownRuleColumn(t *testing.T) {
	desc := tabdata.Descriptor{"name": "Alice", "show": "yes"}
	rules := []substitute.Rule{{Text: "Hello", Column: "nope"}}

	_, err := Materialize(testTemplate, desc, rules, true)
	require.Error(t, err)
	var colErr *substitute.UnknownColumnError
	assert.ErrorAs(t, err, &colErr)
}

func TestResolveOutput(t *testing.T) {
	desc := tabdata.Descriptor{"name": "Alice"}
	assert.Equal(t, "Alice.svg", ResolveOutput("%VAR_name%.svg", desc))
	assert.Equal(t, "out/Alice-1.pdf", ResolveOutput("out/%VAR_name%-1.pdf", desc))
}

func TestJpgToPng(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"card.jpg", "card.png"},
		{"card.JPG", "card.png"},
		{"card.jpeg", "card.png"},
		{"card.png", "card.png"},
		// "jpg" inside the name, e.g. from a data value, must
		// survive.
		{"jpgexpert.jpg", "jpgexpert.png"},
		{"jpg-collection.pdf", "jpg-collection.pdf"},
	}
	for _, tt := range cases {
		assert.Equal(t, tt.want, jpgToPng(tt.in), "jpgToPng(%q)", tt.in)
	}
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a\n", "b\n"}, splitLines("a\nb\n"))
	// The last line survives without a trailing newline.
	assert.Equal(t, []string{"a\n", "b"}, splitLines("a\nb"))
	assert.Nil(t, splitLines(""))
}

func TestNewRejectsBadRules(t *testing.T) {
	_, err := New(Options{ExtraVars: "broken", Format: "svg"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, substitute.ErrMalformedRule)
}

func TestNewRequiresRenderer(t *testing.T) {
	_, err := New(Options{Format: "pdf"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a renderer")
}

func TestRunNativeFormat(t *testing.T) {
	dir := t.TempDir()

	dataFile := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(dataFile, []byte("name,show\nAlice,yes\nBob,no\n"), 0644))
	templateFile := filepath.Join(dir, "card.svg")
	require.NoError(t, os.WriteFile(templateFile, []byte(testTemplate), 0644))

	gen, err := New(Options{
		DataFile:      dataFile,
		Template:      templateFile,
		VarsByName:    true,
		Format:        "svg",
		OutputPattern: filepath.Join(dir, "%VAR_name%.svg"),
	}, nil)
	require.NoError(t, err)

	require.NoError(t, gen.Run(context.Background()))

	alice, err := os.ReadFile(filepath.Join(dir, "Alice.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(alice), "Hello Alice!")
	assert.Contains(t, string(alice), "welcome")

	bob, err := os.ReadFile(filepath.Join(dir, "Bob.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(bob), "Hello Bob!")
	assert.NotContains(t, string(bob), "welcome")
}

func TestRunEmptyDataSource(t *testing.T) {
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(dataFile, []byte(""), 0644))

	gen, err := New(Options{DataFile: dataFile, VarsByName: true, Format: "svg"}, nil)
	require.NoError(t, err)

	err = gen.Run(context.Background())
	assert.ErrorIs(t, err, tabdata.ErrEmptyDataSource)
}

func TestRunDuplicateRows(t *testing.T) {
	// Each duplicate row gets its own document; with an output
	// pattern keyed on row content the second write simply lands on
	// the same path, but both rows are processed.
	dir := t.TempDir()

	dataFile := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(dataFile, []byte("name,show\nAlice,yes\nAlice,yes\n"), 0644))
	templateFile := filepath.Join(dir, "card.svg")
	require.NoError(t, os.WriteFile(templateFile, []byte(testTemplate), 0644))

	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(outDir, 0755))

	gen, err := New(Options{
		DataFile:      dataFile,
		Template:      templateFile,
		VarsByName:    true,
		Format:        "svg",
		OutputPattern: filepath.Join(outDir, "%VAR_name%.svg"),
	}, nil)
	require.NoError(t, err)
	require.NoError(t, gen.Run(context.Background()))

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDryRun(t *testing.T) {
	dir := t.TempDir()

	dataFile := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(dataFile, []byte("name,show\nAlice,yes\n"), 0644))
	templateFile := filepath.Join(dir, "card.svg")
	require.NoError(t, os.WriteFile(templateFile, []byte(testTemplate), 0644))

	gen, err := New(Options{
		DataFile:   dataFile,
		Template:   templateFile,
		VarsByName: true,
		Format:     "svg",
	}, nil)
	require.NoError(t, err)

	diff, err := gen.DryRun()
	require.NoError(t, err)
	assert.Contains(t, diff, "Alice")
}
