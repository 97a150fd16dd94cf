// Package generate drives the row-by-row document pipeline: read the
// data source, substitute placeholders into the template, filter
// conditional layers, and export one file per row.
package generate

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/svgmerge/svgmerge/pkg/preview"
	"github.com/svgmerge/svgmerge/pkg/render"
	"github.com/svgmerge/svgmerge/pkg/substitute"
	"github.com/svgmerge/svgmerge/pkg/svgdoc"
	"github.com/svgmerge/svgmerge/pkg/tabdata"
)

// Options is the configuration surface of one generation run.
type Options struct {
	DataFile      string
	Template      string
	VarsByName    bool   // column-name vs column-number variables
	ExtraVars     string // serialized "old=>column|..." rule list
	Format        string // svg, pdf, png, ps, eps, jpg
	DPI           int
	OutputPattern string // %VAR_name% tokens, resolved per row
	Preview       bool
}

// Document associates a data row with its materialized temp file and,
// after export, its final destination. The association is positional
// so that duplicate rows each produce their own output.
type Document struct {
	Row    tabdata.Row
	Path   string
	Output string
}

// Generator holds a parsed configuration and the injected renderer.
type Generator struct {
	opts     Options
	rules    []substitute.Rule
	renderer render.Renderer
}

// New validates opts and builds a Generator. The renderer may be nil
// when the target format is the native svg format.
func New(opts Options, renderer render.Renderer) (*Generator, error) {
	rules, err := substitute.ParseRules(opts.ExtraVars)
	if err != nil {
		return nil, err
	}
	opts.Format = strings.ToLower(opts.Format)
	if opts.Format != "svg" && renderer == nil {
		return nil, fmt.Errorf("output format %q requires a renderer", opts.Format)
	}
	return &Generator{opts: opts, rules: rules, renderer: renderer}, nil
}

// Run executes the full pipeline. Validation-class failures (bad data
// source, bad rule, unknown stage-A column, malformed document) abort
// the run; per-row export failures are reported and the remaining
// rows are still processed. The temporary working directory is
// removed on every exit path.
func (g *Generator) Run(ctx context.Context) error {
	table, err := tabdata.Read(g.opts.DataFile, g.opts.VarsByName)
	if err != nil {
		return err
	}

	tmpl, err := LoadTemplate(g.opts.Template)
	if err != nil {
		return fmt.Errorf("cannot read template %q: %w", g.opts.Template, err)
	}

	tmpdir, err := os.MkdirTemp("", "svgmerge-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpdir)

	docs := make([]Document, 0, len(table.Rows))
	for _, row := range table.Rows {
		desc := table.Describe(row)
		text, err := Materialize(tmpl, desc, g.rules, g.opts.VarsByName)
		if err != nil {
			return err
		}
		path := filepath.Join(tmpdir, uuid.NewString()+".svg")
		if err := os.WriteFile(path, []byte(text), 0644); err != nil {
			return fmt.Errorf("cannot write %q: %w", path, err)
		}
		docs = append(docs, Document{Row: row, Path: path})
	}

	g.export(ctx, table, docs)

	if g.opts.Preview && len(docs) > 0 {
		preview.Open(ctx, docs[0].Output)
	}
	return nil
}

// Materialize transforms one template instance for one row: stage A+B
// substitution on every raw line (before XML parsing, so placeholders
// in arbitrary attributes work), then layer filtering on the parsed
// tree.
func Materialize(templateText string, desc tabdata.Descriptor, rules []substitute.Rule, byName bool) (string, error) {
	var b strings.Builder
	for _, line := range splitLines(templateText) {
		out, err := substitute.Apply(line, desc, rules, byName)
		if err != nil {
			return "", err
		}
		b.WriteString(out)
	}

	doc, err := svgdoc.Parse(b.String())
	if err != nil {
		return "", fmt.Errorf("template is not well-formed after substitution: %w", err)
	}
	svgdoc.FilterLayers(doc, desc)

	return doc.WriteToString()
}

// LoadTemplate reads the template source as text.
func LoadTemplate(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func splitLines(text string) []string {
	var lines []string
	r := bufio.NewReader(strings.NewReader(text))
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if err == io.EOF {
			break
		}
	}
	return lines
}

func (g *Generator) export(ctx context.Context, table *tabdata.Table, docs []Document) {
	format := g.opts.Format
	fixExt := false
	if format == "jpg" || format == "jpeg" {
		log.Warnf("jpg output is not supported by the available renderers, falling back to png")
		format = "png"
		fixExt = true
	}

	for i := range docs {
		desc := table.Describe(docs[i].Row)
		out := ResolveOutput(g.opts.OutputPattern, desc)
		if fixExt {
			out = jpgToPng(out)
		}
		docs[i].Output = out

		if format == "svg" {
			if err := moveFile(docs[i].Path, out); err != nil {
				log.Errorf("Cannot create %q: %v", out, err)
			}
			continue
		}
		if err := g.renderer.Render(ctx, docs[i].Path, format, g.opts.DPI, out); err != nil {
			log.Errorf("Rendering %q failed: %v", out, err)
		}
	}
}

// ResolveOutput expands the output path pattern for one row. Values
// are escaped the same way as document content, a deliberate
// simplification shared with the substitution engine.
func ResolveOutput(pattern string, desc tabdata.Descriptor) string {
	return substitute.ExpandVars(pattern, desc)
}

// jpgToPng rewrites only a trailing .jpg/.jpeg extension, leaving
// "jpg" elsewhere in the path (e.g. from a data value) alone.
func jpgToPng(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
	}
	return path
}

// moveFile renames src to dst, falling back to a copy when the
// destination is on a different filesystem.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
