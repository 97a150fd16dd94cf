package generate

import (
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/svgmerge/svgmerge/pkg/tabdata"
)

// DryRun materializes the first data row without writing anything and
// returns a pretty diff of the template against the resulting
// document, so the effect of the configured substitutions and layer
// conditions can be checked before a full run.
func (g *Generator) DryRun() (string, error) {
	table, err := tabdata.Read(g.opts.DataFile, g.opts.VarsByName)
	if err != nil {
		return "", err
	}
	if len(table.Rows) == 0 {
		return "", fmt.Errorf("data file %q contains no rows", g.opts.DataFile)
	}

	tmpl, err := LoadTemplate(g.opts.Template)
	if err != nil {
		return "", fmt.Errorf("cannot read template %q: %w", g.opts.Template, err)
	}

	desc := table.Describe(table.Rows[0])
	materialized, err := Materialize(tmpl, desc, g.rules, g.opts.VarsByName)
	if err != nil {
		return "", err
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(tmpl, materialized, false)
	return dmp.DiffPrettyText(diffs), nil
}
