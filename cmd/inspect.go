package cmd

import (
	"fmt"
	"os"
	"regexp"
	"sort"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/svgmerge/svgmerge/pkg/generate"
	"github.com/svgmerge/svgmerge/pkg/svgdoc"
	"github.com/svgmerge/svgmerge/pkg/tabdata"
)

var varToken = regexp.MustCompile(`%VAR_([^%]*)%`)

func inspectCommand() *cobra.Command {
	var dataFile, template, varType string

	var inspectCmd = &cobra.Command{
		Use:   "inspect",
		Short: "Shows the data rows, template variables and conditional layers",
		Long: `Parses the data file and the template without generating anything and
prints the data rows, the %VAR_name% tokens the template references,
and the visibility decision each conditional layer would take per row.`,
		Example: "svgmerge inspect -d data.csv -t card.svg",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if varType != "name" && varType != "number" {
				return fmt.Errorf("unknown var-type %q. Expected \"name\" or \"number\"", varType)
			}

			table, err := tabdata.Read(dataFile, varType == "name")
			if err != nil {
				return err
			}

			templateText, err := generate.LoadTemplate(template)
			if err != nil {
				return fmt.Errorf("cannot read template %q: %w", template, err)
			}

			printRows(table)
			printVariables(templateText, table)

			doc, err := svgdoc.Parse(templateText)
			if err != nil {
				return fmt.Errorf("cannot parse template %q: %w", template, err)
			}
			printLayers(svgdoc.ConditionalLayers(doc), table)
			return nil
		},
	}

	inspectCmd.Flags().StringVarP(&dataFile, "data-file", "d", "data.csv", "The csv data file")
	inspectCmd.Flags().StringVarP(&template, "template", "t", "", "The svg template file")
	inspectCmd.Flags().StringVar(&varType, "var-type", "name", "Replace variables by column name (name) or column number (number)")
	inspectCmd.MarkFlagRequired("template")

	return inspectCmd
}

func newTable() *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoFormatHeaders(false)
	return table
}

func setHeader(table *tablewriter.Table, header []string) {
	table.SetHeader(header)
	if isatty.IsTerminal(os.Stdout.Fd()) {
		blueBold := tablewriter.Colors{tablewriter.FgBlueColor, tablewriter.Bold}
		colors := make([]tablewriter.Colors, len(header))
		for i := range colors {
			colors[i] = blueBold
		}
		table.SetHeaderColor(colors...)
	}
}

func printRows(t *tabdata.Table) {
	if len(t.Rows) == 0 {
		fmt.Println("No data rows.")
		return
	}
	// Force the synthetic header in number mode.
	t.Describe(t.Rows[0])

	table := newTable()
	setHeader(table, t.Header)
	for _, row := range t.Rows {
		table.Append(row)
	}
	table.Render()
}

// printVariables lists the %VAR_% tokens of the template and flags the
// ones that no data column satisfies.
func printVariables(templateText string, t *tabdata.Table) {
	seen := map[string]bool{}
	var names []string
	for _, m := range varToken.FindAllStringSubmatch(templateText, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	if len(names) == 0 {
		fmt.Println("\nThe template references no variables.")
		return
	}
	sort.Strings(names)

	known := map[string]bool{}
	for _, h := range t.Header {
		known[h] = true
	}

	fmt.Println("\nTemplate variables:")
	for _, n := range names {
		if known[n] {
			fmt.Printf("    %s %%VAR_%s%%\n", color.GreenString("✓"), n)
		} else {
			fmt.Printf("    %s %%VAR_%s%% (no such column, token is left as-is)\n", color.YellowString("?"), n)
		}
	}
}

func printLayers(layers []svgdoc.Layer, t *tabdata.Table) {
	if len(layers) == 0 {
		fmt.Println("\nThe template has no conditional layers.")
		return
	}

	fmt.Println("\nConditional layers (decision per row):")
	table := newTable()
	header := []string{"Row"}
	for _, l := range layers {
		header = append(header, l.Label)
	}
	setHeader(table, header)

	for i, row := range t.Rows {
		desc := t.Describe(row)
		line := []string{fmt.Sprint(i + 1)}
		for _, l := range layers {
			if v, ok := svgdoc.Decide(l.Label, desc); ok {
				line = append(line, v.String())
			} else {
				line = append(line, "unknown column")
			}
		}
		table.Append(line)
	}
	table.Render()
}
