package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/svgmerge/svgmerge/client"
	"github.com/svgmerge/svgmerge/pkg/generate"
	"github.com/svgmerge/svgmerge/pkg/render"
	"github.com/svgmerge/svgmerge/pkg/rest"
)

func generateCommand() *cobra.Command {
	var (
		dataFile     string
		template     string
		varType      string
		extraVars    string
		format       string
		dpi          int
		output       string
		showPreview  bool
		dryRun       bool
		rendererName string
		rendererCmd  string
		profilePath  string
		connect      string
	)

	var generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generates one document per data row",
		Long: `Generates one customized document per row of the data file.
Placeholders in the template are substituted in two passes: first the
rules given with --extra-vars ("old=>column", joined with "|"), then
the fixed %VAR_name% token syntax. Layer groups whose label embeds
%IF_column% or %UNLESS_column% are shown or emptied depending on the
row's value. The output is written per row to the path produced by
resolving --output against the same row.`,
		Example: `svgmerge generate -d data.csv -t card.svg -f pdf -o 'cards/%VAR_name%.pdf'`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bound to the flags below: the flag wins when set,
			// otherwise the config file value applies.
			if !cmd.Flags().Changed("renderer") {
				rendererName = viper.GetString("generate.renderer")
			}
			if !cmd.Flags().Changed("dpi") {
				dpi = viper.GetInt("generate.dpi")
			}

			if profilePath != "" {
				p, err := generate.LoadProfile(profilePath)
				if err != nil {
					return err
				}
				applyProfile(cmd, p, &dataFile, &template, &varType, &extraVars, &format, &dpi, &output, &rendererName)
			}

			if varType != "name" && varType != "number" {
				return fmt.Errorf("unknown var-type %q. Expected \"name\" or \"number\"", varType)
			}
			byName := varType == "name"
			format = strings.ToLower(format)

			if connect != "" {
				return remoteGenerate(cmd.Context(), connect, dataFile, template, varType, extraVars, format, output)
			}

			var renderer render.Renderer
			if rendererCmd != "" {
				r, err := render.NewCommand(rendererCmd)
				if err != nil {
					return err
				}
				renderer = r
			} else if format != "svg" {
				r, err := render.Select(rendererName)
				if err != nil {
					return err
				}
				renderer = r
			}

			gen, err := generate.New(generate.Options{
				DataFile:      dataFile,
				Template:      template,
				VarsByName:    byName,
				ExtraVars:     extraVars,
				Format:        format,
				DPI:           dpi,
				OutputPattern: output,
				Preview:       showPreview,
			}, renderer)
			if err != nil {
				return err
			}

			if dryRun {
				diff, err := gen.DryRun()
				if err != nil {
					return err
				}
				fmt.Println(diff)
				return nil
			}
			return gen.Run(cmd.Context())
		},
	}

	generateCmd.Flags().StringVarP(&dataFile, "data-file", "d", "data.csv", "The csv data file")
	generateCmd.Flags().StringVarP(&template, "template", "t", "", "The svg template file")
	generateCmd.Flags().StringVar(&varType, "var-type", "name", "Replace variables by column name (name) or column number (number)")
	generateCmd.Flags().StringVar(&extraVars, "extra-vars", "", `Additional replacement rules, "old=>column" joined with "|"`)
	generateCmd.Flags().StringVarP(&format, "format", "f", "pdf", "Output format (svg, pdf, png, ps, eps, jpg)")
	generateCmd.Flags().IntVar(&dpi, "dpi", 90, "Resolution passed to the renderer for raster formats")
	generateCmd.Flags().StringVarP(&output, "output", "o", "%VAR_1%.pdf", "Output path pattern, using %VAR_name% tokens")
	generateCmd.Flags().BoolVar(&showPreview, "preview", false, "Open the first generated file with the default viewer")
	generateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print a diff of the template against the first row's document instead of generating")
	generateCmd.Flags().StringVar(&rendererName, "renderer", "auto", "Renderer backend (auto, inkscape, rsvg)")
	generateCmd.Flags().StringVar(&rendererCmd, "renderer-cmd", "", "Custom renderer command line with %INPUT%, %OUTPUT%, %FORMAT%, %DPI% placeholders")
	generateCmd.Flags().StringVar(&profilePath, "profile", "", "TOML profile supplying defaults for the flags above")
	generateCmd.Flags().StringVar(&connect, "connect", "", "Generate on a remote svgmerge server (host[:port]); svg output only")

	generateCmd.MarkFlagRequired("template")
	viper.BindPFlag("generate.renderer", generateCmd.Flags().Lookup("renderer"))
	viper.BindPFlag("generate.dpi", generateCmd.Flags().Lookup("dpi"))

	return generateCmd
}

// applyProfile fills in profile values for every flag the user did not
// set explicitly; command line flags win over the profile.
func applyProfile(cmd *cobra.Command, p *generate.Profile,
	dataFile, template, varType, extraVars, format *string, dpi *int, output, rendererName *string) {

	set := func(flag string, dst *string, val string) {
		if val != "" && !cmd.Flags().Changed(flag) {
			*dst = val
		}
	}
	set("data-file", dataFile, p.DataFile)
	set("template", template, p.Template)
	set("var-type", varType, p.VarType)
	set("extra-vars", extraVars, p.ExtraVars)
	set("format", format, p.Format)
	set("output", output, p.Output)
	set("renderer", rendererName, p.Renderer)
	if p.DPI != 0 && !cmd.Flags().Changed("dpi") {
		*dpi = p.DPI
	}
}

// remoteGenerate ships the template and data to a svgmerge server and
// writes the returned documents locally. Rendering stays local to the
// caller, so only the native svg format is supported.
func remoteGenerate(ctx context.Context, connect, dataFile, template, varType, extraVars, format, output string) error {
	if format != "svg" {
		return fmt.Errorf("remote generation only supports the native svg format, not %q", format)
	}

	templateText, err := generate.LoadTemplate(template)
	if err != nil {
		return fmt.Errorf("cannot read template %q: %w", template, err)
	}
	data, err := os.ReadFile(dataFile)
	if err != nil {
		return fmt.Errorf("cannot read %q: %w", dataFile, err)
	}

	cli, err := client.NewClient(client.Connect(connect), client.Log(log.StandardLogger()))
	if err != nil {
		return err
	}

	resp, err := cli.Generate.Generate(ctx, rest.GenerateRequest{
		Template:  templateText,
		Data:      string(data),
		VarType:   varType,
		ExtraVars: extraVars,
		Output:    output,
	})
	if err != nil {
		return err
	}

	for _, doc := range resp.Documents {
		if err := os.WriteFile(doc.Filename, []byte(doc.Content), 0644); err != nil {
			log.Errorf("Cannot create %q: %v", doc.Filename, err)
		}
	}
	fmt.Printf("Generated %d documents\n", len(resp.Documents))
	return nil
}
