package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/svgmerge/svgmerge/pkg/version"
)

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information of svgmerge",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("svgmerge version %s\n", version.Version)
			fmt.Printf("Built at %s\n", version.BuildDate)
			fmt.Printf("Version control hash: %s\n", version.GitCommit)
		},
	}
}
