package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/svgmerge/svgmerge/pkg/healthcheck"
)

func checkHealthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check-health",
		Short: "Check if all requirements and dependencies are met on the current system",
		Run: func(cmd *cobra.Command, args []string) {
			renderer := viper.GetString("generate.renderer")
			if renderer == "" {
				renderer = "auto"
			}
			err := healthcheck.CheckRequirements(renderer)
			if err != nil {
				fmt.Println()
				log.Fatalf("Health check failed: %v", err)
			}
		},
	}
}
