package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCommand represents the base command when called without any subcommands
func rootCommand() *cobra.Command {
	if len(os.Args) < 1 {
		log.Fatal("Program started with a zero-length argument list")
	}

	var loglevel string

	rootCmd := &cobra.Command{
		Use:   "svgmerge",
		Short: "Generate end-use documents from an SVG template and a CSV data file",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(loglevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)
			initConfig()
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&loglevel, "loglevel", "info", "Set the log level (as defined by logrus)")

	rootCmd.AddCommand(generateCommand())
	rootCmd.AddCommand(inspectCommand())
	rootCmd.AddCommand(serverCommand())
	rootCmd.AddCommand(checkHealthCommand())
	rootCmd.AddCommand(versionCommand())
	rootCmd.AddCommand(completionCommand(rootCmd))
	rootCmd.AddCommand(docsCommand(rootCmd))
	return rootCmd
}

func initConfig() {
	viper.SetConfigName("svgmerge")
	viper.SetConfigType("toml")
	viper.AddConfigPath("/etc/svgmerge")
	viper.AddConfigPath("$HOME/.config/svgmerge")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warnf("Could not read config file: %v", err)
		}
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd := rootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
