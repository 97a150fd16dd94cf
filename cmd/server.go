package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/svgmerge/svgmerge/client"
	"github.com/svgmerge/svgmerge/pkg/rest"
)

func serverCommand() *cobra.Command {
	var addr string

	var serverCmd = &cobra.Command{
		Use:   "server",
		Short: "Starts a web server serving a REST API",
		Long: `Starts a web server serving a REST API for remote document
generation. Only the native svg format travels over the wire;
rendering to other formats stays on the client side.

For example:
svgmerge server --addr=":8538"`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			corsOrigins := viper.GetStringSlice("server.cors_allowed_origins")
			rest.ListenAndServe(addr, corsOrigins)
		},
	}

	serverCmd.ResetCommands()
	defaultAddr := fmt.Sprintf(":%d", client.DefaultPort)
	serverCmd.Flags().StringVar(&addr, "addr", defaultAddr, "Host and port as defined by http.ListenAndServe()")
	serverCmd.DisableAutoGenTag = true

	return serverCmd
}
