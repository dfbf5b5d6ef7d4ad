package cli

import (
	"resume-builder/internal/server"

	"github.com/spf13/cobra"
)

func (c *CLI) serveCommand() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port != "" {
				c.cfg.Server.Port = port
			}
			svc, closeStore, err := c.services(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()
			app := server.NewApp(svc, c.log)
			return server.Run(cmd.Context(), app, ":"+c.cfg.Server.Port, c.log)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (default PORT)")
	return cmd
}
