package cli

import (
	"github.com/spf13/cobra"
)

func makeServeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "boot the application and serve HTTP on APP_PORT",
		Args:  cobra.NoArgs,
		RunE:  c.serve,
	}
}

func (c *cli) serve(cmd *cobra.Command, _ []string) error {
	a, err := c.application()
	if err != nil {
		return err
	}
	return a.Run(cmd.Context())
}
