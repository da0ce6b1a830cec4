// Package cli implements the autowire command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/km-arc/autowire/framework/app"
	"github.com/km-arc/autowire/internal/demo"
)

type cli struct {
	envFiles []string
}

// NewRootCmd builds the autowire command tree.
func NewRootCmd(version string) *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:          "autowire",
		Short:        "autowire serves and inspects a container-wired application",
		Version:      version,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringSliceVar(&c.envFiles, "env", []string{".env"}, ".env files to load")

	rootCmd.AddCommand(makeServeCmd(c))
	rootCmd.AddCommand(makeBindingsCmd(c))
	rootCmd.AddCommand(makeMakeCmd(c))
	rootCmd.AddCommand(makeClassesCmd(c))
	return rootCmd
}

// application builds the demo application without booting it.
func (c *cli) application() (*app.Application, error) {
	a := app.New(demo.Classes(), c.envFiles...)
	if err := a.Register(&demo.ServiceProvider{}); err != nil {
		return nil, err
	}
	return a, nil
}

// booted builds and boots the demo application.
func (c *cli) booted() (*app.Application, error) {
	a, err := c.application()
	if err != nil {
		return nil, err
	}
	if err := a.Boot(); err != nil {
		return nil, err
	}
	return a, nil
}
