package cli

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/km-arc/autowire/framework/container"
	"github.com/km-arc/autowire/internal/demo"
)

func makeMakeCmd(c *cli) *cobra.Command {
	var overrides map[string]string
	cmd := &cobra.Command{
		Use:     "make <abstract>",
		Short:   "resolve an abstract and dump the result",
		Example: "  autowire make " + demo.UserControllerKey,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.resolve(cmd, args[0], overrides)
		},
	}
	cmd.Flags().StringToStringVar(&overrides, "arg", nil, "parameter override, name=value (repeatable)")
	return cmd
}

func (c *cli) resolve(cmd *cobra.Command, abstract string, overrides map[string]string) error {
	a, err := c.booted()
	if err != nil {
		return err
	}

	args := make(container.Args, len(overrides))
	for k, v := range overrides {
		args[k] = v
	}
	inst, err := a.Make(abstract, args)
	if err != nil {
		return err
	}

	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, MaxDepth: 4}
	_, err = fmt.Fprint(cmd.OutOrStdout(), cfg.Sdump(inst))
	return err
}
