package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/km-arc/autowire/framework/reflection"
	"github.com/km-arc/autowire/internal/demo"
)

func makeClassesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "classes",
		Short: "list the classes the container can build",
		Args:  cobra.NoArgs,
		RunE:  c.listClasses,
	}
}

func (c *cli) classes() *reflection.Table {
	return demo.Classes()
}

func (c *cli) listClasses(cmd *cobra.Command, _ []string) error {
	classes := c.classes()
	table := newTable(cmd.OutOrStdout(), "class", "kind", "instantiable", "constructor")
	for _, name := range classes.Names() {
		class, err := classes.Class(name)
		if err != nil {
			return err
		}
		table.Append([]string{
			name,
			class.Type().Kind().String(),
			strconv.FormatBool(class.Instantiable()),
			strconv.FormatBool(class.Constructor() != nil),
		})
	}
	table.Render()
	return nil
}
