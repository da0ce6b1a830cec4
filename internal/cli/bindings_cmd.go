package cli

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/km-arc/autowire/framework/manifest"
	"github.com/km-arc/autowire/framework/reflection"
)

const missing = "MISSING"

const bindingsLong = `Without arguments, boots the application and lists every binding.
With a manifest path, lists its entries without booting.
Classes the class table does not declare are marked ` + missing + "."

func makeBindingsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "bindings [manifest.yaml]",
		Short: "list container bindings, or the entries of a manifest file",
		Long:  bindingsLong,
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.bindings,
	}
}

func (c *cli) bindings(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return c.manifestBindings(cmd.OutOrStdout(), args[0])
	}

	a, err := c.booted()
	if err != nil {
		return err
	}
	table := newTable(cmd.OutOrStdout(), "abstract", "concrete", "shared", "class")
	for _, b := range a.Bindings() {
		table.Append([]string{b.Abstract, b.Concrete, strconv.FormatBool(b.Shared), classStatus(a.Classes(), b.Concrete, b.Factory)})
	}
	table.Render()
	return nil
}

func (c *cli) manifestBindings(w io.Writer, path string) error {
	m, err := manifest.Load(path)
	if err != nil {
		return err
	}
	classes := c.classes()
	table := newTable(w, "abstract", "class", "shared", "status")
	for _, e := range m.Entries() {
		table.Append([]string{e.Abstract, e.Class, strconv.FormatBool(e.Shared), classStatus(classes, e.Class, false)})
	}
	table.Render()
	return nil
}

func classStatus(classes *reflection.Table, concrete string, factory bool) string {
	switch {
	case factory:
		return "-"
	case classes.Has(concrete):
		return "ok"
	default:
		return missing
	}
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	return table
}
