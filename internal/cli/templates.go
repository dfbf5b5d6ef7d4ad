package cli

import (
	"fmt"
	"text/tabwriter"

	"resume-builder/internal/registry"

	"github.com/spf13/cobra"
)

func (c *CLI) templatesCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the available templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all := registry.Default().All()
			if asJSON {
				return c.printJSON(all)
			}
			w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tHEADER\tCOLOR")
			for _, t := range all {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Name, t.HeaderVariant, t.PrimaryColor)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
