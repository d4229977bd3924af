package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newProvidersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List the supported providers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := a.client.Registry()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tRELAY")
			for _, id := range reg.ListProviders() {
				relay := ""
				if reg.ConfigFor(id).NeedsRelay {
					relay = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", id, reg.DisplayName(id), relay)
			}
			return w.Flush()
		},
	}
}
