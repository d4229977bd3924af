package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/dixieflatline76/Nekofetch/config"
	"github.com/dixieflatline76/Nekofetch/util"
)

func newVersionCmd(a *app) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Version works without settings or preferences.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "nekofetch version %s\n", config.AppVersion)
			fmt.Fprintf(w, "  go version: %s\n", runtime.Version())
			fmt.Fprintf(w, "  platform:   %s/%s\n", runtime.GOOS, runtime.GOARCH)

			if !check {
				return nil
			}
			result, err := util.CheckForUpdates(cmd.Context(), a.httpClient)
			if err != nil {
				return err
			}
			if result.UpdateAvailable {
				fmt.Fprintf(w, "Update available: %s (%s)\n", result.LatestVersion, result.ReleaseURL)
			} else {
				fmt.Fprintf(w, "Up to date (latest %s)\n", result.LatestVersion)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "check GitHub for a newer release")
	return cmd
}
