package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dixieflatline76/Nekofetch/pkg/imagefetch"
	"github.com/dixieflatline76/Nekofetch/pkg/provider"
)

func newFetchCmd(a *app) *cobra.Command {
	var (
		explicit bool
		saveDir  string
	)

	cmd := &cobra.Command{
		Use:   "fetch <provider>",
		Short: "Fetch one image URL from a provider",
		Long: `Fetch one image URL from a provider and print it.

Without --explicit the persisted content rating is used.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, ok := provider.ParseID(args[0])
			if !ok {
				return fmt.Errorf("%w %q (valid: %s)", imagefetch.ErrUnknownProvider, args[0], validIDs())
			}

			mode := a.modes.GetExplicitMode()
			if cmd.Flags().Changed("explicit") {
				mode = explicit
			}

			img, err := a.client.FetchImage(cmd.Context(), id, mode)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), img.URL)

			if saveDir == "" {
				return nil
			}
			path, err := imagefetch.NewDownloader(a.httpClient).Save(cmd.Context(), img, saveDir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&explicit, "explicit", false, "request explicit content for this call only")
	cmd.Flags().StringVar(&saveDir, "save", "", "save the image into this directory")
	return cmd
}

func validIDs() string {
	ids := provider.AllIDs()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}
	return strings.Join(names, ", ")
}
