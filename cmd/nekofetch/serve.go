package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dixieflatline76/Nekofetch/pkg/api"
	"github.com/dixieflatline76/Nekofetch/pkg/imagefetch"
	"github.com/dixieflatline76/Nekofetch/util/log"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local REST/WebSocket API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			acquired, err := acquireLock()
			if err != nil {
				return err
			}
			if !acquired {
				return errors.New("another nekofetch server is already running")
			}
			defer releaseLock()

			if addr == "" {
				addr = a.settings.ListenAddr
			}
			srv := api.NewServer(addr, a.client, a.client.Registry(), a.modes)
			srv.SetDownloader(imagefetch.NewDownloader(a.httpClient), a.settings.DownloadDir)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()
			fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://%s\n", addr)

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				log.Println("Shutting down local API")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Stop(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from settings)")
	return cmd
}
