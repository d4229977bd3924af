package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/dixieflatline76/Nekofetch/config"
	"github.com/dixieflatline76/Nekofetch/pkg/imagefetch"
	"github.com/dixieflatline76/Nekofetch/util/log"
)

// app holds what the subcommands share. It is filled in by the root PersistentPreRunE.
type app struct {
	settingsPath string
	prefsPath    string

	settings config.Settings
	modes    *config.AppConfig
	client   *imagefetch.Client

	// Replaced in tests.
	newClient  func(config.Settings) (*imagefetch.Client, error)
	httpClient *http.Client
}

func newApp() *app {
	return &app{
		newClient:  imagefetch.NewDefaultClient,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// load reads settings and preferences and builds the fetch client.
func (a *app) load() error {
	settings, err := config.NewSettingsLoader(a.settingsPath).Load()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	a.settings = settings

	prefs, err := config.OpenFilePreferences(a.prefsPath)
	if err != nil {
		return fmt.Errorf("loading preferences: %w", err)
	}
	a.modes = config.NewAppConfig(prefs)

	client, err := a.newClient(settings)
	if err != nil {
		return fmt.Errorf("building client: %w", err)
	}
	a.client = client
	log.Debugf("Loaded settings from %s, preferences from %s", a.settingsPath, a.prefsPath)
	return nil
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "nekofetch",
		Short: "Fetch random anime images from public image APIs",
		Long: `nekofetch fetches one random image URL from one of several public anime
image APIs, optionally saving the image locally.

Example usage:
  nekofetch providers               # List the supported providers
  nekofetch fetch waifuPics         # Print an image URL from waifu.pics
  nekofetch fetch purr --save .     # Fetch and save an image
  nekofetch explicit off            # Persist the content rating
  nekofetch serve                   # Run the local API server`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}

	root.PersistentFlags().StringVar(&a.settingsPath, "settings", config.SettingsPath(), "settings file")
	root.PersistentFlags().StringVar(&a.prefsPath, "prefs", config.PreferencesPath(), "preferences file")

	root.AddCommand(
		newFetchCmd(a),
		newProvidersCmd(a),
		newExplicitCmd(a),
		newServeCmd(a),
		newVersionCmd(a),
	)
	return root
}
