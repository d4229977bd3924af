package config

import (
	"strconv"

	"fyne.io/fyne/v2"
)

// ExplicitModeKey is the preference key of the explicit content flag.
// The value is stored string-encoded as "true" or "false".
const ExplicitModeKey = "explicitMode"

// AppConfig holds the application-wide preferences
type AppConfig struct {
	prefs fyne.Preferences
}

// NewAppConfig creates a new AppConfig instance
func NewAppConfig(p fyne.Preferences) *AppConfig {
	return &AppConfig{prefs: p}
}

// GetExplicitMode returns whether explicit content is requested. Defaults to false.
func (c *AppConfig) GetExplicitMode() bool {
	enabled, err := strconv.ParseBool(c.prefs.StringWithFallback(ExplicitModeKey, "false"))
	if err != nil {
		return false
	}
	return enabled
}

// SetExplicitMode persists the explicit content flag
func (c *AppConfig) SetExplicitMode(enabled bool) {
	c.prefs.SetString(ExplicitModeKey, strconv.FormatBool(enabled))
}
