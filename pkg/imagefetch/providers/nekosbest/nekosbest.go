// Package nekosbest provides neko images from nekos.best.
package nekosbest

import (
	"github.com/dixieflatline76/Nekofetch/pkg/imagefetch"
	"github.com/dixieflatline76/Nekofetch/pkg/provider"
)

// NekosBestNekoURL returns one random neko image.
const NekosBestNekoURL = "https://nekos.best/api/v2/neko"

func init() {
	imagefetch.RegisterProvider(provider.NekosBest, func() provider.Provider {
		return NewNekosBestProvider()
	})
}

// NewNekosBestProvider creates the nekos.best provider.
func NewNekosBestProvider() *provider.Base {
	return provider.New(provider.NekosBest, "Nekos.best", provider.Config{
		BaseURL:   NekosBestNekoURL,
		Field:     "results[0].url",
		Extractor: provider.FirstStringAt("results", "url"),
	})
}
