// Package nekobot provides images from nekobot.xyz.
package nekobot

import (
	"github.com/dixieflatline76/Nekofetch/pkg/imagefetch"
	"github.com/dixieflatline76/Nekofetch/pkg/provider"
)

const nekoBotImageURL = "https://nekobot.xyz/api/image?type=waifu"

func init() {
	imagefetch.RegisterProvider(provider.NekoBot, func() provider.Provider {
		return NewNekoBotProvider()
	})
}

// NewNekoBotProvider creates the NekoBot provider. The image URL is in the message field.
func NewNekoBotProvider() *provider.Base {
	return provider.New(provider.NekoBot, "NekoBot", provider.Config{
		BaseURL:   nekoBotImageURL,
		Field:     "message",
		Extractor: provider.StringAt("message"),
	})
}
