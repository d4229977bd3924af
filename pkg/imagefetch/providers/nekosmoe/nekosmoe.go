// Package nekosmoe provides images from nekos.moe.
//
// nekos.moe rejects direct browser-context calls, so requests go through a CORS relay.
package nekosmoe

import (
	"github.com/dixieflatline76/Nekofetch/pkg/imagefetch"
	"github.com/dixieflatline76/Nekofetch/pkg/provider"
)

// Nekos.moe API
const (
	NekosMoeRandomURL = "https://nekos.moe/api/v1/random/image?nsfw=false"
	NekosMoeImageURL  = "https://nekos.moe/image/{}" // {} is the image id
)

func init() {
	imagefetch.RegisterProvider(provider.NekosMoe, func() provider.Provider {
		return NewNekosMoeProvider()
	})
}

// NewNekosMoeProvider creates the nekos.moe provider. The response carries an image id, not a URL.
func NewNekosMoeProvider() *provider.Base {
	return provider.New(provider.NekosMoe, "Nekos.moe", provider.Config{
		BaseURL:    NekosMoeRandomURL,
		Field:      "images[0].id",
		Extractor:  provider.FirstStringTemplate(NekosMoeImageURL, "images", "id"),
		NeedsRelay: true,
	})
}
