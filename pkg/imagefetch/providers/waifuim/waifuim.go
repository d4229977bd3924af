// Package waifuim provides images from waifu.im.
package waifuim

import (
	"github.com/dixieflatline76/Nekofetch/pkg/imagefetch"
	"github.com/dixieflatline76/Nekofetch/pkg/provider"
)

// Waifu.im API
const (
	WaifuImSearchURL = "https://api.waifu.im/search"
	waifuImNSFWParam = "is_nsfw"
	waifuImField     = "images[0].url"
)

func init() {
	imagefetch.RegisterProvider(provider.WaifuIm, func() provider.Provider {
		return NewWaifuImProvider()
	})
}

// NewWaifuImProvider creates the waifu.im provider. The rating is sent as the is_nsfw query flag.
func NewWaifuImProvider() *provider.Base {
	return provider.New(provider.WaifuIm, "Waifu.im", provider.Config{
		BaseURL:     WaifuImSearchURL,
		Rating:      provider.RatingQuery,
		RatingParam: waifuImNSFWParam,
		Field:       waifuImField,
		Extractor:   provider.FirstStringAt("images", "url"),
	})
}
