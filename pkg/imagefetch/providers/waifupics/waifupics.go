// Package waifupics provides images from waifu.pics.
package waifupics

import (
	"github.com/dixieflatline76/Nekofetch/pkg/imagefetch"
	"github.com/dixieflatline76/Nekofetch/pkg/provider"
)

// WaifuPicsAPIURL is the API root; the rating and category follow as path segments.
const WaifuPicsAPIURL = "https://api.waifu.pics"

// Categories offered by waifu.pics per rating.
var (
	SafeCategories = []string{
		"waifu", "neko", "shinobu", "cuddle", "hug", "kiss", "lick", "pat", "bonk", "blush",
		"smile", "nom", "bite", "glomp", "slap", "kick", "happy", "poke", "dance",
	}
	ExplicitCategories = []string{"waifu", "neko", "trap", "blowjob"}
)

func init() {
	imagefetch.RegisterProvider(provider.WaifuPics, func() provider.Provider {
		return NewWaifuPicsProvider()
	})
}

// NewWaifuPicsProvider creates the waifu.pics provider.
func NewWaifuPicsProvider() *provider.Base {
	return provider.New(provider.WaifuPics, "Waifu.pics", provider.Config{
		BaseURL: WaifuPicsAPIURL,
		Categories: &provider.Categories{
			Safe:     SafeCategories,
			Explicit: ExplicitCategories,
		},
		Rating:    provider.RatingPath,
		Field:     "url",
		Extractor: provider.StringAt("url"),
	})
}
