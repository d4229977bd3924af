// Package purr provides animated images from the purrbot.site API.
package purr

import (
	"github.com/dixieflatline76/Nekofetch/pkg/imagefetch"
	"github.com/dixieflatline76/Nekofetch/pkg/provider"
)

// Purrbot API
const (
	PurrAPIURL    = "https://purrbot.site/api/img"
	purrGIFSuffix = "/gif"
	purrField     = "link"
)

// Categories with a gif endpoint per rating.
var (
	SafeCategories = []string{
		"waifu", "neko", "hug", "pat", "cuddle", "kiss", "blush", "smile", "dance",
		"poke", "lick", "bite", "slap", "tickle", "tail",
	}
	ExplicitCategories = []string{"neko", "blowjob", "solo", "cum"}
)

func init() {
	imagefetch.RegisterProvider(provider.Purr, func() provider.Provider {
		return NewPurrProvider()
	})
}

// NewPurrProvider creates the purrbot provider.
func NewPurrProvider() *provider.Base {
	return provider.New(provider.Purr, "Purr", provider.Config{
		BaseURL: PurrAPIURL,
		Categories: &provider.Categories{
			Safe:     SafeCategories,
			Explicit: ExplicitCategories,
		},
		Rating:     provider.RatingPath,
		PathSuffix: purrGIFSuffix,
		Field:      purrField,
		Extractor:  provider.StringAt(purrField),
	})
}
