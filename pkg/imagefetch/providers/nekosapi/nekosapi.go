// Package nekosapi provides waifu images from the nekos.best v2 API.
package nekosapi

import (
	"github.com/dixieflatline76/Nekofetch/pkg/imagefetch"
	"github.com/dixieflatline76/Nekofetch/pkg/provider"
)

const nekosAPIWaifuURL = "https://nekos.best/api/v2/waifu"

func init() {
	imagefetch.RegisterProvider(provider.NekosAPI, func() provider.Provider {
		return NewNekosAPIProvider()
	})
}

func NewNekosAPIProvider() *provider.Base {
	return provider.New(provider.NekosAPI, "Nekos API", provider.Config{
		BaseURL:   nekosAPIWaifuURL,
		Field:     "results[0].url",
		Extractor: provider.FirstStringAt("results", "url"),
	})
}
