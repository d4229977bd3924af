// Package nekoslife provides images from nekos.life.
package nekoslife

import (
	"github.com/dixieflatline76/Nekofetch/pkg/imagefetch"
	"github.com/dixieflatline76/Nekofetch/pkg/provider"
)

const nekosLifeWaifuURL = "https://nekos.life/api/v2/img/waifu"

func init() {
	imagefetch.RegisterProvider(provider.NekosLife, func() provider.Provider {
		return NewNekosLifeProvider()
	})
}

func NewNekosLifeProvider() *provider.Base {
	return provider.New(provider.NekosLife, "Nekos.life", provider.Config{
		BaseURL:   nekosLifeWaifuURL,
		Field:     "url",
		Extractor: provider.StringAt("url"),
	})
}
