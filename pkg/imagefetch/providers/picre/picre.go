// Package picre provides images from pic.re.
package picre

import (
	"github.com/dixieflatline76/Nekofetch/pkg/imagefetch"
	"github.com/dixieflatline76/Nekofetch/pkg/provider"
)

// PicReWaifuURL returns a random image as JSON.
const PicReWaifuURL = "https://api.pic.re/waifu"

func init() {
	imagefetch.RegisterProvider(provider.PicRe, func() provider.Provider {
		return NewPicReProvider()
	})
}

// NewPicReProvider creates the pic.re provider.
func NewPicReProvider() *provider.Base {
	return provider.New(provider.PicRe, "Pic.re", provider.Config{
		BaseURL:   PicReWaifuURL,
		Field:     "url",
		Extractor: provider.StringAt("url"),
	})
}
