// Package all links every image provider into the binary.
package all

import (
	_ "github.com/dixieflatline76/Nekofetch/pkg/imagefetch/providers/nekobot"
	_ "github.com/dixieflatline76/Nekofetch/pkg/imagefetch/providers/nekosapi"
	_ "github.com/dixieflatline76/Nekofetch/pkg/imagefetch/providers/nekosbest"
	_ "github.com/dixieflatline76/Nekofetch/pkg/imagefetch/providers/nekoslife"
	_ "github.com/dixieflatline76/Nekofetch/pkg/imagefetch/providers/nekosmoe"
	_ "github.com/dixieflatline76/Nekofetch/pkg/imagefetch/providers/picre"
	_ "github.com/dixieflatline76/Nekofetch/pkg/imagefetch/providers/purr"
	_ "github.com/dixieflatline76/Nekofetch/pkg/imagefetch/providers/waifuim"
	_ "github.com/dixieflatline76/Nekofetch/pkg/imagefetch/providers/waifupics"
)
