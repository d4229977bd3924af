package nekoslife

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dixieflatline76/Nekofetch/pkg/imagefetch"
)

func TestNekosLifeProvider(t *testing.T) {
	p := NewNekosLifeProvider()

	u, err := p.BuildURL(false, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://nekos.life/api/v2/img/waifu", u)

	body, err := imagefetch.ParseBody([]byte(`{"url":"https://cdn.nekos.life/waifu/waifu_h1.jpg"}`))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.nekos.life/waifu/waifu_h1.jpg", p.ParseResponse(body))

	body, err = imagefetch.ParseBody([]byte(`{"msg":"404"}`))
	require.NoError(t, err)
	assert.Empty(t, p.ParseResponse(body))
}
