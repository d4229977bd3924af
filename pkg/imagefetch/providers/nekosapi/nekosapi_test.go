package nekosapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dixieflatline76/Nekofetch/pkg/imagefetch"
)

func TestNekosAPIProvider(t *testing.T) {
	p := NewNekosAPIProvider()

	u, err := p.BuildURL(false, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://nekos.best/api/v2/waifu", u)

	body, err := imagefetch.ParseBody([]byte(`{"results":[{"artist_href":"https://www.pixiv.net/en/users/1","artist_name":"x","source_url":"https://www.pixiv.net/en/artworks/2","url":"https://nekos.best/api/v2/waifu/0001.png"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "https://nekos.best/api/v2/waifu/0001.png", p.ParseResponse(body))

	body, err = imagefetch.ParseBody([]byte(`{"results":[]}`))
	require.NoError(t, err)
	assert.Empty(t, p.ParseResponse(body))
}
