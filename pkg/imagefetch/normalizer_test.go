package imagefetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dixieflatline76/Nekofetch/pkg/provider"
)

func TestParseBody(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"Object", `{"url":"https://i.example/a.png"}`, false},
		{"Empty", ``, true},
		{"Whitespace", "  \n", true},
		{"HTML", `<html>blocked</html>`, true},
		{"Array", `[{"url":"x"}]`, true},
		{"Truncated", `{"url":`, true},
		{"Trailing Whitespace", "{\"url\":\"x\"}\n", false},
		{"Trailing HTML", `{"url":"https://x/a.png"}<html>cloudflare</html>`, true},
		{"Two Objects", `{"url":"https://x/a.png"} {"url":"y"}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := ParseBody([]byte(tt.raw))
			if tt.wantErr {
				var parseErr *ParseError
				assert.ErrorAs(t, err, &parseErr)
				assert.Nil(t, obj)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, obj)
		})
	}
}

func TestExtract(t *testing.T) {
	p := provider.New(provider.PicRe, "Pic.re", provider.Config{
		BaseURL:   "https://api.pic.re/waifu",
		Field:     "url",
		Extractor: provider.StringAt("url"),
	})

	t.Run("Found", func(t *testing.T) {
		body, err := ParseBody([]byte(`{"url":" https://pic.re/image/1.jpg "}`))
		require.NoError(t, err)
		u, err := Extract(p, body)
		require.NoError(t, err)
		assert.Equal(t, "https://pic.re/image/1.jpg", u)
	})

	t.Run("Missing", func(t *testing.T) {
		body, err := ParseBody([]byte(`{"file_url":"https://pic.re/image/1.jpg"}`))
		require.NoError(t, err)
		_, err = Extract(p, body)

		var missing *MissingFieldError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, provider.PicRe, missing.Provider)
		assert.Equal(t, "url", missing.Field)
	})

	t.Run("Empty string", func(t *testing.T) {
		body, err := ParseBody([]byte(`{"url":""}`))
		require.NoError(t, err)
		_, err = Extract(p, body)
		var missing *MissingFieldError
		assert.ErrorAs(t, err, &missing)
	})

	t.Run("Wrong type", func(t *testing.T) {
		body, err := ParseBody([]byte(`{"url":42}`))
		require.NoError(t, err)
		_, err = Extract(p, body)
		var missing *MissingFieldError
		assert.ErrorAs(t, err, &missing)
	})
}
