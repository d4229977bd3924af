package imagefetch

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/cenkalti/backoff/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dixieflatline76/Nekofetch/config"
	"github.com/dixieflatline76/Nekofetch/pkg/provider"
)

// testProviders returns one provider per ID, all served from baseURL.
// nekosMoe is flagged for the relay path and waifuPics uses path categories.
func testProviders(baseURL string) []provider.Provider {
	var ps []provider.Provider
	for _, id := range provider.AllIDs() {
		cfg := provider.Config{
			BaseURL:   baseURL + "/" + string(id),
			Field:     "url",
			Extractor: provider.StringAt("url"),
		}
		switch id {
		case provider.NekosMoe:
			cfg.NeedsRelay = true
		case provider.WaifuPics:
			cfg.Rating = provider.RatingPath
			cfg.Categories = &provider.Categories{Safe: []string{"waifu"}, Explicit: []string{}}
		}
		ps = append(ps, provider.New(id, strings.ToUpper(string(id)), cfg))
	}
	return ps
}

func newTestClient(t *testing.T, api *http.Client, apiURL string, relays []string) *Client {
	t.Helper()
	reg, err := NewRegistry(testProviders(apiURL)...)
	require.NoError(t, err)
	tr := NewTransport(api, TransportConfig{Backoff: DefaultBackoff})
	tr.SetBackOffForTesting(func() backoff.BackOff { return &backoff.ZeroBackOff{} })
	return NewClient(reg, tr, NewRelay(http.DefaultClient, relays)).WithRand(rand.New(rand.NewSource(1)))
}

func TestClient_FetchImage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"url":"https://cdn.example` + r.URL.Path + `.png"}`))
	}))
	defer ts.Close()

	c := newTestClient(t, ts.Client(), ts.URL, nil)

	img, err := c.FetchImage(context.Background(), provider.PicRe, false)
	require.NoError(t, err)
	assert.Equal(t, provider.Image{URL: "https://cdn.example/picRe.png", Source: provider.PicRe}, img)

	img, err = c.FetchImage(context.Background(), provider.WaifuPics, false)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/waifuPics/sfw/waifu.png", img.URL)
}

func TestClient_FetchImage_RelayBypassesRetryPath(t *testing.T) {
	var apiCalls int32
	api := &http.Client{Transport: &mockTransport{
		RoundTripFunc: func(req *http.Request) (*http.Response, error) {
			atomic.AddInt32(&apiCalls, 1)
			return nil, errConnReset
		},
	}}

	var relayHits []string
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		relayHits = append(relayHits, "first")
		w.WriteHeader(http.StatusForbidden)
	}))
	defer failing.Close()
	working := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		relayHits = append(relayHits, "second")
		assert.Equal(t, "https://api.example/nekosMoe", r.URL.Query().Get("url"))
		_, _ = w.Write([]byte(`{"url":"https://nekos.moe/image/abc"}`))
	}))
	defer working.Close()

	c := newTestClient(t, api, "https://api.example", []string{failing.URL + "/?url=", working.URL + "/?url="})

	img, err := c.FetchImage(context.Background(), provider.NekosMoe, false)
	require.NoError(t, err)
	assert.Equal(t, provider.Image{URL: "https://nekos.moe/image/abc", Source: provider.NekosMoe}, img)
	assert.Equal(t, []string{"first", "second"}, relayHits)
	assert.Zero(t, atomic.LoadInt32(&apiCalls), "direct transport must not be used")
}

func TestClient_FetchImage_Errors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/nekoBot":
			w.WriteHeader(http.StatusInternalServerError)
		case "/nekosLife":
			_, _ = w.Write([]byte(`<html>cloudflare</html>`))
		case "/purr":
			_, _ = w.Write([]byte(`{"link":"https://purrbot.site/x.gif"}`))
		default:
			_, _ = w.Write([]byte(`{"url":"https://cdn.example/ok.png"}`))
		}
	}))
	defer ts.Close()

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer down.Close()

	c := newTestClient(t, ts.Client(), ts.URL, []string{down.URL + "/?url=", down.URL + "/?url="})

	tests := []struct {
		name     string
		id       provider.ID
		explicit bool
		check    func(t *testing.T, err error)
	}{
		{"Unknown provider", provider.ID("bogus"), false, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrUnknownProvider)
		}},
		{"Status", provider.NekoBot, false, func(t *testing.T, err error) {
			var statusErr *HTTPStatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
		}},
		{"Not JSON", provider.NekosLife, false, func(t *testing.T, err error) {
			var parseErr *ParseError
			assert.ErrorAs(t, err, &parseErr)
		}},
		{"Missing field", provider.Purr, false, func(t *testing.T, err error) {
			var missing *MissingFieldError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, provider.Purr, missing.Provider)
		}},
		{"Relay down", provider.NekosMoe, false, func(t *testing.T, err error) {
			var relayErr *RelayError
			require.ErrorAs(t, err, &relayErr)
			assert.Len(t, relayErr.Errs, 2)
		}},
		{"No categories", provider.WaifuPics, true, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, provider.ErrNoCategories)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := c.FetchImage(context.Background(), tt.id, tt.explicit)
			require.Error(t, err)
			assert.Zero(t, img)

			var fetchErr *FetchError
			require.ErrorAs(t, err, &fetchErr)
			assert.Equal(t, tt.id, fetchErr.Provider)
			assert.Contains(t, err.Error(), "failed to fetch from "+string(tt.id))
			tt.check(t, err)
		})
	}
}

func TestClient_FetchImage_Transport(t *testing.T) {
	rec := &recorder{}
	c := newTestClient(t, failingThen(rec, 10, `{}`), "https://api.example", nil)

	_, err := c.FetchImage(context.Background(), provider.NekosBest, false)
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.ErrorIs(t, err, errConnReset)
	assert.Equal(t, 3, rec.count())
}

func TestClient_FetchImage_Concurrent(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(`{"url":"https://cdn.example/a.png"}`))
	}))
	defer ts.Close()

	reg, err := NewRegistry(testProviders(ts.URL)...)
	require.NoError(t, err)
	c := NewClient(reg, NewTransport(ts.Client(), TransportConfig{}), NewRelay(nil, nil))

	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		go func() {
			_, err := c.FetchImage(context.Background(), provider.WaifuPics, false)
			errs <- err
		}()
	}
	for i := 0; i < 20; i++ {
		assert.NoError(t, <-errs)
	}
	assert.Equal(t, int32(20), atomic.LoadInt32(&hits))
}

func TestRegistry(t *testing.T) {
	ps := testProviders("https://api.example")

	t.Run("Complete", func(t *testing.T) {
		reg, err := NewRegistry(ps...)
		require.NoError(t, err)
		assert.Equal(t, provider.AllIDs(), reg.ListProviders())
		assert.Equal(t, "PICRE", reg.DisplayName(provider.PicRe))
		assert.Equal(t, "bogus", reg.DisplayName("bogus"))
		assert.True(t, reg.ConfigFor(provider.NekosMoe).NeedsRelay)
		assert.Panics(t, func() { reg.ConfigFor("bogus") })

		u, err := reg.BuildURL(provider.NekoBot, true, nil)
		require.NoError(t, err)
		assert.Equal(t, "https://api.example/nekoBot", u)

		_, err = reg.BuildURL("bogus", false, nil)
		assert.ErrorIs(t, err, ErrUnknownProvider)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := NewRegistry(ps[1:]...)
		assert.Error(t, err)
	})

	t.Run("Duplicate", func(t *testing.T) {
		_, err := NewRegistry(append(ps, ps[0])...)
		assert.Error(t, err)
	})

	t.Run("Unknown", func(t *testing.T) {
		extra := provider.New("bogus", "Bogus", provider.Config{BaseURL: "https://x"})
		_, err := NewRegistry(append(ps, extra)...)
		assert.True(t, errors.Is(err, ErrUnknownProvider))
	})
}

func TestNewDefaultClient_RequiresRegisteredProviders(t *testing.T) {
	// No provider packages are linked into this test binary.
	_, err := NewDefaultClient(config.DefaultSettings())
	assert.Error(t, err)
}
