package imagefetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelayURL(t *testing.T) {
	target := "https://nekos.moe/api/v1/random/image?nsfw=false"
	escaped := "https%3A%2F%2Fnekos.moe%2Fapi%2Fv1%2Frandom%2Fimage%3Fnsfw%3Dfalse"

	tests := []struct {
		name     string
		endpoint string
		want     string
	}{
		{"Appended", "https://api.allorigins.win/raw?url=", "https://api.allorigins.win/raw?url=" + escaped},
		{"Placeholder", "https://relay.example/fetch?u={url}&raw=1", "https://relay.example/fetch?u=" + escaped + "&raw=1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelayURL(tt.endpoint, target))
		})
	}
}

func TestRelay_FallsBackToSecondEndpoint(t *testing.T) {
	const target = "https://nekos.moe/api/v1/random/image?nsfw=false"
	var seen []string

	first := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, "first")
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer first.Close()
	second := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, "second")
		assert.Equal(t, target, r.URL.Query().Get("url"))
		_, _ = w.Write([]byte(`{"images":[{"id":"abc"}]}`))
	}))
	defer second.Close()

	relay := NewRelay(http.DefaultClient, []string{first.URL + "/raw?url=", second.URL + "/?url="})
	body, err := relay.Fetch(context.Background(), target)
	require.NoError(t, err)
	assert.JSONEq(t, `{"images":[{"id":"abc"}]}`, string(body))
	assert.Equal(t, []string{"first", "second"}, seen)
}

func TestRelay_AllEndpointsFail(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()

	closed := httptest.NewServer(http.NotFoundHandler())
	closedURL := closed.URL
	closed.Close()

	relay := NewRelay(http.DefaultClient, []string{down.URL + "/?url=", closedURL + "/?url="})
	_, err := relay.Fetch(context.Background(), "https://nekos.moe/x")

	var relayErr *RelayError
	require.ErrorAs(t, err, &relayErr)
	assert.Len(t, relayErr.Errs, 2)
	assert.Equal(t, "https://nekos.moe/x", relayErr.URL)

	var statusErr *HTTPStatusError
	require.ErrorAs(t, relayErr.Errs[0], &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
	assert.Contains(t, err.Error(), "all 2 endpoints")
}

func TestRelay_NoEndpoints(t *testing.T) {
	_, err := NewRelay(nil, nil).Fetch(context.Background(), "https://nekos.moe/x")
	var relayErr *RelayError
	require.ErrorAs(t, err, &relayErr)
	assert.Empty(t, relayErr.Errs)
	assert.Contains(t, err.Error(), "no relay endpoints configured")
}

func TestRelay_EndpointsAreCopied(t *testing.T) {
	endpoints := []string{"https://a.example/?url="}
	relay := NewRelay(nil, endpoints)
	endpoints[0] = "https://mutated.example/"
	assert.Equal(t, []string{"https://a.example/?url="}, relay.Endpoints())
}
