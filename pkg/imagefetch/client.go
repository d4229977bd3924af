package imagefetch

import (
	"context"
	"math/rand"
	"net/http"

	"github.com/dixieflatline76/Nekofetch/config"
	"github.com/dixieflatline76/Nekofetch/pkg/provider"
	"github.com/dixieflatline76/Nekofetch/util/log"
)

// Fetcher is the dispatch facade seen by callers.
type Fetcher interface {
	FetchImage(ctx context.Context, id provider.ID, explicit bool) (provider.Image, error)
}

// lockedRand draws from the package-level math/rand source, which is safe for concurrent use.
type lockedRand struct{}

func (lockedRand) Intn(n int) int { return rand.Intn(n) }

// Client fetches one image from one provider per call.
type Client struct {
	registry  *Registry
	transport *Transport
	relay     *Relay
	rng       provider.Rand
}

// NewClient creates a Client over the given registry, transport and relay.
func NewClient(registry *Registry, transport *Transport, relay *Relay) *Client {
	return &Client{
		registry:  registry,
		transport: transport,
		relay:     relay,
		rng:       lockedRand{},
	}
}

// NewDefaultClient wires a Client from settings and the registered providers.
// Provider packages must have been linked in, usually via providers/all.
func NewDefaultClient(settings config.Settings) (*Client, error) {
	registry, err := DefaultRegistry()
	if err != nil {
		return nil, err
	}
	httpClient := &http.Client{Timeout: settings.HTTPTimeout}
	transport := NewTransport(httpClient, TransportConfig{
		Backoff:          settings.Backoff,
		ClientDescriptor: settings.Client,
	})
	return NewClient(registry, transport, NewRelay(httpClient, settings.Relays)), nil
}

// WithRand replaces the random source used to pick categories.
// The source must be safe for concurrent use if the Client is shared.
func (c *Client) WithRand(rng provider.Rand) *Client {
	if rng != nil {
		c.rng = rng
	}
	return c
}

// Registry returns the provider registry.
func (c *Client) Registry() *Registry {
	return c.registry
}

// FetchImage fetches one image URL from provider id. Every failure is a *FetchError.
func (c *Client) FetchImage(ctx context.Context, id provider.ID, explicit bool) (provider.Image, error) {
	p, ok := c.registry.Lookup(id)
	if !ok {
		return provider.Image{}, &FetchError{Provider: id, Err: ErrUnknownProvider}
	}

	target, err := p.BuildURL(explicit, c.rng)
	if err != nil {
		return provider.Image{}, &FetchError{Provider: id, Err: err}
	}
	log.Debugf("Fetching %s from %s", id, target)

	var raw []byte
	if p.Config().NeedsRelay {
		raw, err = c.relay.Fetch(ctx, target)
	} else {
		raw, err = c.transport.FetchRaw(ctx, target)
	}
	if err != nil {
		return provider.Image{}, &FetchError{Provider: id, Err: err}
	}

	body, err := ParseBody(raw)
	if err != nil {
		return provider.Image{}, &FetchError{Provider: id, Err: err}
	}
	u, err := Extract(p, body)
	if err != nil {
		return provider.Image{}, &FetchError{Provider: id, Err: err}
	}
	return provider.Image{URL: u, Source: id}, nil
}
