package imagefetch

import (
	"fmt"
	"sync"

	"github.com/dixieflatline76/Nekofetch/pkg/provider"
)

// ProviderFactory creates a provider. Provider packages register one from init().
type ProviderFactory func() provider.Provider

var (
	factoriesMu sync.Mutex
	factories   = make(map[provider.ID]ProviderFactory)
)

// RegisterProvider registers a provider factory under id.
// Registering the same id twice is a programming error and panics.
func RegisterProvider(id provider.ID, factory ProviderFactory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	if _, dup := factories[id]; dup {
		panic(fmt.Sprintf("imagefetch: provider %s registered twice", id))
	}
	factories[id] = factory
}

// Registry maps every provider.ID to exactly one provider. It is read-only after construction.
type Registry struct {
	providers map[provider.ID]provider.Provider
}

// NewRegistry builds a registry and checks that every known ID has exactly one provider.
func NewRegistry(providers ...provider.Provider) (*Registry, error) {
	r := &Registry{providers: make(map[provider.ID]provider.Provider, len(providers))}
	for _, p := range providers {
		if _, dup := r.providers[p.ID()]; dup {
			return nil, fmt.Errorf("duplicate provider %s", p.ID())
		}
		if _, known := provider.ParseID(string(p.ID())); !known {
			return nil, fmt.Errorf("provider %s: %w", p.ID(), ErrUnknownProvider)
		}
		r.providers[p.ID()] = p
	}
	for _, id := range provider.AllIDs() {
		if _, ok := r.providers[id]; !ok {
			return nil, fmt.Errorf("no provider registered for %s", id)
		}
	}
	return r, nil
}

// DefaultRegistry builds a registry from the registered factories.
func DefaultRegistry() (*Registry, error) {
	factoriesMu.Lock()
	providers := make([]provider.Provider, 0, len(factories))
	for _, factory := range factories {
		providers = append(providers, factory())
	}
	factoriesMu.Unlock()
	return NewRegistry(providers...)
}

// Lookup returns the provider for id.
func (r *Registry) Lookup(id provider.ID) (provider.Provider, bool) {
	p, ok := r.providers[id]
	return p, ok
}

// ConfigFor returns the configuration of id. Every ID has one, so a miss
// means the registry was built incorrectly and panics.
func (r *Registry) ConfigFor(id provider.ID) provider.Config {
	p, ok := r.providers[id]
	if !ok {
		panic(fmt.Sprintf("imagefetch: no provider for %s", id))
	}
	return p.Config()
}

// ListProviders returns all supported IDs in listing order.
func (r *Registry) ListProviders() []provider.ID {
	return provider.AllIDs()
}

// DisplayName returns the label of id, falling back to the raw id.
func (r *Registry) DisplayName(id provider.ID) string {
	if p, ok := r.providers[id]; ok && p.DisplayName() != "" {
		return p.DisplayName()
	}
	return string(id)
}

// BuildURL returns the request URL for id in the given rating mode. It performs no I/O.
func (r *Registry) BuildURL(id provider.ID, explicit bool, rng provider.Rand) (string, error) {
	p, ok := r.Lookup(id)
	if !ok {
		return "", ErrUnknownProvider
	}
	return p.BuildURL(explicit, rng)
}
