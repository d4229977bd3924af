package imagefetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dixieflatline76/Nekofetch/util/log"
)

// Relay fetches a target through public CORS relay endpoints.
// Endpoints are tried once each in order, with no backoff between them.
type Relay struct {
	client    *http.Client
	endpoints []string
}

// NewRelay creates a Relay. A nil client gets a client with a 15 second timeout.
func NewRelay(client *http.Client, endpoints []string) *Relay {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Relay{client: client, endpoints: append([]string(nil), endpoints...)}
}

// Endpoints returns the relay endpoints in the order they are tried.
func (r *Relay) Endpoints() []string {
	return append([]string(nil), r.endpoints...)
}

// RelayURL builds the URL that asks endpoint to fetch target.
func RelayURL(endpoint, target string) string {
	escaped := url.QueryEscape(target)
	if strings.Contains(endpoint, relayPlaceholder) {
		return strings.ReplaceAll(endpoint, relayPlaceholder, escaped)
	}
	return endpoint + escaped
}

// Fetch returns the body of target from the first endpoint that answers with a 2xx status.
func (r *Relay) Fetch(ctx context.Context, target string) ([]byte, error) {
	errs := make([]error, 0, len(r.endpoints))
	for i, endpoint := range r.endpoints {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		relayed := RelayURL(endpoint, target)
		body, err := get(ctx, r.client, relayed, nil)
		if err == nil {
			log.Debugf("Relay %d served %s", i+1, target)
			return body, nil
		}
		log.Printf("Relay %s failed for %s: %v", endpoint, target, err)
		errs = append(errs, fmt.Errorf("relay %s: %w", endpoint, err))
	}
	return nil, &RelayError{URL: target, Errs: errs}
}
