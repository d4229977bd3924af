package imagefetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/dixieflatline76/Nekofetch/pkg/sysinfo"
	"github.com/dixieflatline76/Nekofetch/util/log"
)

// errBadRequest marks a request that could not be built. No strategy can fix it.
var errBadRequest = errors.New("failed to create request")

// HeaderProfile is a fixed set of browser-identifying headers.
type HeaderProfile struct {
	Name    string
	Headers map[string]string
}

// The two header profiles selected by client kind.
var (
	DesktopProfile = HeaderProfile{
		Name: "desktop",
		Headers: map[string]string{
			"User-Agent": DesktopUserAgent,
			"Accept":     "application/json",
		},
	}
	MobileProfile = HeaderProfile{
		Name: "mobile",
		Headers: map[string]string{
			"User-Agent":       MobileUserAgent,
			"Accept":           "application/json",
			"Sec-CH-UA-Mobile": "?1",
		},
	}
)

// ProfileFor returns the header profile for a client descriptor.
func ProfileFor(descriptor string) HeaderProfile {
	if sysinfo.Classify(descriptor) == sysinfo.Mobile {
		return MobileProfile
	}
	return DesktopProfile
}

// strategy is one way of issuing the request. Each attempt uses a different one.
type strategy struct {
	name  string
	apply func(req *http.Request)
}

// linearBackOff waits base*(n+1) before retry n+1.
type linearBackOff struct {
	base time.Duration
	n    int
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.n++
	return b.base * time.Duration(b.n)
}

func (b *linearBackOff) Reset() {
	b.n = 0
}

// TransportConfig tunes a Transport.
type TransportConfig struct {
	// Backoff is the base delay; attempt i waits Backoff*(i+1) before the next one.
	Backoff time.Duration
	// ClientDescriptor selects the header profile. Empty means the running process.
	ClientDescriptor string
}

// Transport executes GET requests with a three-strategy retry policy.
// Only errors raised by the call itself advance to the next strategy;
// a non-2xx status is returned at once as *HTTPStatusError.
type Transport struct {
	client     *http.Client
	profile    HeaderProfile
	strategies []strategy
	newBackOff func() backoff.BackOff
}

// NewTransport creates a Transport. A nil client gets a client with a 15 second timeout.
func NewTransport(client *http.Client, cfg TransportConfig) *Transport {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	base := cfg.Backoff
	t := &Transport{
		client:     client,
		profile:    ProfileFor(cfg.ClientDescriptor),
		newBackOff: func() backoff.BackOff { return &linearBackOff{base: base} },
	}
	t.strategies = []strategy{
		{name: t.profile.Name + " headers", apply: t.applyProfile},
		{name: "no identifying headers", apply: suppressIdentity},
		{name: "cors no-cache", apply: corsNoCache},
	}
	return t
}

// Profile returns the header profile used on the first attempt.
func (t *Transport) Profile() HeaderProfile {
	return t.profile
}

// SetBackOffForTesting replaces the wait policy between attempts. fn is called once per fetch.
func (t *Transport) SetBackOffForTesting(fn func() backoff.BackOff) {
	t.newBackOff = fn
}

func (t *Transport) applyProfile(req *http.Request) {
	for k, v := range t.profile.Headers {
		req.Header.Set(k, v)
	}
}

// suppressIdentity sends no User-Agent at all; net/http omits the header when it is set but empty.
func suppressIdentity(req *http.Request) {
	req.Header.Set("User-Agent", "")
}

func corsNoCache(req *http.Request) {
	suppressIdentity(req)
	req.Header.Set("Sec-Fetch-Mode", "cors")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
}

// FetchRaw returns the response body of rawURL.
func (t *Transport) FetchRaw(ctx context.Context, rawURL string) ([]byte, error) {
	attempts := 0
	op := func() ([]byte, error) {
		s := t.strategies[attempts]
		attempts++
		body, err := get(ctx, t.client, rawURL, s.apply)
		if err == nil {
			if attempts > 1 {
				log.Printf("Request to %s succeeded on attempt %d (%s)", rawURL, attempts, s.name)
			}
			return body, nil
		}

		var statusErr *HTTPStatusError
		if errors.As(err, &statusErr) || errors.Is(err, errBadRequest) {
			return nil, backoff.Permanent(err)
		}
		log.Printf("Attempt %d (%s) for %s failed: %v", attempts, s.name, rawURL, err)
		return nil, err
	}

	body, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(t.newBackOff()),
		backoff.WithMaxTries(uint(len(t.strategies))),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Debugf("Waiting %s before attempt %d for %s", next, attempts+1, rawURL)
		}),
	)
	if err == nil {
		return body, nil
	}

	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		err = permanent.Err
	}
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return nil, statusErr
	}
	if errors.Is(err, errBadRequest) {
		return nil, err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, &TransportError{URL: rawURL, Attempts: attempts, Err: ctxErr}
	}
	return nil, &TransportError{URL: rawURL, Attempts: attempts, Err: err}
}

// get issues one GET and reads the body. Non-2xx responses become *HTTPStatusError.
func get(ctx context.Context, client *http.Client, rawURL string, apply func(*http.Request)) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if apply != nil {
		apply(req)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &HTTPStatusError{URL: rawURL, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
