package imagefetch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dixieflatline76/Nekofetch/pkg/provider"
)

// ErrUnknownProvider is returned for an ID that has no registered provider.
var ErrUnknownProvider = errors.New("unknown image provider")

// TransportError reports that every retry strategy failed.
type TransportError struct {
	URL      string
	Attempts int
	Err      error // last attempt error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPStatusError reports a non-2xx response. It is never retried.
type HTTPStatusError struct {
	URL  string
	Code int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.URL, e.Code)
}

// ParseError reports a body that is not a JSON object.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MissingFieldError reports a parsed body without a usable image URL.
type MissingFieldError struct {
	Provider provider.ID
	Field    string
}

func (e *MissingFieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("no image URL found in %s response", e.Provider)
	}
	return fmt.Sprintf("no image URL found in %s response (expected %s)", e.Provider, e.Field)
}

// RelayError reports that every relay endpoint failed.
type RelayError struct {
	URL  string
	Errs []error // one per endpoint, in order
}

func (e *RelayError) Error() string {
	if len(e.Errs) == 0 {
		return fmt.Sprintf("relay request for %s failed: no relay endpoints configured", e.URL)
	}
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("relay request for %s failed on all %d endpoints: %s", e.URL, len(e.Errs), strings.Join(msgs, "; "))
}

func (e *RelayError) Unwrap() []error {
	return e.Errs
}

// FetchError attaches the provider ID to any failure of FetchImage.
type FetchError struct {
	Provider provider.ID
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch from %s: %v", e.Provider, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
