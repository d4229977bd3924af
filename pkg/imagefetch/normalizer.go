package imagefetch

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/antonholmquist/jason"

	"github.com/dixieflatline76/Nekofetch/pkg/provider"
)

var (
	errEmptyBody   = errors.New("empty response body")
	errInvalidJSON = errors.New("response body is not a single JSON value")
)

// ParseBody decodes raw as a JSON object. Trailing data after the object is an error.
func ParseBody(raw []byte) (*jason.Object, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, &ParseError{Err: errEmptyBody}
	}
	if !json.Valid(raw) {
		return nil, &ParseError{Err: errInvalidJSON}
	}
	obj, err := jason.NewObjectFromBytes(raw)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return obj, nil
}

// Extract returns the image URL p finds in body, or *MissingFieldError.
func Extract(p provider.Provider, body *jason.Object) (string, error) {
	u := strings.TrimSpace(p.ParseResponse(body))
	if u == "" {
		return "", &MissingFieldError{Provider: p.ID(), Field: p.Config().Field}
	}
	return u, nil
}
