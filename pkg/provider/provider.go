package provider

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/antonholmquist/jason"
)

// ID identifies an image source. IDs are stable and used as map keys everywhere.
type ID string

// Supported image sources.
const (
	WaifuIm   ID = "waifuIm"
	PicRe     ID = "picRe"
	WaifuPics ID = "waifuPics"
	Purr      ID = "purr"
	NekosMoe  ID = "nekosMoe"
	NekoBot   ID = "nekoBot"
	NekosAPI  ID = "nekosApi"
	NekosBest ID = "nekosBest"
	NekosLife ID = "nekosLife"
)

var allIDs = []ID{WaifuIm, PicRe, WaifuPics, Purr, NekosMoe, NekoBot, NekosAPI, NekosBest, NekosLife}

// AllIDs returns every supported ID in listing order.
func AllIDs() []ID {
	return slices.Clone(allIDs)
}

// ParseID converts a raw string into a known ID.
func ParseID(s string) (ID, bool) {
	id := ID(s)
	return id, slices.Contains(allIDs, id)
}

func (id ID) String() string {
	return string(id)
}

// Image is the normalized result of a successful fetch.
type Image struct {
	URL    string `json:"url"`
	Source ID     `json:"source"`
}

// RatingStyle describes how a provider encodes the content rating in its request URL.
type RatingStyle int

const (
	// RatingNone means the endpoint is fixed and ignores the rating.
	RatingNone RatingStyle = iota
	// RatingQuery toggles the rating with a boolean query parameter.
	RatingQuery
	// RatingPath selects the rating with a sfw/nsfw path segment followed by a category.
	RatingPath
)

// Path segments used by RatingPath providers.
const (
	SafeSegment     = "sfw"
	ExplicitSegment = "nsfw"
)

// ErrNoCategories is returned when a provider has categories but none for the requested rating.
var ErrNoCategories = errors.New("no categories configured for rating")

// Categories holds the category word-lists of a provider, split by rating.
type Categories struct {
	Safe     []string
	Explicit []string
}

// For returns the list matching the rating.
func (c *Categories) For(explicit bool) []string {
	if explicit {
		return c.Explicit
	}
	return c.Safe
}

func (c *Categories) clone() *Categories {
	if c == nil {
		return nil
	}
	return &Categories{Safe: slices.Clone(c.Safe), Explicit: slices.Clone(c.Explicit)}
}

// Extractor pulls the image URL out of a parsed response body.
// It returns "" when nothing usable is found and never panics.
type Extractor func(body *jason.Object) string

// Rand is the random source used to pick a category. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Config is the static description of a provider endpoint.
type Config struct {
	BaseURL     string
	Categories  *Categories // nil when the provider has a single fixed endpoint
	Rating      RatingStyle
	RatingParam string // query parameter name for RatingQuery
	PathSuffix  string // appended after the category for RatingPath
	Field       string // human-readable location of the URL in the response, for errors
	Extractor   Extractor
	NeedsRelay  bool // requests must go through a CORS relay
}

// Provider is the capability every image source implements.
type Provider interface {
	// ID returns the provider identifier.
	ID() ID
	// DisplayName returns the human readable label.
	DisplayName() string
	// Config returns a copy of the provider configuration.
	Config() Config
	// BuildURL returns the request URL for the rating, drawing a category from rng where applicable.
	BuildURL(explicit bool, rng Rand) (string, error)
	// ParseResponse extracts the image URL from the parsed body, or "" if absent.
	ParseResponse(body *jason.Object) string
}

// Base implements Provider from a static Config. Provider packages embed or return it.
type Base struct {
	id   ID
	name string
	cfg  Config
}

// New creates a Base provider. The category lists are copied, so later
// changes to the caller's slices do not reach the provider.
func New(id ID, displayName string, cfg Config) *Base {
	cfg.Categories = cfg.Categories.clone()
	return &Base{id: id, name: displayName, cfg: cfg}
}

func (b *Base) ID() ID {
	return b.id
}

func (b *Base) DisplayName() string {
	return b.name
}

func (b *Base) Config() Config {
	cfg := b.cfg
	cfg.Categories = b.cfg.Categories.clone()
	return cfg
}

// BuildURL composes the request URL. It performs no I/O.
func (b *Base) BuildURL(explicit bool, rng Rand) (string, error) {
	switch b.cfg.Rating {
	case RatingQuery:
		return b.cfg.BaseURL + "?" + b.cfg.RatingParam + "=" + strconv.FormatBool(explicit), nil
	case RatingPath:
		if b.cfg.Categories == nil {
			return b.cfg.BaseURL, nil
		}
		list := b.cfg.Categories.For(explicit)
		if len(list) == 0 {
			return "", fmt.Errorf("%s: %w (explicit=%t)", b.id, ErrNoCategories, explicit)
		}
		segment := SafeSegment
		if explicit {
			segment = ExplicitSegment
		}
		category := list[rng.Intn(len(list))]
		return b.cfg.BaseURL + "/" + segment + "/" + category + b.cfg.PathSuffix, nil
	default:
		return b.cfg.BaseURL, nil
	}
}

// ParseResponse applies the configured extractor.
func (b *Base) ParseResponse(body *jason.Object) string {
	if b.cfg.Extractor == nil || body == nil {
		return ""
	}
	return b.cfg.Extractor(body)
}
