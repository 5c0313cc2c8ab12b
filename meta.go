package htmlmeta

import (
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// TitleKey is the reserved key under which the page title is stored.
// It is present in every Meta returned by an Extractor.
const TitleKey = "title"

// Meta maps lower-cased, trimmed tag names to their values.
// A nil value means the tag was present but its value could not be
// produced as valid UTF-8 text. JSON encoding turns nil into null.
type Meta map[string]*string

// Get returns the value for key and whether it is non-nil.
func (m Meta) Get(key string) (string, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", false
	}
	return *v, true
}

// Value returns the value for key or an empty string.
func (m Meta) Value(key string) string {
	v, _ := m.Get(key)
	return v
}

// Title returns the page title or an empty string.
func (m Meta) Title() string {
	return m.Value(TitleKey)
}

// Keys returns the tag names in sorted order.
func (m Meta) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Input is the unit of work for a single extraction.
type Input struct {
	// HTML is the raw page source. It may be in any character encoding.
	HTML string

	// URL is the page origin. Optional; only used to derive fallbacks.
	URL string

	// Header holds the HTTP response headers, if any. Lookups are
	// case-insensitive regardless of how the keys were written.
	Header http.Header
}

// Fallbacks returns the substitute values used when a tag value cannot be
// produced. Only the title has a fallback: the host of the input URL.
func (in Input) Fallbacks() map[string]string {
	fallbacks := make(map[string]string, 1)
	if in.URL == "" {
		return fallbacks
	}
	u, err := url.Parse(in.URL)
	if err != nil || u.Hostname() == "" {
		return fallbacks
	}
	fallbacks[TitleKey] = u.Hostname()
	return fallbacks
}

// HeaderValue returns the first value of the named header using a
// case-insensitive match on the key.
func HeaderValue(h http.Header, name string) (string, bool) {
	if v, ok := h[http.CanonicalHeaderKey(name)]; ok && len(v) > 0 {
		return v[0], true
	}
	for k, v := range h {
		if strings.EqualFold(k, name) && len(v) > 0 {
			return v[0], true
		}
	}
	return "", false
}

// Extractor builds a Meta from a page.
// Implementations never fail: undecodable values degrade to a fallback
// or nil.
type Extractor interface {
	Extract(in Input) Meta
}

// CharsetResolver determines the character encoding of a page from its
// source and response headers. It returns false when no signal is found.
type CharsetResolver interface {
	Resolve(html string, header http.Header) (charset string, ok bool)
}

// Result is the outcome of a lookup.
type Result struct {
	// URL is the requested URL. Empty for HTML passed in directly
	// without an origin.
	URL string `json:"url,omitempty"`

	// Meta holds the extracted tags.
	Meta Meta `json:"meta"`

	// Response is the fetched response, nil when no fetch happened.
	Response *Response `json:"-"`
}
