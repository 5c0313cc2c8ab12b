// Package chardet sniffs page encodings with github.com/gogs/chardet when a
// page declares none.
package chardet

import (
	"net/http"
	"strings"

	"github.com/fwojciec/htmlmeta"
	"github.com/gogs/chardet"
)

// DefaultThreshold is the minimum detector confidence, out of 100, for a
// sniffed encoding to be used.
const DefaultThreshold = 50

// Ensure Resolver implements htmlmeta.CharsetResolver at compile time.
var _ htmlmeta.CharsetResolver = (*Resolver)(nil)

// Resolver wraps a CharsetResolver and falls back to statistical detection
// when the wrapped resolver finds no declared charset.
type Resolver struct {
	next      htmlmeta.CharsetResolver
	threshold int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithThreshold sets the minimum confidence.
// Defaults to DefaultThreshold if not specified.
func WithThreshold(n int) Option {
	return func(r *Resolver) {
		r.threshold = n
	}
}

// NewResolver creates a Resolver decorating next.
func NewResolver(next htmlmeta.CharsetResolver, opts ...Option) *Resolver {
	r := &Resolver{next: next, threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the declared charset if next finds one, otherwise the
// detector's best guess when it is confident enough.
func (r *Resolver) Resolve(html string, header http.Header) (string, bool) {
	if cs, ok := r.next.Resolve(html, header); ok {
		return cs, true
	}

	res, err := chardet.NewHtmlDetector().DetectBest([]byte(html))
	if err != nil || res == nil || res.Confidence < r.threshold {
		return "", false
	}
	return strings.ToLower(res.Charset), true
}
