// Package regexp implements htmlmeta.Extractor and htmlmeta.CharsetResolver
// with regular expressions scanning the raw page source.
//
// Tags whose attributes appear in an unexpected order are missed. This is a
// known limitation kept on purpose; goquery.Extractor parses a full DOM.
package regexp

import (
	"github.com/fwojciec/htmlmeta"
	"github.com/fwojciec/htmlmeta/charset"
)

// Ensure Extractor implements htmlmeta.Extractor at compile time.
var _ htmlmeta.Extractor = (*Extractor)(nil)

// Extractor extracts the title and meta tags of a page.
type Extractor struct {
	resolver htmlmeta.CharsetResolver
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithResolver replaces the charset resolver.
// Defaults to Resolver if not specified.
func WithResolver(r htmlmeta.CharsetResolver) Option {
	return func(e *Extractor) {
		e.resolver = r
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{resolver: NewResolver()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract scans in.HTML for tags, resolves the page encoding and
// normalizes every value to UTF-8. The title key is always present.
func (e *Extractor) Extract(in htmlmeta.Input) htmlmeta.Meta {
	fallbacks := in.Fallbacks()

	meta := make(htmlmeta.Meta)
	for k, v := range ScanTags(in.HTML) {
		meta[k] = &v
	}

	if title, ok := ScanTitle(in.HTML); ok {
		meta[htmlmeta.TitleKey] = &title
	} else if fb, ok := fallbacks[htmlmeta.TitleKey]; ok {
		meta[htmlmeta.TitleKey] = &fb
	} else {
		meta[htmlmeta.TitleKey] = nil
	}

	cs, _ := e.resolver.Resolve(in.HTML, in.Header)
	charset.Apply(meta, cs, fallbacks)

	return meta
}
