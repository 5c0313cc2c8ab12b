// Package goquery implements htmlmeta.Extractor on a parsed DOM using
// github.com/PuerkitoBio/goquery.
//
// Unlike regexp.Extractor it finds tags regardless of attribute order or
// quoting. The HTML parser decodes entities in attribute values and titles
// before normalization, so doubly escaped values end up decoded twice.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/htmlmeta"
	"github.com/fwojciec/htmlmeta/charset"
	"github.com/fwojciec/htmlmeta/regexp"
)

// Ensure Extractor implements htmlmeta.Extractor at compile time.
var _ htmlmeta.Extractor = (*Extractor)(nil)

// Extractor extracts the title and meta tags of a page from its DOM.
type Extractor struct {
	resolver htmlmeta.CharsetResolver
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithResolver replaces the charset resolver.
// Defaults to regexp.Resolver if not specified.
func WithResolver(r htmlmeta.CharsetResolver) Option {
	return func(e *Extractor) {
		e.resolver = r
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{resolver: regexp.NewResolver()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses in.HTML and collects every meta tag carrying a name or
// property attribute and a content attribute. Values are normalized the
// same way as regexp.Extractor; the title key is always present.
func (e *Extractor) Extract(in htmlmeta.Input) htmlmeta.Meta {
	fallbacks := in.Fallbacks()
	meta := make(htmlmeta.Meta)

	var title *string
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(in.HTML))
	if err == nil {
		doc.Find("meta[name], meta[property]").Each(func(_ int, sel *goquery.Selection) {
			content, ok := sel.Attr("content")
			if !ok {
				return
			}
			key, ok := sel.Attr("name")
			if !ok {
				key, _ = sel.Attr("property")
			}
			meta[strings.ToLower(strings.TrimSpace(key))] = &content
		})

		if sel := doc.Find("title").First(); sel.Length() > 0 {
			t := strings.Join(strings.Fields(sel.Text()), " ")
			title = &t
		}
	}

	if title != nil {
		meta[htmlmeta.TitleKey] = title
	} else if fb, ok := fallbacks[htmlmeta.TitleKey]; ok {
		meta[htmlmeta.TitleKey] = &fb
	} else {
		meta[htmlmeta.TitleKey] = nil
	}

	cs, _ := e.resolver.Resolve(in.HTML, in.Header)
	charset.Apply(meta, cs, fallbacks)

	return meta
}
