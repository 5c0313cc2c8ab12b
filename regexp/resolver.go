package regexp

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/fwojciec/htmlmeta"
)

// Ensure Resolver implements htmlmeta.CharsetResolver at compile time.
var _ htmlmeta.CharsetResolver = (*Resolver)(nil)

var (
	metaCharsetPattern = regexp.MustCompile(`(?i)<\s*meta\s*charset="?([^>"]*)"?\s*/?\s*>`)
	httpEquivPattern   = regexp.MustCompile(`(?i)<\s*meta\s*http-equiv="?content-type"?\s*content="?([^>"]*)"?\s*/?\s*>`)
)

const charsetParam = "charset="

// Resolver determines a page's character encoding from, in order:
// the <meta charset> tag, the Content-Type response header and the
// <meta http-equiv="content-type"> tag. The first signal found wins.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve returns the lower-cased encoding name. The name is not
// validated; unknown names are left for decoding to reject.
func (r *Resolver) Resolve(html string, header http.Header) (string, bool) {
	if m := metaCharsetPattern.FindStringSubmatch(html); m != nil {
		if cs := strings.ToLower(strings.TrimSpace(m[1])); cs != "" {
			return cs, true
		}
	}

	if ct, ok := htmlmeta.HeaderValue(header, "Content-Type"); ok {
		if cs, ok := charsetFrom(ct); ok {
			return cs, true
		}
	}

	if m := httpEquivPattern.FindStringSubmatch(html); m != nil {
		if cs, ok := charsetFrom(m[1]); ok {
			return cs, true
		}
	}

	return "", false
}

// charsetFrom returns everything after "charset=" in a content type.
// An empty remainder is not a signal.
func charsetFrom(contentType string) (string, bool) {
	lower := strings.ToLower(contentType)
	i := strings.Index(lower, charsetParam)
	if i < 0 {
		return "", false
	}
	cs := strings.TrimSpace(lower[i+len(charsetParam):])
	if cs == "" {
		return "", false
	}
	return cs, true
}
