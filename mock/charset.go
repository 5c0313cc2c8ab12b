package mock

import (
	"net/http"

	"github.com/fwojciec/htmlmeta"
)

var _ htmlmeta.CharsetResolver = (*CharsetResolver)(nil)

// CharsetResolver is a mock implementation of htmlmeta.CharsetResolver.
type CharsetResolver struct {
	ResolveFn func(html string, header http.Header) (string, bool)
}

func (r *CharsetResolver) Resolve(html string, header http.Header) (string, bool) {
	return r.ResolveFn(html, header)
}
