package mock

import (
	"context"

	"github.com/fwojciec/htmlmeta"
)

var _ htmlmeta.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of htmlmeta.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*htmlmeta.Response, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*htmlmeta.Response, error) {
	return f.FetchFn(ctx, url)
}
