package mock

import (
	"context"

	"github.com/fwojciec/htmlmeta"
)

var _ htmlmeta.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of htmlmeta.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *htmlmeta.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *htmlmeta.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
