// Package lookup orchestrates fetching and extraction. It validates URLs,
// fetches pages through a htmlmeta.Fetcher and hands the body and headers
// to a htmlmeta.Extractor.
package lookup

import (
	"context"
	"net/http"
	"sync"

	"github.com/fwojciec/htmlmeta"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of concurrent lookups in ForURLs.
const DefaultConcurrency = 4

var _ htmlmeta.LookupService = (*Service)(nil)

// Service implements htmlmeta.LookupService.
type Service struct {
	Fetcher   htmlmeta.Fetcher
	Extractor htmlmeta.Extractor

	// RateLimiter, if set, is waited on per host before every fetch.
	RateLimiter htmlmeta.DomainLimiter

	// Concurrency bounds ForURLs. Defaults to DefaultConcurrency.
	Concurrency int
}

// NewService creates a Service.
func NewService(fetcher htmlmeta.Fetcher, extractor htmlmeta.Extractor) *Service {
	return &Service{
		Fetcher:     fetcher,
		Extractor:   extractor,
		Concurrency: DefaultConcurrency,
	}
}

// ForURL validates url, fetches it and extracts its metadata. The URL is
// validated before any network access.
func (s *Service) ForURL(ctx context.Context, url string) (*htmlmeta.Result, error) {
	u, err := htmlmeta.ValidateURL(url)
	if err != nil {
		return nil, err
	}

	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, u.Hostname()); err != nil {
			return nil, htmlmeta.WrapError(err, htmlmeta.EUNREACHABLE, "%s is not reachable. %v", url, err)
		}
	}

	resp, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		if htmlmeta.ErrorCode(err) != htmlmeta.EUNREACHABLE {
			err = htmlmeta.WrapError(err, htmlmeta.EUNREACHABLE, "%s is not reachable. %v", url, err)
		}
		return nil, err
	}

	meta := s.Extractor.Extract(htmlmeta.Input{
		HTML:   string(resp.Body),
		URL:    url,
		Header: resp.Header,
	})

	return &htmlmeta.Result{URL: url, Meta: meta, Response: resp}, nil
}

// FromHTML extracts metadata from html. It never touches the network;
// header and url may be empty.
func (s *Service) FromHTML(html string, header http.Header, url string) *htmlmeta.Result {
	meta := s.Extractor.Extract(htmlmeta.Input{
		HTML:   html,
		URL:    url,
		Header: header,
	})
	return &htmlmeta.Result{URL: url, Meta: meta}
}

// ForURLs looks up every URL with bounded concurrency. Results keep the
// order of urls. Per-URL failures land in BatchResult.Err; the returned
// error is only set when ctx is done, in which case unprocessed URLs are
// left with a nil Result and the context error.
func (s *Service) ForURLs(ctx context.Context, urls []string, progress htmlmeta.ProgressFunc) ([]htmlmeta.BatchResult, error) {
	results := make([]htmlmeta.BatchResult, len(urls))
	for i, u := range urls {
		results[i].URL = u
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var (
		g         errgroup.Group
		mu        sync.Mutex
		completed int
	)
	g.SetLimit(concurrency)

	for i, u := range urls {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			res, err := s.ForURL(ctx, u)
			results[i].Result = res
			results[i].Err = err

			mu.Lock()
			defer mu.Unlock()
			completed++
			if progress != nil {
				progress(htmlmeta.Progress{
					URL:       u,
					Completed: completed,
					Total:     len(urls),
					Error:     err,
				})
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		for i := range results {
			if results[i].Result == nil && results[i].Err == nil {
				results[i].Err = err
			}
		}
		return results, err
	}
	return results, nil
}
