package htmlmeta

import (
	"context"
	"net/http"
)

// LookupService extracts page metadata from URLs or raw HTML.
type LookupService interface {
	// ForURL validates and fetches url and extracts its metadata.
	// Returns EINVALID for malformed or non-http(s) URLs and EUNREACHABLE
	// when the page cannot be fetched.
	ForURL(ctx context.Context, url string) (*Result, error)

	// FromHTML extracts metadata from html without any network access.
	// header and url are optional.
	FromHTML(html string, header http.Header, url string) *Result

	// ForURLs runs ForURL for every url. Failures are reported per URL;
	// only context cancellation stops the batch early.
	ForURLs(ctx context.Context, urls []string, progress ProgressFunc) ([]BatchResult, error)
}

// BatchResult is the outcome for one URL of a batch lookup.
type BatchResult struct {
	URL    string
	Result *Result
	Err    error
}

// Progress reports progress during a batch lookup.
type Progress struct {
	URL       string
	Completed int
	Total     int
	Error     error
}

// ProgressFunc is called as URLs are processed.
type ProgressFunc func(Progress)

// DomainLimiter rate limits requests per domain.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed or ctx is done.
	Wait(ctx context.Context, domain string) error
}
