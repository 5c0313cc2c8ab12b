// Package http provides the HTTP implementations of htmlmeta.Fetcher and
// htmlmeta.SitemapService.
package http

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/fwojciec/htmlmeta"
)

// Defaults for a Fetcher.
const (
	DefaultTimeout     = 10 * time.Second
	DefaultAccept      = "text/html"
	DefaultUserAgent   = "htmlmeta/1 (+https://github.com/fwojciec/htmlmeta)"
	DefaultMaxBodySize = 5 << 20
)

// Ensure Fetcher implements htmlmeta.Fetcher at compile time.
var _ htmlmeta.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages with plain HTTP GET requests.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	accept      string
	userAgents  []string
	headers     http.Header
	maxBodySize int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for the whole request, body included.
// Defaults to DefaultTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithAccept sets the Accept header sent with every request.
func WithAccept(accept string) Option {
	return func(f *Fetcher) {
		f.accept = accept
	}
}

// WithUserAgents sets the candidate User-Agent strings. One is picked at
// random for every request. Empty strings are ignored.
func WithUserAgents(agents ...string) Option {
	return func(f *Fetcher) {
		f.userAgents = f.userAgents[:0]
		for _, a := range agents {
			if a != "" {
				f.userAgents = append(f.userAgents, a)
			}
		}
	}
}

// WithHeaders adds custom headers to every request. User-Agent and Accept
// are ignored; use WithUserAgents and WithAccept instead.
func WithHeaders(headers map[string]string) Option {
	return func(f *Fetcher) {
		for name, value := range headers {
			if isReservedHeader(name) {
				continue
			}
			f.headers.Set(name, value)
		}
	}
}

// WithHeaderString adds custom headers given as a pipe-delimited
// "name=value|name=value" string. See ParseHeaderString.
func WithHeaderString(s string) Option {
	return WithHeaders(ParseHeaderString(s))
}

// WithClient sets the underlying HTTP client. Its transport, cookie jar and
// redirect policy are used; the timeout is still controlled by WithTimeout.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithMaxBodySize caps how many bytes of a response body are read.
// Longer bodies are truncated. Defaults to DefaultMaxBodySize (5 MiB).
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// NewFetcher creates a new Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultTimeout,
		accept:      DefaultAccept,
		userAgents:  []string{DefaultUserAgent},
		headers:     make(http.Header),
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	var client http.Client
	if f.client != nil {
		client = *f.client
	}
	client.Timeout = f.timeout
	f.client = &client

	return f
}

// Fetch retrieves the page at url. Every failure is returned as
// htmlmeta.EUNREACHABLE with the underlying error as its cause.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*htmlmeta.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, unreachable(url, err)
	}
	req.Header = f.headers.Clone()
	if f.accept != "" {
		req.Header.Set("Accept", f.accept)
	}
	if ua := f.userAgent(); ua != "" {
		req.Header.Set("User-Agent", ua)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, unreachable(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, unreachable(url, fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, unreachable(url, err)
	}

	return &htmlmeta.Response{
		URL:        resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

func (f *Fetcher) userAgent() string {
	switch len(f.userAgents) {
	case 0:
		return ""
	case 1:
		return f.userAgents[0]
	default:
		return f.userAgents[rand.IntN(len(f.userAgents))]
	}
}

func unreachable(url string, err error) error {
	return htmlmeta.WrapError(err, htmlmeta.EUNREACHABLE, "%s is not reachable. %v", url, err)
}
