package htmlmeta

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Response is a fetched page.
type Response struct {
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Fetcher retrieves pages over HTTP.
type Fetcher interface {
	// Fetch issues a GET for url. Every failure, including non-2xx
	// statuses and timeouts, is reported as EUNREACHABLE.
	Fetch(ctx context.Context, url string) (*Response, error)
}

// ValidateURL checks that raw is a well-formed http or https URL with a
// host. It returns EINVALID otherwise.
func ValidateURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, invalidURL(raw, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return nil, invalidURL(raw, nil)
	}
	if u.Hostname() == "" || u.Opaque != "" {
		return nil, invalidURL(raw, nil)
	}
	return u, nil
}

func invalidURL(raw string, err error) error {
	return WrapError(err, EINVALID, "%s is not a valid URL to parse its HTML meta.", raw)
}
