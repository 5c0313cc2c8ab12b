package lookup

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/htmlmeta"
)

var _ htmlmeta.Fetcher = (*RetryFetcher)(nil)

// RetryDelays returns n exponential backoff delays starting at 1s: 1s, 2s, 4s...
func RetryDelays(n int) []time.Duration {
	delays := make([]time.Duration, n)
	d := time.Second
	for i := range delays {
		delays[i] = d
		d *= 2
	}
	return delays
}

// RetryFetcher retries failed fetches, waiting delays[i] before retry i+1.
// It makes len(delays)+1 attempts at most.
type RetryFetcher struct {
	next   htmlmeta.Fetcher
	delays []time.Duration
	logger *slog.Logger
}

// NewRetryFetcher creates a RetryFetcher. logger may be nil.
func NewRetryFetcher(next htmlmeta.Fetcher, delays []time.Duration, logger *slog.Logger) *RetryFetcher {
	return &RetryFetcher{next: next, delays: delays, logger: logger}
}

// Fetch calls the wrapped fetcher until it succeeds, the attempts run out or
// ctx is done. The last fetch error is returned.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) (*htmlmeta.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= len(f.delays); attempt++ {
		resp, err := f.next.Fetch(ctx, url)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if attempt == len(f.delays) {
			break
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if f.logger != nil {
			f.logger.Debug("retry", "url", url, "attempt", attempt+2, "err", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.delays[attempt]):
		}
	}
	return nil, lastErr
}
