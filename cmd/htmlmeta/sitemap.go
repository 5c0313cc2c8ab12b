package main

import (
	"fmt"

	"github.com/fwojciec/htmlmeta"
)

// Run executes the sitemap command.
func (c *SitemapCmd) Run(deps *Dependencies) error {
	filter, err := htmlmeta.NewURLFilter(c.Filter, c.Exclude)
	if err != nil {
		return err
	}

	urls, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.Site, filter)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no pages found in the sitemap of %s", c.Site)
	}
	if c.Limit > 0 && len(urls) > c.Limit {
		urls = urls[:c.Limit]
	}

	results, err := deps.Lookup.ForURLs(deps.Ctx, urls, func(p htmlmeta.Progress) {
		deps.Logger.Debug("lookup progress",
			"url", p.URL,
			"completed", p.Completed,
			"total", p.Total,
			"err", p.Error,
		)
	})
	if err != nil {
		return err
	}

	records, failed := batchRecords(results)
	if err := writeRecords(deps.Stdout, deps.Format, records, true); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d lookups failed", failed, len(results))
	}
	return nil
}
