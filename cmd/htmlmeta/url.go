package main

import "fmt"

// Run executes the url command.
func (c *URLCmd) Run(deps *Dependencies) error {
	if len(c.URLs) == 1 {
		res, err := deps.Lookup.ForURL(deps.Ctx, c.URLs[0])
		if err != nil {
			return err
		}
		return writeRecords(deps.Stdout, deps.Format, []record{newRecord(res)}, false)
	}

	results, err := deps.Lookup.ForURLs(deps.Ctx, c.URLs, nil)
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
