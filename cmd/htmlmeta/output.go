package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/htmlmeta"
)

// record is one printed lookup outcome.
type record struct {
	URL   string        `json:"url,omitempty"`
	Meta  htmlmeta.Meta `json:"meta,omitempty"`
	Error string        `json:"error,omitempty"`
}

func newRecord(res *htmlmeta.Result) record {
	return record{URL: res.URL, Meta: res.Meta}
}

func batchRecords(results []htmlmeta.BatchResult) (records []record, failed int) {
	records = make([]record, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			failed++
			records = append(records, record{URL: r.URL, Error: htmlmeta.ErrorMessage(r.Err)})
			continue
		}
		records = append(records, newRecord(r.Result))
	}
	return records, failed
}

// writeRecords prints records in the given format. JSON output is a single
// object for one record and an array otherwise.
func writeRecords(w io.Writer, format string, records []record, batch bool) error {
	if format == formatText {
		return writeText(w, records)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if !batch && len(records) == 1 {
		return enc.Encode(records[0])
	}
	return enc.Encode(records)
}

func writeText(w io.Writer, records []record) error {
	for i, r := range records {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if r.URL != "" {
			if _, err := fmt.Fprintf(w, "url: %s\n", r.URL); err != nil {
				return err
			}
		}
		if r.Error != "" {
			if _, err := fmt.Fprintf(w, "error: %s\n", r.Error); err != nil {
				return err
			}
			continue
		}
		for _, k := range r.Meta.Keys() {
			v := "(null)"
			if s, ok := r.Meta.Get(k); ok {
				v = s
			}
			if _, err := fmt.Fprintf(w, "  %s: %s\n", k, v); err != nil {
				return err
			}
		}
	}
	return nil
}
