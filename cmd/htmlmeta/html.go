package main

import (
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/fwojciec/htmlmeta"
)

// Run executes the html command. Nothing is fetched.
func (c *HTMLCmd) Run(deps *Dependencies) error {
	header, err := parseHeaders(c.Header)
	if err != nil {
		return err
	}

	var r io.Reader = deps.Stdin
	if c.File != "" && c.File != "-" {
		f, err := os.Open(c.File)
		if err != nil {
			return htmlmeta.WrapError(err, htmlmeta.EINVALID, "cannot read %s: %v", c.File, err)
		}
		defer f.Close()
		r = f
	}
	if r == nil {
		return htmlmeta.Errorf(htmlmeta.EINVALID, "no HTML input")
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return htmlmeta.WrapError(err, htmlmeta.EINVALID, "cannot read HTML: %v", err)
	}

	res := deps.Lookup.FromHTML(string(body), header, c.URL)
	return writeRecords(deps.Stdout, deps.Format, []record{newRecord(res)}, false)
}

// parseHeaders turns name=value pairs into a header map. Repeated names
// keep every value in order.
func parseHeaders(pairs []string) (http.Header, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	header := make(http.Header, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, htmlmeta.Errorf(htmlmeta.EINVALID, "invalid header %q, expected name=value", p)
		}
		header.Add(name, strings.TrimSpace(value))
	}
	return header, nil
}
