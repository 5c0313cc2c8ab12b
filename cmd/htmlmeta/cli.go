package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/htmlmeta"
	metahttp "github.com/fwojciec/htmlmeta/http"
)

// Output formats.
const (
	formatJSON = "json"
	formatText = "text"
)

// Extractor implementations.
const (
	parserRegex = "regex"
	parserDOM   = "dom"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Format   string
	Lookup   htmlmeta.LookupService
	Sitemaps htmlmeta.SitemapService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config kong.ConfigFlag `help:"Load flags from a JSON file" env:"HTML_META_CONFIG"`

	Format      string        `short:"f" enum:"json,text" default:"json" env:"HTML_META_FORMAT" help:"Output format (json, text)"`
	Parser      string        `enum:"regex,dom" default:"regex" env:"HTML_META_PARSER" help:"Tag extractor (regex, dom)"`
	Sniff       bool          `env:"HTML_META_SNIFF" help:"Guess the encoding of pages that do not declare one"`
	Timeout     time.Duration `short:"t" default:"10s" env:"HTML_META_TIMEOUT" help:"Fetch timeout per page"`
	Accept      string        `default:"text/html" env:"HTML_META_ACCEPT" help:"Accept header sent with every request"`
	UserAgent   []string      `name:"user-agent" sep:"none" env:"HTML_META_USER_AGENT" help:"User-Agent to send, picked at random when repeated"`
	Headers     string        `env:"HTML_META_HEADERS" help:"Extra request headers as name=value|name=value"`
	Concurrency int           `short:"c" default:"4" env:"HTML_META_CONCURRENCY" help:"Concurrent fetch limit"`
	RPS         float64       `name:"rps" env:"HTML_META_RPS" help:"Requests per second per host (0 for no limit)"`
	Retries     int           `env:"HTML_META_RETRIES" help:"Retry failed page fetches with exponential backoff"`
	MaxBody     int64         `name:"max-body" default:"5242880" env:"HTML_META_MAX_BODY" help:"Maximum response body size in bytes"`
	Verbose     bool          `short:"v" env:"HTML_META_VERBOSE" help:"Log requests to stderr"`

	URL     URLCmd     `cmd:"" name:"url" help:"Fetch pages and print their metadata"`
	HTML    HTMLCmd    `cmd:"" name:"html" help:"Extract metadata from an HTML file or stdin"`
	Sitemap SitemapCmd `cmd:"" help:"Discover pages from a site's sitemap and print their metadata"`
}

func (c *CLI) fetcherOptions() []metahttp.Option {
	opts := []metahttp.Option{
		metahttp.WithTimeout(c.Timeout),
		metahttp.WithAccept(c.Accept),
		metahttp.WithHeaderString(c.Headers),
		metahttp.WithMaxBodySize(c.MaxBody),
	}
	if len(c.UserAgent) > 0 {
		opts = append(opts, metahttp.WithUserAgents(c.UserAgent...))
	}
	return opts
}

// URLCmd is the "url" subcommand.
type URLCmd struct {
	URLs []string `arg:"" name:"url" help:"Page URLs"`
}

// HTMLCmd is the "html" subcommand.
type HTMLCmd struct {
	File   string   `arg:"" optional:"" help:"HTML file to read (default: stdin)"`
	URL    string   `name:"url" help:"Page URL, used for the fallback title"`
	Header []string `name:"header" short:"H" sep:"none" help:"Response header as name=value (repeatable)"`
}

// SitemapCmd is the "sitemap" subcommand.
type SitemapCmd struct {
	Site    string   `arg:"" help:"Site URL; a path limits results to pages under it"`
	Filter  []string `short:"F" name:"filter" help:"Only include URLs matching regex (repeatable)"`
	Exclude []string `short:"x" name:"exclude" help:"Exclude URLs matching regex (repeatable)"`
	Limit   int      `short:"n" help:"Look up at most this many pages (0 for all)"`
}
