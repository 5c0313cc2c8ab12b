package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/htmlmeta"
	"github.com/fwojciec/htmlmeta/chardet"
	"github.com/fwojciec/htmlmeta/goquery"
	metahttp "github.com/fwojciec/htmlmeta/http"
	"github.com/fwojciec/htmlmeta/lookup"
	"github.com/fwojciec/htmlmeta/regexp"
	metaslog "github.com/fwojciec/htmlmeta/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Source of HTML for the html command when no file is given.
	Stdin io.Reader

	// Fetcher replaces the HTTP fetcher for pages and sitemaps when set.
	Fetcher htmlmeta.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("htmlmeta"),
		kong.Description("Extract the title and meta tags of web pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Configuration(kong.JSON),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'htmlmeta --help' to see available commands")
	}

	if len(args) == 1 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Format = cli.Format

	pages, sitemaps := m.Fetcher, m.Fetcher
	if pages == nil {
		pages = metahttp.NewFetcher(cli.fetcherOptions()...)
		sitemaps = metahttp.NewFetcher(append(cli.fetcherOptions(), metahttp.WithAccept(sitemapAccept))...)
	}

	var resolver htmlmeta.CharsetResolver = regexp.NewResolver()
	if cli.Sniff {
		resolver = chardet.NewResolver(resolver)
	}

	var extractor htmlmeta.Extractor
	switch cli.Parser {
	case parserDOM:
		extractor = goquery.NewExtractor(goquery.WithResolver(resolver))
	default:
		extractor = regexp.NewExtractor(regexp.WithResolver(resolver))
	}

	var fetcher htmlmeta.Fetcher = metaslog.NewLoggingFetcher(pages, deps.Logger)
	if cli.Retries > 0 {
		fetcher = lookup.NewRetryFetcher(fetcher, lookup.RetryDelays(cli.Retries), deps.Logger)
	}

	svc := lookup.NewService(
		fetcher,
		metaslog.NewLoggingExtractor(extractor, deps.Logger),
	)
	svc.Concurrency = cli.Concurrency
	if cli.RPS > 0 {
		svc.RateLimiter = lookup.NewDomainLimiter(cli.RPS)
	}
	deps.Lookup = svc

	deps.Sitemaps = metaslog.NewLoggingSitemapService(
		metahttp.NewSitemapService(metaslog.NewLoggingFetcher(sitemaps, deps.Logger)),
		deps.Logger,
	)

	return kongCtx.Run(deps)
}

const sitemapAccept = "application/xml, text/xml, text/plain"
