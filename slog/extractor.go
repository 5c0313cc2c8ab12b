package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/htmlmeta"
)

// Ensure LoggingExtractor implements htmlmeta.Extractor.
var _ htmlmeta.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   htmlmeta.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next htmlmeta.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs how many tags it found.
func (e *LoggingExtractor) Extract(in htmlmeta.Input) htmlmeta.Meta {
	begin := time.Now()
	meta := e.next.Extract(in)
	url := in.URL
	if url == "" {
		url = "(none)"
	}
	e.logger.Debug("extract",
		"url", url,
		"tags", len(meta),
		"duration", time.Since(begin),
	)
	return meta
}
