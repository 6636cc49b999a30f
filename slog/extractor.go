// Package slog provides logging decorators for imgextract services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/imgextract"
)

// Ensure LoggingExtractor implements imgextract.Extractor.
var _ imgextract.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   imgextract.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next imgextract.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(markup string) (images []*imgextract.Image, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("extract",
			"bytes", len(markup),
			"count", len(images),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(markup)
}

// Rewrite delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Rewrite(markup string, images []*imgextract.Image) (out string, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("rewrite",
			"images", len(images),
			"bytes", len(out),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Rewrite(markup, images)
}
