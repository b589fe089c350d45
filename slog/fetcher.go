// Package slog provides logging decorators for siteask services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/siteask"
)

var _ siteask.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher and logs one record per fetch.
// Failed fetches are logged at warn level.
type LoggingFetcher struct {
	next   siteask.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next siteask.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelWarn
		}
		f.logger.Log(ctx, level, "fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
