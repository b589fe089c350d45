package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/siteask"
)

var _ siteask.Reducer = (*LoggingReducer)(nil)

// LoggingReducer wraps a Reducer with debug logging of size reduction.
type LoggingReducer struct {
	next   siteask.Reducer
	logger *slog.Logger
}

// NewLoggingReducer creates a new LoggingReducer.
func NewLoggingReducer(next siteask.Reducer, logger *slog.Logger) *LoggingReducer {
	return &LoggingReducer{next: next, logger: logger}
}

func (r *LoggingReducer) Reduce(html string) (out string, err error) {
	defer func(begin time.Time) {
		r.logger.Debug("reduce",
			"in", len(html),
			"out", len(out),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Reduce(html)
}
