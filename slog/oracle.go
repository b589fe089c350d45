package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/siteask"
)

var _ siteask.Oracle = (*LoggingOracle)(nil)

// LoggingOracle wraps an Oracle with logging.
type LoggingOracle struct {
	next   siteask.Oracle
	logger *slog.Logger
}

// NewLoggingOracle creates a new LoggingOracle.
func NewLoggingOracle(next siteask.Oracle, logger *slog.Logger) *LoggingOracle {
	return &LoggingOracle{next: next, logger: logger}
}

// Analyze logs the page, the number of questions asked and how many of them
// the oracle answered or pointed elsewhere.
func (o *LoggingOracle) Analyze(ctx context.Context, req *siteask.AnalysisRequest) (result *siteask.AnalysisResult, err error) {
	defer func(begin time.Time) {
		var url string
		var questions int
		if req != nil {
			url = req.CurrentURL
			questions = len(req.Questions)
		}
		answered, suggested := result.Counts()
		o.logger.Info("analyze",
			"url", url,
			"questions", questions,
			"answered", answered,
			"suggested", suggested,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return o.next.Analyze(ctx, req)
}
