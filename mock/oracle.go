package mock

import (
	"context"

	"github.com/fwojciec/siteask"
)

var _ siteask.Oracle = (*Oracle)(nil)

// Oracle is a mock implementation of siteask.Oracle.
type Oracle struct {
	AnalyzeFn func(ctx context.Context, req *siteask.AnalysisRequest) (*siteask.AnalysisResult, error)
}

func (o *Oracle) Analyze(ctx context.Context, req *siteask.AnalysisRequest) (*siteask.AnalysisResult, error) {
	return o.AnalyzeFn(ctx, req)
}
