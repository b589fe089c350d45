package siteask

import "context"

// AnalysisRequest is the input to a single oracle call.
type AnalysisRequest struct {
	// Content is the reduced page content.
	Content string

	// Questions holds the questions still awaiting resolution.
	Questions QuestionSet

	// CurrentURL is the URL the content was fetched from.
	CurrentURL string

	// SessionID correlates all oracle calls of one run.
	SessionID string
}

// Validate returns an error if the request contains invalid fields.
func (r *AnalysisRequest) Validate() error {
	if r.CurrentURL == "" {
		return Errorf(EINVALID, "current URL required")
	}
	if len(r.Questions) == 0 {
		return Errorf(EINVALID, "at least one question required")
	}
	return nil
}

// Oracle answers questions about a single page.
type Oracle interface {
	// Analyze returns a summary of the page and, for every requested
	// question, either an answer or a suggested link to follow.
	// Returns ESCHEMA if the model output does not match the result schema.
	Analyze(ctx context.Context, req *AnalysisRequest) (*AnalysisResult, error)
}
