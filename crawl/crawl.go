// Package crawl answers questions about a site by following the links an
// oracle suggests. Each run walks the site depth-first: it analyzes a page,
// then chases every still-unanswered question into the page the oracle
// pointed at, merging answers found further down back into the parent's
// result. A shared iteration budget and visited set bound the walk.
package crawl

import (
	"context"
	"errors"
	"strings"

	"github.com/fwojciec/siteask"
	"github.com/google/uuid"
)

// DefaultMaxIterations is the page analysis cap used when none is configured.
const DefaultMaxIterations = 10

// Resolver drives the recursive question resolution.
// A Resolver holds no per-run state and may start any number of runs.
type Resolver struct {
	Fetcher siteask.Fetcher
	Reducer siteask.Reducer
	Oracle  siteask.Oracle

	// Limiter delays fetches per domain. Optional.
	Limiter siteask.DomainLimiter

	// TokenCounter measures reduced page content for the report. Optional.
	TokenCounter siteask.TokenCounter

	// BaseURL resolves path-absolute link suggestions.
	// Defaults to the scheme and host of the start URL.
	BaseURL string

	// MaxIterations caps page analyses across the whole run.
	// Defaults to DefaultMaxIterations.
	MaxIterations int
}

// Report is the outcome of a run.
type Report struct {
	SessionID     string                  `json:"session_id"`
	StartURL      string                  `json:"start_url"`
	Result        *siteask.AnalysisResult `json:"result"`
	Iterations    int                     `json:"iterations"`
	MaxIterations int                     `json:"max_iterations"`
	Visits        []Visit                 `json:"visits"`
}

// Visit records one page fetch attempt.
type Visit struct {
	URL         string `json:"url"`
	Depth       int    `json:"depth"`
	Outcome     string `json:"outcome"`
	Fingerprint string `json:"fingerprint,omitempty"`
	Bytes       int    `json:"bytes"`
	Tokens      int    `json:"tokens,omitempty"`
	Error       string `json:"error,omitempty"`
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type       ProgressType
	URL        string
	Depth      int
	Iteration  int
	QuestionID string
	Outcome    FetchOutcome
	Answered   int
	Suggested  int
	Error      error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	// ProgressVisit is sent before a page is fetched.
	ProgressVisit ProgressType = iota
	// ProgressDeadEnd is sent when a fetch yields no content.
	ProgressDeadEnd
	// ProgressAnalyzed is sent after the oracle analyzed a page.
	ProgressAnalyzed
	// ProgressFollow is sent before a question is chased into a link.
	ProgressFollow
	// ProgressExhausted is sent when a branch is cut off by the budget.
	ProgressExhausted
	// ProgressBranchFailed is sent when a child branch fails and is dropped.
	ProgressBranchFailed
)

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// Resolve answers questions starting from startURL.
//
// The returned report always lists every question: questions the run could
// not resolve are reported unanswered. A failure in a followed branch only
// drops that branch; a failure analyzing the start page is returned.
func (r *Resolver) Resolve(ctx context.Context, startURL string, questions siteask.QuestionSet, progress ProgressFunc) (*Report, error) {
	startURL = strings.TrimSpace(startURL)
	if startURL == "" {
		return nil, siteask.Errorf(siteask.EINVALID, "start URL required")
	}
	if err := questions.Validate(); err != nil {
		return nil, err
	}

	maxIterations := r.MaxIterations
	if maxIterations == 0 {
		maxIterations = DefaultMaxIterations
	}
	if maxIterations < 1 {
		return nil, siteask.Errorf(siteask.EINVALID, "max iterations must be at least 1, got %d", maxIterations)
	}

	baseURL := r.BaseURL
	if baseURL == "" {
		var err error
		if baseURL, err = BaseURLOf(startURL); err != nil {
			return nil, err
		}
	}

	rn := &run{
		resolver:  r,
		sessionID: uuid.NewString(),
		baseURL:   baseURL,
		budget:    &Budget{Max: maxIterations},
		pages:     NewPageFetcher(r.Fetcher, r.Limiter, NewVisitedSet()),
		progress:  progress,
	}

	result, err := rn.resolve(ctx, startURL, questions, 0)
	if err != nil {
		return nil, err
	}

	return &Report{
		SessionID:     rn.sessionID,
		StartURL:      startURL,
		Result:        coverQuestions(result, startURL, questions),
		Iterations:    rn.budget.Count,
		MaxIterations: rn.budget.Max,
		Visits:        rn.visits,
	}, nil
}

// run holds the state shared by every branch of one Resolve call.
type run struct {
	resolver  *Resolver
	sessionID string
	baseURL   string
	budget    *Budget
	pages     *PageFetcher
	progress  ProgressFunc
	visits    []Visit
}

// resolve analyzes one page and chases its unanswered questions.
// It returns an empty result when the budget is spent or the page yields
// no content.
func (rn *run) resolve(ctx context.Context, pageURL string, questions siteask.QuestionSet, depth int) (*siteask.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !rn.budget.Take() {
		rn.emit(ProgressEvent{Type: ProgressExhausted, URL: pageURL, Depth: depth, Iteration: rn.budget.Count})
		return &siteask.AnalysisResult{}, nil
	}

	rn.emit(ProgressEvent{Type: ProgressVisit, URL: pageURL, Depth: depth, Iteration: rn.budget.Count})

	fetched := rn.pages.Fetch(ctx, pageURL)
	visit := Visit{
		URL:         fetched.URL,
		Depth:       depth,
		Outcome:     fetched.Outcome.String(),
		Fingerprint: Fingerprint(fetched.HTML),
		Bytes:       len(fetched.HTML),
	}
	if fetched.Err != nil {
		visit.Error = fetched.Err.Error()
	}
	idx := len(rn.visits)
	rn.visits = append(rn.visits, visit)

	if fetched.Outcome != FetchOK {
		rn.emit(ProgressEvent{
			Type:      ProgressDeadEnd,
			URL:       fetched.URL,
			Depth:     depth,
			Iteration: rn.budget.Count,
			Outcome:   fetched.Outcome,
			Error:     fetched.Err,
		})
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return &siteask.AnalysisResult{}, nil
	}

	content, err := rn.resolver.Reducer.Reduce(fetched.HTML)
	if err != nil {
		return nil, err
	}
	rn.visits[idx].Tokens = rn.countTokens(ctx, content)

	req := &siteask.AnalysisRequest{
		Content:    content,
		Questions:  questions,
		CurrentURL: fetched.URL,
		SessionID:  rn.sessionID,
	}
	result, err := rn.resolver.Oracle.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := result.Validate(req); err != nil {
		return nil, err
	}

	answered, suggested := result.Counts()
	rn.emit(ProgressEvent{
		Type:      ProgressAnalyzed,
		URL:       fetched.URL,
		Depth:     depth,
		Iteration: rn.budget.Count,
		Answered:  answered,
		Suggested: suggested,
	})

	for _, id := range questions.IDs() {
		q, ok := result.Questions[id]
		if !ok || !q.Followable() {
			continue
		}

		link := ResolveLink(rn.baseURL, *q.SuggestedLink)
		rn.emit(ProgressEvent{Type: ProgressFollow, URL: link, Depth: depth + 1, QuestionID: id})

		child, err := rn.resolve(ctx, link, questions.Subset(id), depth+1)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil || errors.Is(err, context.Canceled) {
				return nil, err
			}
			rn.emit(ProgressEvent{Type: ProgressBranchFailed, URL: link, Depth: depth + 1, QuestionID: id, Error: err})
			continue
		}

		result.Merge(id, child)
	}

	return result, nil
}

func (rn *run) countTokens(ctx context.Context, content string) int {
	if rn.resolver.TokenCounter == nil || content == "" {
		return 0
	}
	n, err := rn.resolver.TokenCounter.CountTokens(ctx, content)
	if err != nil {
		return 0
	}
	return n
}

func (rn *run) emit(event ProgressEvent) {
	if rn.progress != nil {
		rn.progress(event)
	}
}

// coverQuestions makes sure every requested question appears in the final
// result, adding unanswered entries for questions no page analysis covered.
func coverQuestions(result *siteask.AnalysisResult, startURL string, questions siteask.QuestionSet) *siteask.AnalysisResult {
	if result.IsEmpty() {
		result = &siteask.AnalysisResult{CurrentURL: startURL}
	}
	if result.Questions == nil {
		result.Questions = make(map[string]*siteask.QuestionResult, len(questions))
	}
	for _, id := range questions.IDs() {
		if _, ok := result.Questions[id]; !ok {
			result.Questions[id] = &siteask.QuestionResult{Question: questions[id]}
		}
	}
	return result
}
