package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fwojciec/siteask"
	"github.com/fwojciec/siteask/crawl"
	"github.com/fwojciec/siteask/fs"
	siteyaml "github.com/fwojciec/siteask/yaml"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	if c.MaxIterations < 1 {
		return siteask.Errorf(siteask.EINVALID, "--max-iterations must be at least 1, got %d", c.MaxIterations)
	}

	p := newPrompter(deps.Stdin, deps.Stderr)

	startURL := c.URL
	texts := c.Questions
	if c.QuestionsFile != "" {
		file, err := siteyaml.Load(c.QuestionsFile)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", siteask.ErrorMessage(err))
			return err
		}
		texts = append(texts, file.Questions...)
		if startURL == "" {
			startURL = file.URL
		}
	}

	if strings.TrimSpace(startURL) == "" {
		startURL = p.ask("Start URL: ")
	}
	if strings.TrimSpace(startURL) == "" {
		return siteask.Errorf(siteask.EINVALID, "start URL required")
	}

	questions := siteask.NewQuestionSet(texts)
	if len(questions) == 0 {
		questions = siteask.NewQuestionSet(p.questions())
	}
	if err := questions.Validate(); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stderr, "Questions:\n%s\n\n", siteask.FormatQuestions(questions))

	tracker := newProgressTracker(deps.Stderr, c.MaxIterations)
	tracker.Start()
	report, err := deps.Resolver.Resolve(deps.Ctx, startURL, questions, tracker.Handle)
	tracker.Stop()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteask.ErrorMessage(err))
		return err
	}

	for _, w := range tracker.Warnings() {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", w)
	}
	fmt.Fprintf(deps.Stderr, "%s.\n\n", runSummary(report))

	encode := func(w io.Writer) error {
		return encodeReport(w, report, c.Format)
	}
	if c.Output == "" {
		return encode(deps.Stdout)
	}
	out := fs.NewReportWriter(c.Output)
	if err := out.Write(encode); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Fprintf(deps.Stderr, "Report written to %s\n", out.Path())
	return nil
}

// prompter reads answers to interactive prompts one line at a time.
type prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	if in == nil {
		in = strings.NewReader("")
	}
	return &prompter{scanner: bufio.NewScanner(in), out: out}
}

// ask prints label and returns the next line, or "" at end of input.
func (p *prompter) ask(label string) string {
	fmt.Fprint(p.out, label)
	if !p.scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(p.scanner.Text())
}

// questions prompts "Question N: " until an empty line or end of input.
func (p *prompter) questions() []string {
	var out []string
	for n := 1; ; n++ {
		q := p.ask(fmt.Sprintf("Question %d: ", n))
		if q == "" {
			return out
		}
		out = append(out, q)
	}
}

// progressTracker shows the page being analyzed on a spinner and collects
// the problems worth reporting after the run.
type progressTracker struct {
	spinner       *spinner.Spinner
	maxIterations int
	warnings      []string
}

// newProgressTracker attaches a spinner when w is a file such as os.Stderr.
// Other writers only collect warnings.
func newProgressTracker(w io.Writer, maxIterations int) *progressTracker {
	t := &progressTracker{maxIterations: maxIterations}
	if f, ok := w.(*os.File); ok {
		t.spinner = spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(f))
	}
	return t
}

func (t *progressTracker) Start() {
	if t.spinner != nil {
		t.spinner.Start()
	}
}

func (t *progressTracker) Stop() {
	if t.spinner != nil {
		t.spinner.Stop()
	}
}

// Handle is a crawl.ProgressFunc.
func (t *progressTracker) Handle(e crawl.ProgressEvent) {
	switch e.Type {
	case crawl.ProgressVisit:
		if t.spinner == nil {
			return
		}
		t.spinner.Lock()
		t.spinner.Suffix = fmt.Sprintf(" [%d/%d] %s", e.Iteration, t.maxIterations, crawl.TruncateURL(e.URL, 60))
		t.spinner.Unlock()
	case crawl.ProgressDeadEnd:
		if e.Outcome == crawl.FetchFailed {
			t.warnings = append(t.warnings, fmt.Sprintf("could not fetch %s: %v", e.URL, e.Error))
		}
	case crawl.ProgressBranchFailed:
		t.warnings = append(t.warnings, fmt.Sprintf("dropped question %s at %s: %v", e.QuestionID, e.URL, e.Error))
	case crawl.ProgressExhausted:
		t.warnings = append(t.warnings, fmt.Sprintf("iteration limit reached before visiting %s", e.URL))
	}
}

// Warnings returns the collected warnings in the order they occurred.
func (t *progressTracker) Warnings() []string {
	return t.warnings
}

// runSummary describes how much of the budget and the site a run consumed.
// Dead ends use up iterations without being analyzed.
func runSummary(report *crawl.Report) string {
	var analyzed, size, tokens int
	for _, v := range report.Visits {
		if v.Outcome == crawl.FetchOK.String() {
			analyzed++
		}
		size += v.Bytes
		tokens += v.Tokens
	}
	summary := fmt.Sprintf("Used %d of %d iterations (%d analyzed), %s fetched",
		report.Iterations, report.MaxIterations, analyzed, crawl.FormatBytes(size))
	if tokens > 0 {
		summary += ", " + crawl.FormatTokens(tokens)
	}
	return summary
}
