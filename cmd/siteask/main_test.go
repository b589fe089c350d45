package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/siteask"
	main "github.com/fwojciec/siteask/cmd/siteask"
	"github.com/fwojciec/siteask/crawl"
	"github.com/fwojciec/siteask/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const homeHTML = `<html><head><title>Acme</title></head><body class="page"><a href="/contact" title="Contact us">Contact</a></body></html>`
const contactHTML = `<html><body><p>Email hi@acme.test</p></body></html>`

// siteFetcher serves pages from a map keyed by URL.
func siteFetcher(pages map[string]string, fetched *[]string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			if fetched != nil {
				*fetched = append(*fetched, url)
			}
			html, ok := pages[url]
			if !ok {
				return "", errors.New("HTTP 404")
			}
			return html, nil
		},
		CloseFn: func() error { return nil },
	}
}

// contactOracle answers every question on pages mentioning the email and
// points at /contact everywhere else.
func contactOracle() *mock.Oracle {
	return &mock.Oracle{
		AnalyzeFn: func(_ context.Context, req *siteask.AnalysisRequest) (*siteask.AnalysisResult, error) {
			result := &siteask.AnalysisResult{
				Summary:    "page " + req.CurrentURL,
				CurrentURL: req.CurrentURL,
				Questions:  make(map[string]*siteask.QuestionResult),
			}
			for id, q := range req.Questions {
				if strings.Contains(req.Content, "hi@acme.test") {
					answer := "hi@acme.test"
					result.Questions[id] = &siteask.QuestionResult{Question: q, Answer: &answer}
					continue
				}
				link := "/contact"
				result.Questions[id] = &siteask.QuestionResult{Question: q, SuggestedLink: &link}
			}
			return result, nil
		},
	}
}

func newTestMain(fetched *[]string) *main.Main {
	m := main.NewMain()
	m.Getenv = func(string) string { return "" }
	m.Fetcher = siteFetcher(map[string]string{
		"https://acme.test":         homeHTML,
		"https://acme.test/contact": contactHTML,
	}, fetched)
	m.Oracle = contactOracle()
	return m
}

func TestMain_Run_HelpShowsCommands(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), []string{"--help"}, nil, stdout, stderr)

	require.NoError(t, err)
	help := stdout.String()
	assert.Contains(t, help, "Usage:")
	assert.Contains(t, help, "Flags:")
	assert.Contains(t, help, "ask")
	assert.Contains(t, help, "reduce")
}

func TestMain_Run_Ask(t *testing.T) {
	t.Parallel()

	t.Run("follows suggestion and prints answer", func(t *testing.T) {
		t.Parallel()

		var fetched []string
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newTestMain(&fetched).Run(context.Background(),
			[]string{"https://acme.test", "-q", "What is the email?"}, nil, stdout, stderr)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://acme.test", "https://acme.test/contact"}, fetched)
		assert.Contains(t, stderr.String(), "Questions:\n01: What is the email?")
		assert.Contains(t, stderr.String(), "Used 2 of 10 iterations (2 analyzed), 171 B fetched.")
		assert.Contains(t, stdout.String(), "Page: https://acme.test\n")
		assert.Contains(t, stdout.String(), "01: What is the email?\n    Answer: hi@acme.test")
	})

	t.Run("prompts for URL and questions when omitted", func(t *testing.T) {
		t.Parallel()

		stdin := strings.NewReader("https://acme.test\nWhat is the email?\nWho runs it?\n\n")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newTestMain(nil).Run(context.Background(), []string{}, stdin, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "Start URL: ")
		assert.Contains(t, stderr.String(), "Question 1: ")
		assert.Contains(t, stderr.String(), "Question 3: ")
		assert.Contains(t, stdout.String(), "01: What is the email?")
		assert.Contains(t, stdout.String(), "02: Who runs it?")
	})

	t.Run("fails when no questions are entered", func(t *testing.T) {
		t.Parallel()

		stdin := strings.NewReader("\n")
		stdout := &bytes.Buffer{}

		err := newTestMain(nil).Run(context.Background(), []string{"https://acme.test"}, stdin, stdout, &bytes.Buffer{})

		require.Error(t, err)
		assert.Equal(t, siteask.EINVALID, siteask.ErrorCode(err))
		assert.Empty(t, stdout.String())
	})

	t.Run("reads questions and URL from YAML file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "questions.yaml")
		require.NoError(t, os.WriteFile(path, []byte("url: https://acme.test\nquestions:\n  - What is the email?\n"), 0o644))
		stdout := &bytes.Buffer{}

		err := newTestMain(nil).Run(context.Background(), []string{"--questions", path}, nil, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Answer: hi@acme.test")
	})

	t.Run("writes JSON report", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}

		err := newTestMain(nil).Run(context.Background(),
			[]string{"https://acme.test", "-q", "What is the email?", "--format", "json"}, nil, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		var report crawl.Report
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &report))
		assert.Equal(t, "https://acme.test", report.StartURL)
		assert.Equal(t, 2, report.Iterations)
		assert.NotEmpty(t, report.SessionID)
		require.Len(t, report.Visits, 2)
		require.NotNil(t, report.Result.Questions["01"].Answer)
		assert.Equal(t, "hi@acme.test", *report.Result.Questions["01"].Answer)
	})

	t.Run("writes XML report", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}

		err := newTestMain(nil).Run(context.Background(),
			[]string{"https://acme.test", "-q", "What is the email?", "--format", "xml"}, nil, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `<report session="`)
		assert.Contains(t, stdout.String(), "<answer>hi@acme.test</answer>")
	})

	t.Run("writes report to output file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out", "report.txt")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newTestMain(nil).Run(context.Background(),
			[]string{"https://acme.test", "-q", "What is the email?", "-o", path}, nil, stdout, stderr)

		require.NoError(t, err)
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "Report written to")
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Answer: hi@acme.test")
	})

	t.Run("warns about pages that could not be fetched", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(nil)
		m.Fetcher = siteFetcher(map[string]string{"https://acme.test": homeHTML}, nil)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"https://acme.test", "-q", "What is the email?"}, nil, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "warning: could not fetch https://acme.test/contact")
		assert.Contains(t, stderr.String(), "Used 2 of 10 iterations (1 analyzed)")
		assert.Contains(t, stdout.String(), "Unanswered (suggested link: /contact)")
	})

	t.Run("logs fetches and oracle calls with --verbose", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}

		err := newTestMain(nil).Run(context.Background(),
			[]string{"--verbose", "https://acme.test", "-q", "What is the email?"}, nil, &bytes.Buffer{}, stderr)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "msg=fetch url=https://acme.test/contact")
		assert.Contains(t, stderr.String(), "msg=analyze")
		assert.Contains(t, stderr.String(), "msg=reduce")
	})

	t.Run("rejects max iterations below one", func(t *testing.T) {
		t.Parallel()

		err := newTestMain(nil).Run(context.Background(),
			[]string{"https://acme.test", "-q", "q", "--max-iterations", "0"}, nil, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Equal(t, siteask.EINVALID, siteask.ErrorCode(err))
	})

	t.Run("requires API key without injected oracle", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(nil)
		m.Oracle = nil
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"https://acme.test", "-q", "q"}, nil, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Contains(t, siteask.ErrorMessage(err), "GEMINI_API_KEY")
		assert.Contains(t, stderr.String(), "aistudio.google.com")
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		t.Parallel()

		err := newTestMain(nil).Run(context.Background(),
			[]string{"https://acme.test", "-q", "q", "--format", "yaml"}, nil, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
	})
}

func TestMain_Run_Reduce(t *testing.T) {
	t.Parallel()

	t.Run("prints reduced page", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}

		err := newTestMain(nil).Run(context.Background(), []string{"reduce", "https://acme.test"}, nil, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `<a href="/contact" title="Contact us">Contact</a>`)
		assert.NotContains(t, stdout.String(), "<title>")
		assert.NotContains(t, stdout.String(), `class="page"`)
	})

	t.Run("prints Markdown with --markdown", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}

		err := newTestMain(nil).Run(context.Background(), []string{"--markdown", "reduce", "https://acme.test"}, nil, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `[Contact](/contact "Contact us")`)
	})

	t.Run("reports fetch failure", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}

		err := newTestMain(nil).Run(context.Background(), []string{"reduce", "https://acme.test/missing"}, nil, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "could not fetch https://acme.test/missing")
	})
}
