package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/siteask"
	"github.com/fwojciec/siteask/crawl"
	"github.com/fwojciec/siteask/gemini"
	"github.com/fwojciec/siteask/goquery"
	"github.com/fwojciec/siteask/htmltomarkdown"
	sitehttp "github.com/fwojciec/siteask/http"
	"github.com/fwojciec/siteask/rod"
	siteslog "github.com/fwojciec/siteask/slog"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Getenv looks up environment variables. Defaults to os.Getenv.
	Getenv func(string) string

	// Services for end-to-end testing. When nil, Run builds the real ones.
	Fetcher      siteask.Fetcher
	Oracle       siteask.Oracle
	TokenCounter siteask.TokenCounter

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Getenv: os.Getenv}
}

// Close releases resources created by Run.
func (m *Main) Close() error {
	var firstErr error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("siteask"),
		kong.Description("Answer questions about a website by following the links an LLM suggests"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) > 0 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	fetcher, err := m.fetcher(cli)
	if err != nil {
		return err
	}
	defer m.Close()

	reducer := siteask.Reducer(goquery.NewReducer())
	if cli.Markdown {
		reducer = htmltomarkdown.NewReducer(reducer, htmltomarkdown.NewConverter())
	}

	if cli.Verbose {
		fetcher = siteslog.NewLoggingFetcher(fetcher, deps.Logger)
		reducer = siteslog.NewLoggingReducer(reducer, deps.Logger)
	}
	deps.Fetcher = fetcher
	deps.Reducer = reducer

	if strings.HasPrefix(kongCtx.Command(), "ask") {
		oracle, err := m.oracle(ctx, cli.Ask.Model, stderr)
		if err != nil {
			return err
		}
		if cli.Verbose {
			oracle = siteslog.NewLoggingOracle(oracle, deps.Logger)
		}

		resolver := &crawl.Resolver{
			Fetcher:       fetcher,
			Reducer:       reducer,
			Oracle:        oracle,
			BaseURL:       cli.Ask.BaseURL,
			MaxIterations: cli.Ask.MaxIterations,
		}
		if cli.Ask.Rate > 0 {
			resolver.Limiter = crawl.NewDomainLimiter(cli.Ask.Rate)
		}
		if cli.Ask.CountTokens {
			tc, err := m.tokenCounter(cli.Ask.Model)
			if err != nil {
				return fmt.Errorf("failed to create token counter: %w", err)
			}
			resolver.TokenCounter = tc
		}
		deps.Resolver = resolver
	}

	return kongCtx.Run(deps)
}

func (m *Main) fetcher(cli *CLI) (siteask.Fetcher, error) {
	if m.Fetcher != nil {
		return m.Fetcher, nil
	}

	if cli.Browser {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
		if err != nil {
			return nil, fmt.Errorf("failed to start browser (Chrome or Chromium must be installed): %w", err)
		}
		m.closers = append(m.closers, f)
		return f, nil
	}

	f := sitehttp.NewFetcher(sitehttp.WithTimeout(cli.Timeout))
	m.closers = append(m.closers, f)
	return f, nil
}

func (m *Main) oracle(ctx context.Context, model string, stderr io.Writer) (siteask.Oracle, error) {
	if m.Oracle != nil {
		return m.Oracle, nil
	}

	apiKey := m.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "Hint: get an API key at https://aistudio.google.com/apikey")
		return nil, siteask.Errorf(siteask.EINVALID, "GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: check that GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	return gemini.NewOracle(client, model), nil
}

func (m *Main) tokenCounter(model string) (siteask.TokenCounter, error) {
	if m.TokenCounter != nil {
		return m.TokenCounter, nil
	}
	return gemini.NewTokenCounter(model)
}
