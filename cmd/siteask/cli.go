package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/siteask"
	"github.com/fwojciec/siteask/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Fetcher  siteask.Fetcher
	Reducer  siteask.Reducer
	Resolver *crawl.Resolver
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose  bool          `short:"v" help:"Log every fetch, reduction and oracle call"`
	Timeout  time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
	Browser  bool          `short:"b" help:"Render pages in headless Chrome"`
	Markdown bool          `short:"m" help:"Send pages to the oracle as Markdown instead of HTML"`

	Ask    AskCmd    `cmd:"" default:"withargs" help:"Answer questions about a site (default)"`
	Reduce ReduceCmd `cmd:"" help:"Print the reduced content of a page"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	URL           string   `arg:"" optional:"" help:"Start page URL (prompted when omitted)"`
	Questions     []string `short:"q" name:"question" help:"Question to answer (repeatable)"`
	QuestionsFile string   `name:"questions" type:"path" help:"YAML file with questions"`
	MaxIterations int      `name:"max-iterations" default:"10" help:"Maximum number of pages analyzed"`
	BaseURL       string   `name:"base-url" help:"Base for site-relative links (default: scheme and host of URL)"`
	Model         string   `default:"gemini-2.5-flash" env:"SITEASK_MODEL" help:"Gemini model"`
	Rate          float64  `default:"0" help:"Requests per second per domain (0 disables limiting)"`
	CountTokens   bool     `name:"count-tokens" help:"Record token counts of analyzed pages in the report"`
	Output        string   `short:"o" type:"path" help:"Write the report to a file"`
	Format        string   `short:"f" enum:"text,json,xml" default:"text" help:"Report format (text, json, xml)"`
}

// ReduceCmd is the "reduce" subcommand.
type ReduceCmd struct {
	URL string `arg:"" help:"Page URL"`
}
