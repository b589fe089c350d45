// Package rod fetches pages through a headless Chrome so that sites which
// build their navigation with JavaScript can still be analyzed.
package rod

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/siteask"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds navigation plus load of a single page.
const DefaultFetchTimeout = 10 * time.Second

var _ siteask.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using a headless browser.
type Fetcher struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
	bin      string

	mu     sync.Mutex
	closed bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithBrowserBin uses the given Chrome binary instead of looking one up.
func WithBrowserBin(path string) Option {
	return func(f *Fetcher) {
		f.bin = path
	}
}

// NewFetcher launches a headless browser. Close must be called to stop it.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}

	l := launcher.New().Headless(true)
	if f.bin != "" {
		l = l.Bin(f.bin)
	}
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = l
	return f, nil
}

// Fetch navigates a fresh tab to url and returns the rendered document.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	closed := f.closed
	f.mu.Unlock()
	if closed {
		return "", siteask.Errorf(siteask.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx).Timeout(f.timeout)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	return page.HTML()
}

// LauncherPID returns the process ID of the launched browser.
func (f *Fetcher) LauncherPID() int {
	return f.launcher.PID()
}

// Close stops the browser. Calling Close more than once is a no-op.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true

	err := f.browser.Close()
	f.launcher.Kill()
	return err
}
