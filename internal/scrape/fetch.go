package scrape

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-html2md/internal/process"
)

// DefaultTimeout bounds a page fetch when the context has no deadline.
const DefaultTimeout = 30 * time.Second

// Fetcher renders pages in headless Chrome.
// Rod downloads Chromium on first use unless ROD_BROWSER_BIN points to an
// installed browser. Not safe for concurrent use.
type Fetcher struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

// NewFetcher creates a Fetcher. A timeout <= 0 uses DefaultTimeout.
// The browser starts on the first Fetch.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (f *Fetcher) ensureBrowser() error {
	if f.browser != nil {
		return nil
	}

	l := launcher.New()

	// Pre-installed browser for Docker/containerized environments
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// Chrome's sandbox does not start in most CI runners and containers
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	f.launcher = l

	f.browser = rod.New().ControlURL(u)
	if err := f.browser.Connect(); err != nil {
		f.browser = nil
		f.stopLauncher()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Fetch loads pageURL and returns the rendered HTML. When waitSelector is
// set, Fetch also waits for a matching element, since chat pages render
// their messages after the load event.
func (f *Fetcher) Fetch(ctx context.Context, pageURL, waitSelector string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := f.ensureBrowser(); err != nil {
		return "", err
	}

	timeout := f.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return "", context.DeadlineExceeded
		}
	}

	page, err := f.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: pageURL})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	defer func() { _ = page.Close() }()

	page = page.Timeout(timeout)
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if waitSelector != "" {
		if _, err := page.Element(waitSelector); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			return "", fmt.Errorf("%w: waiting for %s: %v", ErrNoContent, waitSelector, err)
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("%w: reading page HTML: %v", ErrPageLoad, err)
	}
	return html, nil
}

// FetchPage fetches pageURL and selects the conversation of p.
func (f *Fetcher) FetchPage(ctx context.Context, pageURL string, p Platform) (*Page, error) {
	html, err := f.Fetch(ctx, pageURL, p.waitSelector())
	if err != nil {
		return nil, err
	}
	return Select(html, p)
}

// Close releases browser resources. The browser process tree is killed
// even when the graceful close fails.
func (f *Fetcher) Close() error {
	var err error
	if f.browser != nil {
		err = f.browser.Close()
		f.browser = nil
	}
	f.stopLauncher()
	return err
}

// stopLauncher kills the launched browser and its children.
func (f *Fetcher) stopLauncher() {
	if f.launcher == nil {
		return
	}
	process.KillTree(f.launcher.PID())
	f.launcher.Kill()
	f.launcher = nil
}
