package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-html2md/internal/scrape"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Environment and page fetcher stubs
// ---------------------------------------------------------------------------

// testNow is the clock of every test environment.
var testNow = time.Date(2026, 3, 7, 9, 5, 4, 0, time.UTC)

// stubFetcher returns a canned page and records its calls.
type stubFetcher struct {
	page *scrape.Page
	err  error

	mu       sync.Mutex
	timeout  time.Duration
	urls     []string
	platform string
	closed   bool
}

func (s *stubFetcher) FetchPage(_ context.Context, pageURL string, p scrape.Platform) (*scrape.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.urls = append(s.urls, pageURL)
	s.platform = p.ID
	return s.page, s.err
}

func (s *stubFetcher) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// testEnv is an Environment writing to buffers.
type testEnv struct {
	*Environment
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	fetcher *stubFetcher
}

// newTestEnv returns an environment reading stdin from the given string.
func newTestEnv(stdin string) *testEnv {
	te := &testEnv{
		stdout:  &bytes.Buffer{},
		stderr:  &bytes.Buffer{},
		fetcher: &stubFetcher{},
	}
	te.Environment = &Environment{
		Now:    func() time.Time { return testNow },
		Stdin:  strings.NewReader(stdin),
		Stdout: te.stdout,
		Stderr: te.stderr,
		NewFetcher: func(timeout time.Duration) PageFetcher {
			te.fetcher.timeout = timeout
			return te.fetcher
		},
	}
	return te
}

// run invokes runMain with the program name prepended.
func (te *testEnv) run(args ...string) int {
	return runMain(append([]string{"html2md"}, args...), te.Environment)
}

// setupTestDir creates a temp directory with the given file structure.
// Files map paths to content. Returns the temp directory path.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	tempDir := t.TempDir()

	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
			t.Fatalf("failed to create dir for %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	return tempDir
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// ---------------------------------------------------------------------------
// TestDefaultEnv - Production environment
// ---------------------------------------------------------------------------

func TestDefaultEnv(t *testing.T) {
	t.Parallel()

	env := DefaultEnv()

	if env.Now == nil {
		t.Error("Now should not be nil")
	}
	if env.Stdin != os.Stdin {
		t.Error("Stdin should be os.Stdin")
	}
	if env.Stdout != os.Stdout {
		t.Error("Stdout should be os.Stdout")
	}
	if env.Stderr != os.Stderr {
		t.Error("Stderr should be os.Stderr")
	}

	fetcher := env.NewFetcher(time.Second)
	if _, ok := fetcher.(*scrape.Fetcher); !ok {
		t.Errorf("NewFetcher() returned %T, want *scrape.Fetcher", fetcher)
	}
	// No browser was started, so closing is a no-op.
	if err := fetcher.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
