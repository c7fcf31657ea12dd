package main

// Notes:
// - The browser is replaced by stubFetcher; the real fetcher is covered by
//   the integration tests of internal/scrape.

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-html2md/internal/scrape"
	"github.com/alnah/go-html2md/internal/yamlutil"
)

const sharedChatURL = "https://chatgpt.com/share/abc"

func goQuestionsPage() *scrape.Page {
	return &scrape.Page{
		Title: "Go questions",
		Messages: []scrape.Message{
			{Role: scrape.UserRole, HTML: "<p>What is <code>iota</code>?</p>"},
			{
				Role:    "ChatGPT",
				HTML:    `<p>A <strong>constant</strong> counter. See <a href="/docs">docs</a>.</p>`,
				Model:   "GPT-4o",
				Sources: []scrape.Source{{Title: "Go spec", URL: "https://go.dev/ref/spec"}},
			},
		},
	}
}

const goQuestionsMarkdown = "# Go questions\n\n" +
	"## User\n\nWhat is `iota`?\n\n" +
	"## ChatGPT\n\n*Model: GPT-4o*\n\n" +
	"A **constant** counter. See [docs](https://chatgpt.com/docs).\n\n" +
	"**Sources:**\n\n1. [Go spec](https://go.dev/ref/spec)\n"

// ---------------------------------------------------------------------------
// TestFetchCommand - End-to-end fetch runs with a stub browser
// ---------------------------------------------------------------------------

func TestFetchCommand_WritesTemplatedFile(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	te := newTestEnv("")
	te.fetcher.page = goQuestionsPage()

	if code := te.run("fetch", "--no-front-matter", "-o", out, sharedChatURL); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, te.stderr.String())
	}

	path := filepath.Join(out, "2026-03-07_09-05-04_ChatGPT_Go_questions.md")
	if got := readFile(t, path); got != goQuestionsMarkdown {
		t.Errorf("output =\n%s\nwant\n%s", got, goQuestionsMarkdown)
	}
	if got, want := te.stdout.String(), "Created "+path+"\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}

	if te.fetcher.platform != "chatgpt" {
		t.Errorf("platform = %q, want detected chatgpt", te.fetcher.platform)
	}
	if len(te.fetcher.urls) != 1 || te.fetcher.urls[0] != sharedChatURL {
		t.Errorf("fetched %v", te.fetcher.urls)
	}
	if te.fetcher.timeout != 0 {
		t.Errorf("timeout = %v, want 0 for the fetcher default", te.fetcher.timeout)
	}
	if !te.fetcher.closed {
		t.Error("fetcher was not closed")
	}
}

func TestFetchCommand_FrontMatter(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "chat.md")
	te := newTestEnv("")
	te.fetcher.page = goQuestionsPage()

	if code := te.run("fetch", "-o", out, sharedChatURL); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, te.stderr.String())
	}

	got := readFile(t, out)
	if !strings.HasPrefix(got, "---\ntitle: Go questions\nplatform: ChatGPT\n") {
		t.Errorf("output = %q, want front matter first", got)
	}
	if !strings.HasSuffix(got, "\n---\n\n"+goQuestionsMarkdown) {
		t.Errorf("output = %q, want document after front matter", got)
	}
}

func TestFetchCommand_Options(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	te := newTestEnv("")
	te.fetcher.page = goQuestionsPage()

	code := te.run("fetch", "-p", "claude", "-t", "45s", "--filename-template", "%H_%T",
		"--no-links", "--resources", "--no-front-matter", "-o", out, "https://www.chatgpt.com/share/abc")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, te.stderr.String())
	}

	if te.fetcher.platform != "claude" {
		t.Errorf("platform = %q, want claude from --platform", te.fetcher.platform)
	}
	if te.fetcher.timeout != 45*time.Second {
		t.Errorf("timeout = %v, want 45s", te.fetcher.timeout)
	}

	path := filepath.Join(out, "chatgpt.com_Go_questions.md")
	if got := readFile(t, path); !strings.Contains(got, "counter. See docs.") {
		t.Errorf("output = %q, want link text only", got)
	}

	var res resourcesFile
	if err := yamlutil.Unmarshal([]byte(readFile(t, filepath.Join(out, "chatgpt.com_Go_questions.resources.yaml"))), &res); err != nil {
		t.Fatalf("decoding resources: %v", err)
	}
	if len(res.Links) != 1 || res.Links[0].URL != "https://www.chatgpt.com/docs" {
		t.Errorf("Links = %+v, want link resolved against the page", res.Links)
	}
}

func TestFetchCommand_Verbose(t *testing.T) {
	t.Parallel()

	te := newTestEnv("")
	te.fetcher.page = goQuestionsPage()

	if code := te.run("fetch", "-v", "-o", filepath.Join(t.TempDir(), "x.md"), sharedChatURL); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, te.stderr.String())
	}
	if !strings.Contains(te.stdout.String(), "ChatGPT, 2 messages") {
		t.Errorf("stdout = %q", te.stdout.String())
	}
}

func TestFetchCommand_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		fetchErr   error
		wantCode   int
		wantStderr string
	}{
		{
			name:       "not a URL",
			args:       []string{"chat.html"},
			wantCode:   ExitUsage,
			wantStderr: "expected http:// or https://",
		},
		{
			name:       "unsupported site",
			args:       []string{"https://example.com/chat/1"},
			wantCode:   ExitUsage,
			wantStderr: "hint: use --platform with one of: chatgpt, claude",
		},
		{
			name:       "unknown platform flag",
			args:       []string{"-p", "bard", sharedChatURL},
			wantCode:   ExitUsage,
			wantStderr: "fetch.platform",
		},
		{
			name:       "bad timeout",
			args:       []string{"-t", "soon", sharedChatURL},
			wantCode:   ExitUsage,
			wantStderr: "fetch.timeout",
		},
		{
			name:       "browser connect",
			args:       []string{sharedChatURL},
			fetchErr:   fmt.Errorf("%w: no chrome", scrape.ErrBrowserConnect),
			wantCode:   ExitBrowser,
			wantStderr: "failed to connect to browser",
		},
		{
			name:       "page load",
			args:       []string{sharedChatURL},
			fetchErr:   fmt.Errorf("%w: timeout", scrape.ErrPageLoad),
			wantCode:   ExitBrowser,
			wantStderr: "hint: slow pages may need a longer --timeout",
		},
		{
			name:       "no content",
			args:       []string{sharedChatURL},
			fetchErr:   scrape.ErrNoContent,
			wantCode:   ExitGeneral,
			wantStderr: "shared links work without login",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv("")
			te.fetcher.page = goQuestionsPage()
			te.fetcher.err = tt.fetchErr

			args := append([]string{"fetch", "-o", t.TempDir()}, tt.args...)
			if code := te.run(args...); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, te.stderr.String())
			}
			if !strings.Contains(te.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", te.stderr.String(), tt.wantStderr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFetchOutputPath - Export file naming
// ---------------------------------------------------------------------------

func TestFetchOutputPath(t *testing.T) {
	t.Parallel()

	doc := newDocument(&scrape.Page{Title: "  "}, scrape.Platform{Name: "Claude"}, "https://claude.ai/chat/1", testNow)

	tests := []struct {
		name     string
		output   string
		template string
		want     string
	}{
		{"explicit file", "notes.md", "", "notes.md"},
		{"default template in cwd", "", "", "2026-03-07_09-05-04_Claude_Untitled.md"},
		{"template in directory", "out", "%W-%H", filepath.Join("out", "Claude-claude.ai.md")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fetchOutputPath(tt.output, tt.template, doc, doc.URL, testNow)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("fetchOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewDocument(t *testing.T) {
	t.Parallel()

	doc := newDocument(goQuestionsPage(), scrape.Platform{Name: "ChatGPT"}, sharedChatURL, testNow)

	if doc.Title != "Go questions" || doc.Platform != "ChatGPT" || doc.URL != sharedChatURL || !doc.Exported.Equal(testNow) {
		t.Errorf("document header = %+v", doc)
	}
	if len(doc.Sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(doc.Sections))
	}
	if s := doc.Sections[1]; s.Role != "ChatGPT" || s.Model != "GPT-4o" || len(s.Sources) != 1 || s.Sources[0].URL != "https://go.dev/ref/spec" {
		t.Errorf("answer section = %+v", s)
	}
}

func TestPrintPlatforms(t *testing.T) {
	t.Parallel()

	te := newTestEnv("")
	printPlatforms(te.stdout)

	lines := strings.Split(strings.TrimSpace(te.stdout.String()), "\n")
	if want := len(scrape.Platforms()) + 1; len(lines) != want {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), want, te.stdout.String())
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.HasPrefix(lines[1], "chatgpt") {
		t.Errorf("unexpected table:\n%s", te.stdout.String())
	}
}
