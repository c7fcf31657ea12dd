package main

// Notes:
// - runMain: we test command dispatch and exit codes. File conversion and
//   page export are covered in convert_test.go and fetch_test.go.
// - setMaxProcs is not tested: it only adjusts GOMAXPROCS.

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunMain - Command dispatch
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"no command", nil, ExitUsage, "", "Usage: html2md"},
		{"unknown command", []string{"render"}, ExitUsage, "", "Unknown command: render"},
		{"version", []string{"version"}, ExitSuccess, "html2md " + Version, ""},
		{"version flag", []string{"--version"}, ExitSuccess, "html2md " + Version, ""},
		{"help", []string{"help"}, ExitSuccess, "Commands:", ""},
		{"help flag", []string{"--help"}, ExitSuccess, "Commands:", ""},
		{"help convert", []string{"help", "convert"}, ExitSuccess, "Usage: html2md convert", ""},
		{"convert -h", []string{"convert", "-h"}, ExitSuccess, "Usage: html2md convert", ""},
		{"fetch --help", []string{"fetch", "--help"}, ExitSuccess, "Usage: html2md fetch", ""},
		{"platforms", []string{"platforms"}, ExitSuccess, "chatgpt", ""},
		{"convert unknown flag", []string{"convert", "--bogus"}, ExitUsage, "", "invalid usage"},
		{"convert without input", []string{"convert"}, ExitIO, "", "no input specified"},
		{"fetch without url", []string{"fetch"}, ExitIO, "", "no input specified"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv("")
			code := te.run(tt.args...)

			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, te.stderr.String())
			}
			if tt.wantStdout != "" && !strings.Contains(te.stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want it to contain %q", te.stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(te.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", te.stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestRunMain_ErrorsArePrefixed(t *testing.T) {
	t.Parallel()

	te := newTestEnv("")
	te.run("convert", "missing.html")

	if !strings.HasPrefix(te.stderr.String(), "error: ") {
		t.Errorf("stderr = %q, want error: prefix", te.stderr.String())
	}
}

// ---------------------------------------------------------------------------
// TestHasVerboseFlag - Pre-parse verbose detection
// ---------------------------------------------------------------------------

func TestHasVerboseFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"short", []string{"html2md", "convert", "-v", "a.html"}, true},
		{"long", []string{"html2md", "fetch", "--verbose", "https://claude.ai/chat/1"}, true},
		{"absent", []string{"html2md", "convert", "a.html"}, false},
		{"after terminator", []string{"html2md", "convert", "--", "-v"}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := hasVerboseFlag(tt.args); got != tt.want {
				t.Errorf("hasVerboseFlag(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}
