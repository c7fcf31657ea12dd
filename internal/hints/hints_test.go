package hints

// ForBrowserConnect tests do not call t.Parallel(): they use t.Setenv and
// replace the package-level IsInContainer.

import (
	"strings"
	"testing"
)

// stubContainer replaces IsInContainer for the duration of the test.
func stubContainer(t *testing.T, inContainer bool) {
	t.Helper()
	orig := IsInContainer
	t.Cleanup(func() { IsInContainer = orig })
	IsInContainer = func() bool { return inContainer }
}

// clearCI unsets every CI marker so the host CI does not leak in.
func clearCI(t *testing.T) {
	t.Helper()
	for _, name := range ciVariables {
		t.Setenv(name, "")
	}
}

func TestForBrowserConnect(t *testing.T) {
	tests := []struct {
		name        string
		inContainer bool
		env         map[string]string
		wantSandbox bool
		wantBin     bool
	}{
		{
			name:        "in CI",
			env:         map[string]string{"CI": "true"},
			wantSandbox: true,
			wantBin:     true,
		},
		{
			name:        "in GitHub Actions",
			env:         map[string]string{"GITHUB_ACTIONS": "true", "ROD_BROWSER_BIN": "/usr/bin/chrome"},
			wantSandbox: true,
		},
		{
			name:        "in Docker",
			inContainer: true,
			wantSandbox: true,
			wantBin:     true,
		},
		{
			name:        "sandbox already disabled",
			inContainer: true,
			env:         map[string]string{"ROD_NO_SANDBOX": "1"},
			wantBin:     true,
		},
		{
			name: "browser binary set outside CI",
			env:  map[string]string{"ROD_BROWSER_BIN": "/usr/bin/chrome"},
		},
		{
			name:        "all configured",
			inContainer: true,
			env:         map[string]string{"CI": "true", "ROD_NO_SANDBOX": "1", "ROD_BROWSER_BIN": "/usr/bin/chrome"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubContainer(t, tt.inContainer)
			clearCI(t)
			t.Setenv("ROD_NO_SANDBOX", "")
			t.Setenv("ROD_BROWSER_BIN", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			hint := ForBrowserConnect()

			if got := strings.Contains(hint, "ROD_NO_SANDBOX"); got != tt.wantSandbox {
				t.Errorf("ROD_NO_SANDBOX suggested = %v, want %v (hint %q)", got, tt.wantSandbox, hint)
			}
			if got := strings.Contains(hint, "ROD_BROWSER_BIN"); got != tt.wantBin {
				t.Errorf("ROD_BROWSER_BIN suggested = %v, want %v (hint %q)", got, tt.wantBin, hint)
			}
			if !tt.wantSandbox && !tt.wantBin && hint != "" {
				t.Errorf("expected empty hint, got %q", hint)
			}
		})
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		paths    []string
		contains string
	}{
		{"empty paths", nil, "--config"},
		{"user config suggested", []string{"./work.yaml", "/home/u/.config/go-html2md/work.yaml"}, "create /home/u/.config/go-html2md/work.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.paths)
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
		})
	}
}

func TestForUnsupportedURL(t *testing.T) {
	t.Parallel()

	if got := ForUnsupportedURL(nil); got != "" {
		t.Errorf("expected empty hint, got %q", got)
	}
	if got := ForUnsupportedURL([]string{"chatgpt", "claude"}); !strings.Contains(got, "chatgpt, claude") {
		t.Errorf("expected platform list, got %q", got)
	}
}

func TestFormat_Consistency(t *testing.T) {
	t.Parallel()

	hints := []string{
		ForTimeout(),
		ForConfigNotFound(nil),
		ForOutputDirectory(),
		ForUnsupportedURL([]string{"claude"}),
		ForNoContent(),
		ForCodeLanguage(),
		ForBaseURL(),
	}

	for _, h := range hints {
		if !strings.HasPrefix(h, "\n  hint: ") {
			t.Errorf("hint format inconsistent: %q", h)
		}
		if strings.Count(h, "hint:") != 1 {
			t.Errorf("expected exactly one hint prefix: %q", h)
		}
	}
}
