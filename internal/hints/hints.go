// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-html2md/internal/fileutil"
)

// userConfigDir is the directory name under ~/.config searched for configs.
const userConfigDir = ".config/go-html2md"

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ciVariables are set by common CI providers.
var ciVariables = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"}

// ForBrowserConnect returns hints for headless browser launch errors.
// Suggests ROD_NO_SANDBOX inside CI or containers and ROD_BROWSER_BIN when
// no browser binary is configured.
func ForBrowserConnect() string {
	var hints []string

	if (inCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use an installed Chrome")
	}

	return formatHints(hints)
}

func inCI() bool {
	for _, name := range ciVariables {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// ForTimeout returns a hint about increasing the page load timeout.
func ForTimeout() string {
	return format("slow pages may need a longer --timeout")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and the user config directory among searchedPaths.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, userConfigDir) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForUnsupportedURL lists the platforms fetch understands.
func ForUnsupportedURL(platforms []string) string {
	if len(platforms) == 0 {
		return ""
	}
	return format("use --platform with one of: " + strings.Join(platforms, ", "))
}

// ForNoContent returns hints when a page loaded but no messages were found.
func ForNoContent() string {
	return formatHints([]string{
		"shared links work without login",
		"private conversations need a logged-in browser profile",
	})
}

// ForCodeLanguage returns a hint for an unusable default code language.
func ForCodeLanguage() string {
	return format("use a single word such as python or go")
}

// ForBaseURL returns a hint for an unusable base URL.
func ForBaseURL() string {
	return format("use an absolute URL such as https://chatgpt.com/c/123")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
