package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-html2md/internal/config"
	"github.com/alnah/go-html2md/internal/hints"
)

// envPrefix starts every variable read by html2md.
const envPrefix = "HTML2MD_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath       string // HTML2MD_CONFIG: config file name or path
	OutputDir        string // HTML2MD_OUTPUT_DIR: default output directory
	Workers          int    // HTML2MD_WORKERS: parallel workers
	CodeLanguage     string // HTML2MD_CODE_LANG: default fence language
	BaseURL          string // HTML2MD_BASE_URL: base for relative URLs
	Platform         string // HTML2MD_PLATFORM: fetch platform ID
	Timeout          string // HTML2MD_TIMEOUT: page load timeout
	FilenameTemplate string // HTML2MD_FILENAME_TEMPLATE: fetch output name
}

// knownEnvVars lists valid HTML2MD_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"HTML2MD_CONFIG":            true,
	"HTML2MD_OUTPUT_DIR":        true,
	"HTML2MD_WORKERS":           true,
	"HTML2MD_CODE_LANG":         true,
	"HTML2MD_BASE_URL":          true,
	"HTML2MD_PLATFORM":          true,
	"HTML2MD_TIMEOUT":           true,
	"HTML2MD_FILENAME_TEMPLATE": true,
	"HTML2MD_CONTAINER":         true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Malformed timeout and worker values are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:       os.Getenv("HTML2MD_CONFIG"),
		OutputDir:        os.Getenv("HTML2MD_OUTPUT_DIR"),
		CodeLanguage:     os.Getenv("HTML2MD_CODE_LANG"),
		BaseURL:          os.Getenv("HTML2MD_BASE_URL"),
		Platform:         os.Getenv("HTML2MD_PLATFORM"),
		FilenameTemplate: os.Getenv("HTML2MD_FILENAME_TEMPLATE"),
	}

	if timeout := os.Getenv("HTML2MD_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = timeout
		}
	}

	if workers := os.Getenv("HTML2MD_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized HTML2MD_* variables.
// Helps catch typos like HTML2MD_WORKER instead of HTML2MD_WORKERS.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later by the merge functions)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Workers > 0 && cfg.Output.Workers == 0 {
		cfg.Output.Workers = env.Workers
	}

	if env.CodeLanguage != "" && cfg.Conversion.CodeLanguage == "" {
		cfg.Conversion.CodeLanguage = env.CodeLanguage
	}
	if env.BaseURL != "" && cfg.Conversion.BaseURL == "" {
		cfg.Conversion.BaseURL = env.BaseURL
	}

	if env.Platform != "" && cfg.Fetch.Platform == "" {
		cfg.Fetch.Platform = env.Platform
	}
	if env.Timeout != "" && cfg.Fetch.Timeout == "" {
		cfg.Fetch.Timeout = env.Timeout
	}
	if env.FilenameTemplate != "" && cfg.Export.FilenameTemplate == "" {
		cfg.Export.FilenameTemplate = env.FilenameTemplate
	}
}

// loadConfig loads the config named by the --config flag, or by
// HTML2MD_CONFIG when the flag is empty, then layers the environment on top.
// No config name means defaults.
func loadConfig(flagConfig string, env *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !strings.ContainsAny(name, `/\`) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}
