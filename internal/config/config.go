// Package config loads YAML configuration for the html2md command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	html2md "github.com/alnah/go-html2md"
	"github.com/alnah/go-html2md/internal/export"
	"github.com/alnah/go-html2md/internal/fileutil"
	"github.com/alnah/go-html2md/internal/scrape"
	"github.com/alnah/go-html2md/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// appDir is the directory under the user config dir searched by name.
const appDir = "go-html2md"

// Field length limits.
const (
	MaxLanguageLength = 32   // "typescript", "objective-c"
	MaxPathLength     = 4096 // PATH_MAX on Linux
	MaxURLLength      = 2048 // Browser limit
	MaxDurationLength = 20   // "1m30s"
)

// Config holds all configuration for conversion and export.
type Config struct {
	Conversion ConversionConfig `yaml:"conversion"`
	Output     OutputConfig     `yaml:"output"`
	Export     ExportConfig     `yaml:"export"`
	Fetch      FetchConfig      `yaml:"fetch"`
}

// ConversionConfig mirrors the converter options. Fields are phrased so
// that their zero value is the library default.
type ConversionConfig struct {
	NoLinks            bool   `yaml:"noLinks"`            // keep link text only
	NoImages           bool   `yaml:"noImages"`           // drop images
	KeepComments       bool   `yaml:"keepComments"`       // do not strip <!-- -->
	NoDecode           bool   `yaml:"noDecode"`           // leave entities encoded
	PreserveEmptyLines bool   `yaml:"preserveEmptyLines"` // keep blank-line runs
	CodeLanguage       string `yaml:"codeLanguage"`       // fence language for unlabeled code
	DetectLanguage     bool   `yaml:"detectLanguage"`     // guess unlabeled code languages
	BaseURL            string `yaml:"baseURL"`            // resolve relative URLs against this
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
	Workers    int    `yaml:"workers"`    // Parallel conversions (0 = auto)
}

// ExportConfig defines what is written next to the Markdown.
type ExportConfig struct {
	FrontMatter      bool   `yaml:"frontMatter"`      // prepend a YAML header
	Resources        bool   `yaml:"resources"`        // write <name>.resources.yaml
	FilenameTemplate string `yaml:"filenameTemplate"` // names for fetched pages
}

// FetchConfig defines headless browser options.
type FetchConfig struct {
	Platform string `yaml:"platform"` // force a platform instead of detecting it
	Timeout  string `yaml:"timeout"`  // Go duration, e.g. "45s" (empty = default)
}

// Options converts the section into converter options.
func (c ConversionConfig) Options() *html2md.Options {
	return &html2md.Options{
		PreserveEmptyLines:  c.PreserveEmptyLines,
		ConvertLinks:        !c.NoLinks,
		ConvertImages:       !c.NoImages,
		DefaultCodeLanguage: c.CodeLanguage,
		DetectCodeLanguage:  c.DetectLanguage,
		RemoveComments:      !c.KeepComments,
		DecodeEntities:      !c.NoDecode,
		BaseURL:             c.BaseURL,
	}
}

// TimeoutDuration returns the parsed fetch timeout, or 0 when unset.
func (c FetchConfig) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: fetch.timeout: %v", ErrInvalidValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: fetch.timeout: must be positive, got %s", ErrInvalidValue, c.Timeout)
	}
	return d, nil
}

// Validate checks field lengths and values.
// Called automatically by LoadConfig, but available for configs built in code.
func (c *Config) Validate() error {
	if err := validateFieldLength("conversion.codeLanguage", c.Conversion.CodeLanguage, MaxLanguageLength); err != nil {
		return err
	}
	if err := validateFieldLength("conversion.baseURL", c.Conversion.BaseURL, MaxURLLength); err != nil {
		return err
	}
	if err := c.Conversion.Options().Validate(); err != nil {
		return fmt.Errorf("%w: conversion: %w", ErrInvalidValue, err)
	}

	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if c.Output.Workers < 0 || c.Output.Workers > html2md.MaxWorkers {
		return fmt.Errorf("%w: output.workers: must be between 0 and %d, got %d", ErrInvalidValue, html2md.MaxWorkers, c.Output.Workers)
	}

	if c.Export.FilenameTemplate != "" {
		if err := export.ValidateTemplate(c.Export.FilenameTemplate); err != nil {
			return fmt.Errorf("%w: export.filenameTemplate: %v", ErrInvalidValue, err)
		}
	}

	if c.Fetch.Platform != "" {
		if _, err := scrape.Lookup(c.Fetch.Platform); err != nil {
			return fmt.Errorf("%w: fetch.platform: %v", ErrInvalidValue, err)
		}
	}
	if err := validateFieldLength("fetch.timeout", c.Fetch.Timeout, MaxDurationLength); err != nil {
		return err
	}
	if _, err := c.Fetch.TimeoutDuration(); err != nil {
		return err
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration matching the library defaults.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !strings.ContainsAny(nameOrPath, "/\\") {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths lists where a config name is looked up, in order:
// the current directory, then the user config directory, each with .yaml
// and .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appDir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
