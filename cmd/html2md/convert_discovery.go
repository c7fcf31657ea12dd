package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	html2md "github.com/alnah/go-html2md"
	"github.com/alnah/go-html2md/internal/fileutil"
)

// stdinInput reads HTML from standard input.
const stdinInput = "-"

// markdownExt is the extension of converted files.
const markdownExt = ".md"

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .html, .htm or .xhtml extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrNoHTMLFiles        = errors.New("no HTML files found")
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds all HTML files to convert.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateHTMLExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, outputDir, "")
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !fileutil.IsHTMLFile(path) {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the Markdown output path for an HTML file.
// An outputDir ending in .md names the output file itself; otherwise the
// input's directory layout below baseInputDir is mirrored under outputDir.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+markdownExt)
	}

	if isMarkdownPath(outputDir) {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			relDir := filepath.Dir(relPath)
			return filepath.Join(outputDir, relDir, base+markdownExt)
		}
	}

	return filepath.Join(outputDir, base+markdownExt)
}

// isMarkdownPath reports whether path names a Markdown file.
func isMarkdownPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), markdownExt)
}

// validateHTMLExtension checks that the file has an HTML extension.
func validateHTMLExtension(path string) error {
	if !fileutil.IsHTMLFile(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > html2md.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, html2md.MaxWorkers)
	}
	return nil
}
