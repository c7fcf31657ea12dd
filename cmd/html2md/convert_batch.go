package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	html2md "github.com/alnah/go-html2md"
	"github.com/alnah/go-html2md/internal/export"
	"github.com/alnah/go-html2md/internal/fileutil"
	"github.com/alnah/go-html2md/internal/hints"
	"github.com/alnah/go-html2md/internal/inspect"
	"github.com/alnah/go-html2md/internal/yamlutil"
)

// dirPermissions is rwxr-x---: owner full, group read+execute.
const dirPermissions = 0o750

// resourcesExt replaces the .md extension of the resources sidecar.
const resourcesExt = "resources.yaml"

// Sentinel errors for batch operations.
var (
	ErrNoInput       = errors.New("no input specified")
	ErrReadHTML      = errors.New("failed to read HTML file")
	ErrWriteMarkdown = errors.New("failed to write markdown file")
)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
	Summary    string // markdown statistics, set in verbose mode
}

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	converter   *html2md.Converter
	frontMatter *frontMatterParams // nil disables the header
	resources   bool
	verbose     bool
}

// frontMatterParams are the header fields shared by every file of a batch.
// An empty title falls back to the input file name.
type frontMatterParams struct {
	title    string
	platform string
	url      string
	exported time.Time
}

// resourcesFile is the YAML sidecar listing what a page references.
type resourcesFile struct {
	Source string         `yaml:"source"`
	Images []string       `yaml:"images"`
	Links  []resourceLink `yaml:"links"`
}

// resourceLink is one anchor of a resources sidecar.
type resourceLink struct {
	Text string `yaml:"text"`
	URL  string `yaml:"url"`
}

// newResourcesFile builds the sidecar for the page read from source.
func newResourcesFile(source string, res *html2md.Result) *resourcesFile {
	out := &resourcesFile{Source: source, Images: res.ImageURLs}
	for _, l := range res.Links {
		out.Links = append(out.Links, resourceLink{Text: l.Text, URL: l.URL})
	}
	return out
}

// convertBatch converts files with up to workers goroutines.
// The converter is shared: it is safe for concurrent use.
func convertBatch(ctx context.Context, workers int, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(max(workers, 1), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadHTML, err)
		result.Duration = time.Since(start)
		return result
	}

	outDir := filepath.Dir(f.OutputPath)
	if err := os.MkdirAll(outDir, dirPermissions); err != nil {
		result.Err = fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory())
		result.Duration = time.Since(start)
		return result
	}

	res := params.converter.ConvertWithResources(string(content))

	doc, err := params.document(res.Markdown, titleFromPath(f.InputPath))
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	if err := fileutil.WriteFileAtomic(f.OutputPath, []byte(doc)); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWriteMarkdown, err)
		result.Duration = time.Since(start)
		return result
	}

	if params.resources {
		if err := writeResources(f.OutputPath, newResourcesFile(f.InputPath, res)); err != nil {
			result.Err = err
			result.Duration = time.Since(start)
			return result
		}
	}

	if params.verbose {
		result.Summary = inspect.Analyze(res.Markdown).Summary()
	}

	result.Duration = time.Since(start)
	return result
}

// document prepends the front-matter header, when enabled, and ends the
// file with a newline. fallbackTitle is used when no title was given.
func (p *conversionParams) document(markdown, fallbackTitle string) (string, error) {
	body := markdown
	if body != "" {
		body += "\n"
	}
	if p.frontMatter == nil {
		return body, nil
	}

	title := p.frontMatter.title
	if title == "" {
		title = fallbackTitle
	}
	header, err := export.NewFrontMatter(&export.Document{
		Title:    title,
		Platform: p.frontMatter.platform,
		URL:      p.frontMatter.url,
		Exported: p.frontMatter.exported,
	}).Render()
	if err != nil {
		return "", fmt.Errorf("rendering front matter: %w", err)
	}
	return header + "\n" + body, nil
}

// writeResources writes the resources sidecar next to markdownPath.
func writeResources(markdownPath string, res *resourcesFile) error {
	path, err := fileutil.ReplaceExtension(markdownPath, resourcesExt)
	if err != nil {
		return err
	}
	if err := yamlutil.WriteFile(path, res); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteMarkdown, err)
	}
	return nil
}

// titleFromPath returns the file name without its extension.
func titleFromPath(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResultsWithWriter outputs conversion results using the provided writers.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
			if r.Summary != "" {
				fmt.Fprintf(env.Stdout, " %s", r.Summary)
			}
			fmt.Fprintln(env.Stdout)
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
