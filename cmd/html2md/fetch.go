package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	html2md "github.com/alnah/go-html2md"
	"github.com/alnah/go-html2md/internal/config"
	"github.com/alnah/go-html2md/internal/export"
	"github.com/alnah/go-html2md/internal/fileutil"
	"github.com/alnah/go-html2md/internal/hints"
	"github.com/alnah/go-html2md/internal/inspect"
	"github.com/alnah/go-html2md/internal/scrape"
	flag "github.com/spf13/pflag"
)

// runFetchCmd parses fetch flags and exports the conversation.
func runFetchCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseFetchFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printFetchUsage(env.Stdout)
		}
		return err
	}
	return runFetch(ctx, positional, flags, env)
}

// runFetch loads a chat page, converts its messages and writes the export.
func runFetch(ctx context.Context, positionalArgs []string, flags *fetchFlags, env *Environment) error {
	pageURL, err := resolveInputPath(positionalArgs)
	if err != nil {
		return err
	}
	if !fileutil.IsURL(pageURL) {
		return fmt.Errorf("%w: %q (expected http:// or https://)", scrape.ErrInvalidURL, pageURL)
	}

	cfg, err := loadConfig(flags.common.config, loadEnvConfig())
	if err != nil {
		return err
	}
	mergeConversionFlags(&flags.conversion, cfg)
	mergeFetchFlags(flags, cfg)
	if cfg.Conversion.BaseURL == "" {
		cfg.Conversion.BaseURL = pageURL
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	warnUnknownLanguage(cfg.Conversion.CodeLanguage, env.Stderr)

	platform, err := resolvePlatform(pageURL, cfg.Fetch.Platform)
	if err != nil {
		return err
	}
	timeout, _ := cfg.Fetch.TimeoutDuration() // validated above

	start := time.Now()
	fetcher := env.NewFetcher(timeout)
	defer func() { _ = fetcher.Close() }()

	page, err := fetcher.FetchPage(ctx, pageURL, platform)
	if err != nil {
		return withFetchHint(err)
	}

	now := env.Now()
	doc := newDocument(page, platform, pageURL, now)
	conv := html2md.NewConverter(html2md.WithOptions(cfg.Conversion.Options()))
	markdown, err := doc.Render(conv, !flags.noFrontMatter)
	if err != nil {
		return fmt.Errorf("rendering document: %w", err)
	}

	outPath, err := fetchOutputPath(resolveOutputDir(flags.output, cfg), cfg.Export.FilenameTemplate, doc, pageURL, now)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outPath), dirPermissions); err != nil {
		return fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory())
	}
	if err := fileutil.WriteFileAtomic(outPath, []byte(markdown)); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteMarkdown, err)
	}

	if cfg.Export.Resources {
		res := conv.ConvertWithResources(joinSections(doc.Sections))
		if err := writeResources(outPath, newResourcesFile(pageURL, res)); err != nil {
			return err
		}
	}

	switch {
	case flags.common.quiet:
	case flags.common.verbose:
		fmt.Fprintf(env.Stdout, "%s -> %s (%v) %s, %d messages, %s\n",
			pageURL, outPath, time.Since(start).Round(time.Millisecond),
			platform.Name, len(page.Messages), inspect.Analyze(markdown).Summary())
	default:
		fmt.Fprintf(env.Stdout, "Created %s\n", outPath)
	}
	return nil
}

// mergeFetchFlags merges fetch-only flags into config.
func mergeFetchFlags(flags *fetchFlags, cfg *config.Config) {
	if flags.platform != "" {
		cfg.Fetch.Platform = flags.platform
	}
	if flags.timeout != "" {
		cfg.Fetch.Timeout = flags.timeout
	}
	if flags.filenameTemplate != "" {
		cfg.Export.FilenameTemplate = flags.filenameTemplate
	}
	if flags.resources {
		cfg.Export.Resources = true
	}
}

// resolvePlatform returns the platform named by id, or the one detected
// from pageURL when id is empty.
func resolvePlatform(pageURL, id string) (scrape.Platform, error) {
	if id != "" {
		return scrape.Lookup(id)
	}
	p, err := scrape.DetectPlatform(pageURL)
	if errors.Is(err, scrape.ErrUnknownPlatform) {
		return p, fmt.Errorf("%w%s", err, hints.ForUnsupportedURL(scrape.PlatformIDs()))
	}
	return p, err
}

// withFetchHint appends the hint matching a fetch failure.
func withFetchHint(err error) error {
	var hint string
	switch {
	case errors.Is(err, scrape.ErrBrowserConnect):
		hint = hints.ForBrowserConnect()
	case errors.Is(err, scrape.ErrPageLoad):
		hint = hints.ForTimeout()
	case errors.Is(err, scrape.ErrNoContent):
		hint = hints.ForNoContent()
	}
	return fmt.Errorf("fetching page: %w%s", err, hint)
}

// newDocument turns a selected page into an export document.
func newDocument(page *scrape.Page, p scrape.Platform, pageURL string, now time.Time) *export.Document {
	doc := &export.Document{
		Title:    page.Title,
		Platform: p.Name,
		URL:      pageURL,
		Exported: now,
		Sections: make([]export.Section, 0, len(page.Messages)),
	}
	for _, m := range page.Messages {
		s := export.Section{Role: m.Role, HTML: m.HTML, Model: m.Model}
		for _, src := range m.Sources {
			s.Sources = append(s.Sources, export.Source{Title: src.Title, URL: src.URL})
		}
		doc.Sections = append(doc.Sections, s)
	}
	return doc
}

// fetchOutputPath names the export file. An output ending in .md is used
// as is; otherwise the templated file name is placed in that directory.
func fetchOutputPath(output, template string, doc *export.Document, pageURL string, now time.Time) (string, error) {
	if isMarkdownPath(output) {
		return output, nil
	}
	if template == "" {
		template = export.DefaultFilenameTemplate
	}
	if err := export.ValidateTemplate(template); err != nil {
		return "", err
	}

	var host string
	if u, err := url.Parse(pageURL); err == nil {
		host = strings.TrimPrefix(u.Hostname(), "www.")
	}
	title := doc.Title
	if strings.TrimSpace(title) == "" {
		title = export.DefaultTitle
	}

	name := export.FormatFilename(template, export.FilenameVars{
		Title:    title,
		Platform: doc.Platform,
		Host:     host,
	}, now)
	return filepath.Join(output, name), nil
}

// joinSections concatenates the HTML of every section.
func joinSections(sections []export.Section) string {
	parts := make([]string, len(sections))
	for i, s := range sections {
		parts[i] = s.HTML
	}
	return strings.Join(parts, "\n")
}

// printPlatforms lists the platforms fetch understands.
func printPlatforms(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tURLS")
	for _, p := range scrape.Platforms() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.Name, strings.Join(p.URLPatterns, ", "))
	}
	_ = tw.Flush()
}
