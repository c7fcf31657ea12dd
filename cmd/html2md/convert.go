package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	html2md "github.com/alnah/go-html2md"
	"github.com/alnah/go-html2md/internal/config"
	"github.com/alnah/go-html2md/internal/fileutil"
	"github.com/alnah/go-html2md/internal/hints"
	"github.com/alnah/go-html2md/internal/pipeline"
	flag "github.com/spf13/pflag"
)

// runConvertCmd parses convert flags and runs the conversion.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printConvertUsage(env.Stdout)
		}
		return err
	}
	return runConvert(ctx, positional, flags, env)
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positionalArgs)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config, loadEnvConfig())
	if err != nil {
		return err
	}

	// Merge CLI flags into config (CLI wins)
	mergeConversionFlags(&flags.conversion, cfg)
	mergeConvertFlags(flags, cfg)

	if err := validateConfig(cfg); err != nil {
		return err
	}
	warnUnknownLanguage(cfg.Conversion.CodeLanguage, env.Stderr)

	params := &conversionParams{
		converter: html2md.NewConverter(html2md.WithOptions(cfg.Conversion.Options())),
		resources: cfg.Export.Resources,
		verbose:   flags.common.verbose,
	}
	if cfg.Export.FrontMatter {
		params.frontMatter = &frontMatterParams{
			title:    flags.metadata.title,
			platform: flags.metadata.platform,
			url:      flags.metadata.url,
			exported: env.Now(),
		}
	}

	outputDir := resolveOutputDir(flags.output, cfg)

	if inputPath == stdinInput {
		return convertStdin(flags.output, params, env)
	}

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoHTMLFiles, inputPath)
	}

	workers := html2md.ResolveWorkers(cfg.Output.Workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Workers: %d\n", workers)
	}

	results := convertBatch(ctx, workers, files, params)

	failedCount := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%d conversion(s) failed", failedCount)
	}

	return nil
}

// convertStdin converts HTML read from stdin. The result goes to output
// when it is set, to stdout otherwise.
func convertStdin(output string, params *conversionParams, env *Environment) error {
	content, err := io.ReadAll(env.Stdin)
	if err != nil {
		return fmt.Errorf("%w: stdin: %v", ErrReadHTML, err)
	}

	res := params.converter.ConvertWithResources(string(content))
	doc, err := params.document(res.Markdown, "stdin")
	if err != nil {
		return err
	}

	if output == "" {
		if params.resources {
			fmt.Fprintln(env.Stderr, "warning: --resources needs --output when reading stdin")
		}
		_, err := io.WriteString(env.Stdout, doc)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(output), dirPermissions); err != nil {
		return fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory())
	}
	if err := fileutil.WriteFileAtomic(output, []byte(doc)); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteMarkdown, err)
	}
	if params.resources {
		if err := writeResources(output, newResourcesFile(stdinInput, res)); err != nil {
			return err
		}
	}
	return nil
}

// mergeConversionFlags merges conversion flags into config. Boolean flags
// can only switch a behavior on; string flags win when set.
func mergeConversionFlags(flags *conversionFlags, cfg *config.Config) {
	c := &cfg.Conversion
	if flags.noLinks {
		c.NoLinks = true
	}
	if flags.noImages {
		c.NoImages = true
	}
	if flags.keepComments {
		c.KeepComments = true
	}
	if flags.noDecode {
		c.NoDecode = true
	}
	if flags.preserveEmptyLines {
		c.PreserveEmptyLines = true
	}
	if flags.detectLanguage {
		c.DetectLanguage = true
	}
	if flags.codeLanguage != "" {
		c.CodeLanguage = flags.codeLanguage
	}
	if flags.baseURL != "" {
		c.BaseURL = flags.baseURL
	}
}

// mergeConvertFlags merges convert-only flags into config.
func mergeConvertFlags(flags *convertFlags, cfg *config.Config) {
	if flags.workers > 0 {
		cfg.Output.Workers = flags.workers
	}
	if flags.resources {
		cfg.Export.Resources = true
	}
	if flags.metadata.frontMatter {
		cfg.Export.FrontMatter = true
	}
}

// validateConfig validates the merged config and appends a hint for
// conversion options the user can fix.
func validateConfig(cfg *config.Config) error {
	err := cfg.Validate()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, html2md.ErrInvalidCodeLanguage):
		return fmt.Errorf("%w%s", err, hints.ForCodeLanguage())
	case errors.Is(err, html2md.ErrInvalidBaseURL):
		return fmt.Errorf("%w%s", err, hints.ForBaseURL())
	default:
		return err
	}
}

// warnUnknownLanguage warns when lang has no syntax highlighter, since
// renderers will show such fences as plain text.
func warnUnknownLanguage(lang string, w io.Writer) {
	if lang != "" && !pipeline.IsKnownLanguage(lang) {
		fmt.Fprintf(w, "warning: unknown language %q for code fences\n", lang)
	}
}

// resolveInputPath returns the single input argument.
func resolveInputPath(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", ErrNoInput
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(args))
	}
}

// resolveOutputDir returns the output flag, or the config default.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}
