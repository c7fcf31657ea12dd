package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage wraps flag parsing and argument errors.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// conversionFlags holds flags mapped onto html2md.Options.
type conversionFlags struct {
	noLinks            bool
	noImages           bool
	keepComments       bool
	noDecode           bool
	preserveEmptyLines bool
	codeLanguage       string
	detectLanguage     bool
	baseURL            string
}

// metadataFlags holds the front-matter fields of a converted file.
type metadataFlags struct {
	frontMatter bool
	title       string
	platform    string
	url         string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	output     string
	workers    int
	resources  bool
	conversion conversionFlags
	metadata   metadataFlags
}

// fetchFlags holds all flags for the fetch command.
type fetchFlags struct {
	common           commonFlags
	output           string
	platform         string
	timeout          string
	filenameTemplate string
	noFrontMatter    bool
	resources        bool
	conversion       conversionFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timing and markdown statistics")
}

// addConversionFlags adds Markdown conversion flags to a FlagSet.
func addConversionFlags(fs *flag.FlagSet, f *conversionFlags) {
	fs.BoolVar(&f.noLinks, "no-links", false, "keep link text, drop URLs")
	fs.BoolVar(&f.noImages, "no-images", false, "drop images")
	fs.BoolVar(&f.keepComments, "keep-comments", false, "do not strip HTML comments first")
	fs.BoolVar(&f.noDecode, "no-decode", false, "leave HTML entities encoded")
	fs.BoolVar(&f.preserveEmptyLines, "preserve-empty-lines", false, "keep runs of blank lines")
	fs.StringVar(&f.codeLanguage, "code-lang", "", "fence language for unlabeled code blocks")
	fs.BoolVar(&f.detectLanguage, "detect-lang", false, "guess unlabeled code languages")
	fs.StringVar(&f.baseURL, "base-url", "", "resolve relative links and images against this URL")
}

// addMetadataFlags adds front-matter flags to a FlagSet.
func addMetadataFlags(fs *flag.FlagSet, f *metadataFlags) {
	fs.BoolVar(&f.frontMatter, "front-matter", false, "prepend a YAML front-matter header")
	fs.StringVar(&f.title, "title", "", "front-matter title (default: file name)")
	fs.StringVar(&f.platform, "platform", "", "front-matter platform name")
	fs.StringVar(&f.url, "url", "", "front-matter source URL")
}

// newFlagSet returns a silent FlagSet: parse errors are returned, not printed.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}

// parseError wraps a pflag error so it maps to ExitUsage.
// flag.ErrHelp passes through so callers can print usage and succeed.
func parseError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := newFlagSet("convert")
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.resources, "resources", false, "write <name>.resources.yaml with image URLs and links")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addConversionFlags(fs, &f.conversion)
	addMetadataFlags(fs, &f.metadata)

	if err := fs.Parse(args); err != nil {
		return nil, nil, parseError(err)
	}

	return f, fs.Args(), nil
}

// parseFetchFlags parses fetch command flags and returns positional args.
func parseFetchFlags(args []string) (*fetchFlags, []string, error) {
	fs := newFlagSet("fetch")
	f := &fetchFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVarP(&f.platform, "platform", "p", "", "platform ID (default: detected from URL)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "page load timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.filenameTemplate, "filename-template", "", "output file name template")
	fs.BoolVar(&f.noFrontMatter, "no-front-matter", false, "omit the YAML front-matter header")
	fs.BoolVar(&f.resources, "resources", false, "write <name>.resources.yaml with image URLs and links")

	addCommonFlags(fs, &f.common)
	addConversionFlags(fs, &f.conversion)

	if err := fs.Parse(args); err != nil {
		return nil, nil, parseError(err)
	}

	return f, fs.Args(), nil
}
