package html2md

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/alnah/go-html2md/internal/pipeline"
)

// Options controls a conversion.
type Options struct {
	PreserveEmptyLines  bool   // keep runs of blank lines instead of collapsing them
	ConvertLinks        bool   // emit [text](url); false keeps the link text only
	ConvertImages       bool   // emit ![alt](src); false drops images
	DefaultCodeLanguage string // fence language when none is found
	DetectCodeLanguage  bool   // guess unlabeled code languages from content
	RemoveComments      bool   // strip <!-- --> before converting
	DecodeEntities      bool   // decode &amp; and friends in the output
	BaseURL             string // resolve relative src and href against this URL
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() *Options {
	return &Options{
		ConvertLinks:   true,
		ConvertImages:  true,
		RemoveComments: true,
		DecodeEntities: true,
	}
}

// Validate checks that options produce well-formed Markdown.
// Returns nil if o is nil (nil means use defaults).
func (o *Options) Validate() error {
	if o == nil {
		return nil
	}

	if !isValidLanguage(o.DefaultCodeLanguage) {
		return fmt.Errorf("%w: %q (must be a single word without backticks)", ErrInvalidCodeLanguage, o.DefaultCodeLanguage)
	}

	if o.BaseURL != "" {
		if _, err := pipeline.ParseBaseURL(o.BaseURL); err != nil {
			return err
		}
	}

	return nil
}

// isValidLanguage reports whether lang can follow an opening code fence.
func isValidLanguage(lang string) bool {
	return !strings.ContainsRune(lang, '`') && strings.IndexFunc(lang, unicode.IsSpace) < 0
}

// sanitizeLanguage keeps the first word of lang, without backticks.
func sanitizeLanguage(lang string) string {
	fields := strings.Fields(strings.ReplaceAll(lang, "`", ""))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Option configures a Converter.
type Option func(*Options)

// WithOptions replaces all settings with a copy of opts.
// A nil opts restores the defaults. Options given after it still apply.
func WithOptions(opts *Options) Option {
	return func(o *Options) {
		if opts == nil {
			*o = *DefaultOptions()
			return
		}
		*o = *opts
	}
}

// WithPreserveEmptyLines keeps consecutive blank lines.
func WithPreserveEmptyLines(preserve bool) Option {
	return func(o *Options) {
		o.PreserveEmptyLines = preserve
	}
}

// WithConvertLinks toggles Markdown link syntax.
func WithConvertLinks(convert bool) Option {
	return func(o *Options) {
		o.ConvertLinks = convert
	}
}

// WithConvertImages toggles Markdown image syntax. Disabled images are dropped.
func WithConvertImages(convert bool) Option {
	return func(o *Options) {
		o.ConvertImages = convert
	}
}

// WithDefaultCodeLanguage sets the fence language for unlabeled code blocks.
func WithDefaultCodeLanguage(lang string) Option {
	return func(o *Options) {
		o.DefaultCodeLanguage = lang
	}
}

// WithDetectCodeLanguage enables content-based language detection for code
// blocks that carry no language class.
func WithDetectCodeLanguage(detect bool) Option {
	return func(o *Options) {
		o.DetectCodeLanguage = detect
	}
}

// WithRemoveComments toggles HTML comment removal.
func WithRemoveComments(remove bool) Option {
	return func(o *Options) {
		o.RemoveComments = remove
	}
}

// WithDecodeEntities toggles character reference decoding.
func WithDecodeEntities(decode bool) Option {
	return func(o *Options) {
		o.DecodeEntities = decode
	}
}

// WithBaseURL resolves relative image and link URLs against base.
// The page URL of the scraped fragment is the usual choice.
func WithBaseURL(base string) Option {
	return func(o *Options) {
		o.BaseURL = base
	}
}

// Link is an anchor found in the source HTML.
type Link struct {
	Text string // anchor text with tags removed
	URL  string // href as written
}

// Result is the output of ConvertWithResources.
type Result struct {
	Markdown  string
	ImageURLs []string // img src values in document order, duplicates kept
	Links     []Link   // anchors with an href and content, in document order
}
