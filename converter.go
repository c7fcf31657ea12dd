package html2md

import (
	"github.com/alnah/go-html2md/internal/pipeline"
)

// stage is one named step of the conversion.
type stage struct {
	name string
	rule pipeline.Rule
}

// defaultStages is the fixed conversion order. Later stages rely on earlier
// ones: code blocks are fenced before anything can rewrite their content,
// tables and lists see raw cells and items, images are converted before the
// links that may wrap them, and entities are decoded only once no more
// markup will be matched.
var defaultStages = []stage{
	{"comments", pipeline.RemoveComments},
	{"code-blocks", pipeline.ConvertCodeBlocks},
	{"tables", pipeline.ConvertTables},
	{"lists", pipeline.ConvertLists},
	{"headings", pipeline.ConvertHeadings},
	{"images", pipeline.ConvertImages},
	{"links", pipeline.ConvertLinks},
	{"inline-code", pipeline.ConvertInlineCode},
	{"bold", pipeline.ConvertBold},
	{"italic", pipeline.ConvertItalic},
	{"strikethrough", pipeline.ConvertStrikethrough},
	{"blockquotes", pipeline.ConvertBlockquotes},
	{"line-breaks", pipeline.ConvertLineBreaks},
	{"paragraphs", pipeline.ConvertParagraphs},
	{"horizontal-rules", pipeline.ConvertHorizontalRules},
	{"strip-tags", pipeline.StripTags},
	{"entities", pipeline.DecodeEntitiesRule},
	{"normalize", pipeline.Normalize},
}

// Converter turns HTML fragments into Markdown.
// Create with NewConverter. Safe for concurrent use.
type Converter struct {
	opts    pipeline.Options
	baseURL string
	stages  []stage
}

// NewConverter creates a Converter. Options apply over DefaultOptions in
// order, so later options win. A default code language that would break the
// code fence is cut to its first word; an invalid base URL is ignored.
// Use Options.Validate to reject such values instead.
func NewConverter(opts ...Option) *Converter {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	baseURL := o.BaseURL
	if baseURL != "" {
		if _, err := pipeline.ParseBaseURL(baseURL); err != nil {
			baseURL = ""
		}
	}

	return &Converter{
		opts: pipeline.Options{
			PreserveEmptyLines:  o.PreserveEmptyLines,
			ConvertLinks:        o.ConvertLinks,
			ConvertImages:       o.ConvertImages,
			DefaultCodeLanguage: sanitizeLanguage(o.DefaultCodeLanguage),
			DetectCodeLanguage:  o.DetectCodeLanguage,
			RemoveComments:      o.RemoveComments,
			DecodeEntities:      o.DecodeEntities,
		},
		baseURL: baseURL,
		stages:  defaultStages,
	}
}

// Options returns a copy of the settings in effect, after sanitizing.
func (c *Converter) Options() Options {
	return Options{
		PreserveEmptyLines:  c.opts.PreserveEmptyLines,
		ConvertLinks:        c.opts.ConvertLinks,
		ConvertImages:       c.opts.ConvertImages,
		DefaultCodeLanguage: c.opts.DefaultCodeLanguage,
		DetectCodeLanguage:  c.opts.DetectCodeLanguage,
		RemoveComments:      c.opts.RemoveComments,
		DecodeEntities:      c.opts.DecodeEntities,
		BaseURL:             c.baseURL,
	}
}

// Convert returns the Markdown for an HTML fragment.
func (c *Converter) Convert(html string) string {
	return c.run(c.resolve(html))
}

// ConvertWithResources converts html and reports the images and links it
// contains. Resources are read from the input before conversion and do not
// depend on ConvertImages or ConvertLinks.
func (c *Converter) ConvertWithResources(html string) *Result {
	src := c.resolve(html)

	var links []Link
	for _, l := range pipeline.ExtractLinks(src) {
		links = append(links, Link{Text: l.Text, URL: l.URL})
	}

	return &Result{
		Markdown:  c.run(src),
		ImageURLs: pipeline.ExtractImageURLs(src),
		Links:     links,
	}
}

// resolve rewrites relative URLs when a base URL is set.
// The input is returned unchanged if it cannot be parsed.
func (c *Converter) resolve(html string) string {
	if c.baseURL == "" {
		return html
	}
	resolved, err := pipeline.ResolveURLs(html, c.baseURL)
	if err != nil {
		return html
	}
	return resolved
}

// run applies every stage in order. A panic in any stage falls back to
// plain text extraction of the input.
func (c *Converter) run(html string) (markdown string) {
	defer func() {
		if recover() != nil {
			markdown = plainText(html, &c.opts)
		}
	}()

	text := html
	for _, s := range c.stages {
		text = s.rule(text, &c.opts)
	}
	return text
}

// plainText strips all markup from html and normalizes the result.
func plainText(html string, opts *pipeline.Options) string {
	text := pipeline.RemoveComments(html, opts)
	text = pipeline.StripTags(text, opts)
	text = pipeline.DecodeEntitiesRule(text, opts)
	return pipeline.Normalize(text, opts)
}

// Convert converts html with a Converter built from opts.
func Convert(html string, opts ...Option) string {
	return NewConverter(opts...).Convert(html)
}

// ConvertWithResources converts html with a Converter built from opts and
// reports the images and links of the source.
func ConvertWithResources(html string, opts ...Option) *Result {
	return NewConverter(opts...).ConvertWithResources(html)
}
