// Package html2md converts HTML fragments scraped from AI chat pages to Markdown.
//
// # Quick Start
//
// Convert a fragment with the default options:
//
//	md := html2md.Convert(`<h1>Hello</h1><p>World</p>`)
//	// "# Hello\n\nWorld"
//
// Reuse a Converter when converting many fragments with the same options:
//
//	conv := html2md.NewConverter(
//	    html2md.WithDefaultCodeLanguage("text"),
//	    html2md.WithConvertImages(false),
//	)
//	md := conv.Convert(fragment)
//
// Use ConvertWithResources to also collect the image URLs and links of the
// source markup. They are read from the HTML before conversion, so they are
// reported even when WithConvertImages(false) or WithConvertLinks(false)
// drops them from the Markdown.
//
// # Conversion Pipeline
//
// The input passes through a fixed sequence of string-rewriting stages:
//
//  1. Comment removal
//  2. Code blocks, with language taken from class names
//  3. Tables
//  4. Lists (nested lists are flattened into their parent item)
//  5. Headings
//  6. Images, then links
//  7. Inline code
//  8. Bold, italic, strikethrough, blockquotes, line breaks, paragraphs, rules
//  9. Removal of any remaining tags
//  10. Entity decoding
//  11. Whitespace normalization
//
// No DOM is built. Markup a stage does not recognize is removed by stage 9
// and its text kept, so malformed input still yields readable Markdown.
//
// # Errors
//
// Conversion never fails and never panics: every input produces a string.
// Options.Validate reports settings that would produce broken Markdown, for
// callers that want to reject them up front; NewConverter sanitizes them
// instead.
//
// # Concurrency
//
// A Converter holds only its options and may be shared between goroutines.
package html2md
