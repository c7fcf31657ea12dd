// Package pipeline implements the stages of the HTML-to-Markdown conversion.
//
// Each stage is a Rule: a function over the whole document string that
// rewrites one HTML construct into its Markdown equivalent. Stages never
// fail; markup a stage cannot match is left for the tag stripper, which
// removes it and keeps the text.
//
// The stages, in the order the root html2md package runs them:
//   - Comment removal
//   - Code blocks (<pre>, <pre><code>)
//   - Tables
//   - Lists (<ul>, <ol>)
//   - Headings (h1-h6)
//   - Images, then links
//   - Inline code
//   - Bold, italic, strikethrough, blockquote, line breaks, paragraphs, rules
//   - Tag stripping
//   - Entity decoding
//   - Whitespace normalization
//
// Ordering lives with the caller. Rules only assume the stages before them
// have run.
package pipeline
