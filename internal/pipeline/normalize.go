package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for output normalization.
var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

// Normalize puts the output into canonical Markdown spacing: Unix line
// endings, no trailing whitespace, at most one blank line in a row, and no
// surrounding whitespace. PreserveEmptyLines keeps blank-line runs.
func Normalize(text string, opts *Options) string {
	o := orDefault(opts)

	text = normalizeLineEndings(text)
	text = trimTrailingSpace(text)
	if !o.PreserveEmptyLines {
		text = compressBlankLines(text)
	}
	return strings.TrimSpace(text)
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(text string) string {
	return crlfOrCR.ReplaceAllString(text, "\n")
}

// trimTrailingSpace strips spaces and tabs at the end of every line.
// Whitespace-only lines become empty.
func trimTrailingSpace(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\f\v")
	}
	return strings.Join(lines, "\n")
}

// compressBlankLines limits consecutive blank lines to one.
func compressBlankLines(text string) string {
	return multipleBlankLines.ReplaceAllString(text, "\n\n")
}
