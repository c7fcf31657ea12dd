package pipeline

import "regexp"

// Precompiled regex patterns for tag stripping.
var (
	commentPattern = regexp.MustCompile(`(?s)<!--.*?-->`)

	containerOpenPattern  = regexp.MustCompile(`(?i)<(?:div|span|section|article|header|footer|main|nav|aside)(?:\s[^>]*)?>`)
	containerClosePattern = regexp.MustCompile(`(?i)</(?:div|span|section|article|header|footer|main|nav|aside)\s*>`)
)

// RemoveComments deletes <!-- ... --> comments when opts.RemoveComments is set.
func RemoveComments(text string, opts *Options) string {
	if !orDefault(opts).RemoveComments {
		return text
	}
	return commentPattern.ReplaceAllString(text, "")
}

// StripTags removes the markup no earlier rule converted.
// Container elements are unwrapped and their end tags become newlines so
// sibling blocks stay apart. Every other tag is deleted; its text is kept.
func StripTags(text string, _ *Options) string {
	text = containerOpenPattern.ReplaceAllString(text, "")
	text = containerClosePattern.ReplaceAllString(text, "\n")
	text = elementTagPattern.ReplaceAllString(text, "")
	return markupDeclPattern.ReplaceAllString(text, "")
}
