package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for inline emphasis and simple block elements.
var (
	boldPatterns   = []*regexp.Regexp{elementPattern("strong"), elementPattern("b")}
	italicPatterns = []*regexp.Regexp{elementPattern("em"), elementPattern("i")}
	strikePatterns = []*regexp.Regexp{elementPattern("del"), elementPattern("s"), elementPattern("strike")}

	blockquotePattern = elementPattern("blockquote")
	paragraphPattern  = elementPattern("p")
	lineBreakPattern  = voidPattern("br")
	rulePattern       = voidPattern("hr")

	// Tags inside a blockquote that start a new quoted line.
	quoteLineTagPattern = regexp.MustCompile(`(?i)</?(?:p|div|br|li|h[1-6])(?:\s[^>]*)?/?>`)
)

// ConvertBold turns <strong> and <b> into **text**.
func ConvertBold(text string, _ *Options) string {
	return wrapEmphasis(text, boldPatterns, "**")
}

// ConvertItalic turns <em> and <i> into *text*.
func ConvertItalic(text string, _ *Options) string {
	return wrapEmphasis(text, italicPatterns, "*")
}

// ConvertStrikethrough turns <del>, <s> and <strike> into ~~text~~.
func ConvertStrikethrough(text string, _ *Options) string {
	return wrapEmphasis(text, strikePatterns, "~~")
}

// wrapEmphasis surrounds trimmed element content with marker.
// Empty elements vanish instead of leaving bare markers behind.
func wrapEmphasis(text string, patterns []*regexp.Regexp, marker string) string {
	for _, re := range patterns {
		text = replaceAllSubmatchFunc(re, text, func(m []string) string {
			content := strings.TrimSpace(m[2])
			if content == "" {
				return ""
			}
			return marker + content + marker
		})
	}
	return text
}

// ConvertBlockquotes prefixes every line of a quote with "> ".
// Paragraph-like tags inside the quote start new lines; runs of blank lines
// fold into a single ">" line.
func ConvertBlockquotes(text string, _ *Options) string {
	return replaceAllSubmatchFunc(blockquotePattern, text, func(m []string) string {
		body := stripTags(quoteLineTagPattern.ReplaceAllString(m[2], "\n"))

		var lines []string
		blank := false
		for _, line := range strings.Split(body, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				blank = len(lines) > 0
				continue
			}
			if blank {
				lines = append(lines, ">")
				blank = false
			}
			lines = append(lines, "> "+line)
		}
		if len(lines) == 0 {
			return ""
		}
		return "\n" + strings.Join(lines, "\n") + "\n\n"
	})
}

// ConvertLineBreaks turns <br> into a Markdown hard break.
func ConvertLineBreaks(text string, _ *Options) string {
	return lineBreakPattern.ReplaceAllString(text, "  \n")
}

// ConvertParagraphs wraps paragraph content in blank lines.
// An empty paragraph leaves a single newline so it still separates the text
// around it; the normalizer folds the surrounding blank lines.
func ConvertParagraphs(text string, _ *Options) string {
	return replaceAllSubmatchFunc(paragraphPattern, text, func(m []string) string {
		content := strings.TrimSpace(m[2])
		if content == "" {
			return "\n"
		}
		return "\n" + content + "\n\n"
	})
}

// ConvertHorizontalRules turns <hr> into a thematic break.
func ConvertHorizontalRules(text string, _ *Options) string {
	return rulePattern.ReplaceAllString(text, "\n---\n\n")
}
