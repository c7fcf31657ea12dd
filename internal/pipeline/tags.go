package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled patterns shared by several rules.
var (
	// Any element tag: <name ...>, </name>, <name/>. The name must start with a
	// letter, so Markdown autolinks such as <https://x.com> never match.
	elementTagPattern = regexp.MustCompile(`</?[a-zA-Z][a-zA-Z0-9:-]*(?:\s[^>]*)?/?>`)

	// Doctype, processing instructions and other <!...> / <?...?> markup.
	markupDeclPattern = regexp.MustCompile(`<[!?][^>]*>`)

	whitespaceRun = regexp.MustCompile(`\s+`)

	srcAttr   = attrPattern("src")
	altAttr   = attrPattern("alt")
	hrefAttr  = attrPattern("href")
	classAttr = attrPattern("class")
)

// elementPattern matches <name ...>content</name> across lines, capturing the
// attribute text (group 1) and the content (group 2). The content match is
// lazy, so nested elements of the same name close at the first end tag.
func elementPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?is)<` + name + `(\s[^>]*)?>(.*?)</` + name + `\s*>`)
}

// voidPattern matches a tag that has no content, such as <br>, <br/> or <hr class="x">.
func voidPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)<` + name + `(?:\s[^>]*)?/?>`)
}

// attrPattern matches name=value inside a tag with double, single or no quotes.
func attrPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\s` + name + `\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'>]+))`)
}

// attrValue returns the value of the attribute matched by re in tag.
// Reports false when the attribute is absent.
func attrValue(tag string, re *regexp.Regexp) (string, bool) {
	m := re.FindStringSubmatch(tag)
	if m == nil {
		return "", false
	}
	return m[1] + m[2] + m[3], true
}

// stripTags removes element tags and keeps the text between them.
func stripTags(s string) string {
	return elementTagPattern.ReplaceAllString(s, "")
}

// collapseWhitespace folds whitespace runs into single spaces and trims.
func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// flatten turns a markup fragment into a single line of text. Tags become
// spaces so adjacent elements do not run together.
func flatten(s string) string {
	return collapseWhitespace(elementTagPattern.ReplaceAllString(s, " "))
}

// replaceAllSubmatchFunc is ReplaceAllStringFunc with access to capture groups.
// Groups that did not participate in the match are empty strings.
func replaceAllSubmatchFunc(re *regexp.Regexp, s string, repl func(groups []string) string) string {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, loc := range matches {
		b.WriteString(s[last:loc[0]])
		groups := make([]string, len(loc)/2)
		for i := range groups {
			if loc[2*i] >= 0 {
				groups[i] = s[loc[2*i]:loc[2*i+1]]
			}
		}
		b.WriteString(repl(groups))
		last = loc[1]
	}
	b.WriteString(s[last:])
	return b.String()
}
