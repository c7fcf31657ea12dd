package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

type headingRule struct {
	pattern *regexp.Regexp
	prefix  string
}

// headingRules holds one rule per level; index 0 is <h1>.
var headingRules = func() [6]headingRule {
	var rules [6]headingRule
	for i := range rules {
		level := i + 1
		rules[i] = headingRule{
			pattern: elementPattern("h" + strconv.Itoa(level)),
			prefix:  strings.Repeat("#", level),
		}
	}
	return rules
}()

// ConvertHeadings turns <h1>..<h6> into ATX headings. Attributes are ignored.
func ConvertHeadings(text string, _ *Options) string {
	for _, h := range headingRules {
		prefix := h.prefix
		text = replaceAllSubmatchFunc(h.pattern, text, func(m []string) string {
			return "\n" + prefix + " " + strings.TrimSpace(m[2]) + "\n\n"
		})
	}
	return text
}
