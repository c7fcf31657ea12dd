package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// Precompiled regex patterns for list conversion.
var (
	// Groups: 1="/" on end tags, 2=tag name.
	listTagPattern     = regexp.MustCompile(`(?i)<(/?)(ul|ol)(?:\s[^>]*)?>`)
	listItemTagPattern = regexp.MustCompile(`(?i)<(/?)(ul|ol|li)(?:\s[^>]*)?>`)
)

// ConvertLists turns <ul> and <ol> blocks into Markdown lists.
// Nesting is tracked so an inner list stays inside its outer list, but inner
// items are flattened into the line of the item that contains them; nested
// indentation is not reproduced. Item markup is reduced to plain text.
// A list with no end tag is left untouched.
func ConvertLists(text string, _ *Options) string {
	var b strings.Builder
	rest := text
	for {
		loc := listTagPattern.FindStringSubmatchIndex(rest)
		if loc == nil {
			b.WriteString(rest)
			return b.String()
		}

		// Stray end tag or unclosed list: copy through and keep scanning.
		closing := loc[3] > loc[2]
		end, after := -1, -1
		if !closing {
			end, after = matchListEnd(rest, loc[1])
		}
		if end < 0 {
			b.WriteString(rest[:loc[1]])
			rest = rest[loc[1]:]
			continue
		}

		ordered := strings.EqualFold(rest[loc[4]:loc[5]], "ol")
		b.WriteString(rest[:loc[0]])
		b.WriteString(renderList(listItems(rest[loc[1]:end]), ordered))
		rest = rest[after:]
	}
}

// matchListEnd finds the end tag that balances a list opened just before from.
// Returns the start and end offsets of that tag, or -1, -1.
func matchListEnd(s string, from int) (start, end int) {
	depth := 1
	for _, loc := range listTagPattern.FindAllStringSubmatchIndex(s[from:], -1) {
		if loc[3] > loc[2] {
			depth--
		} else {
			depth++
		}
		if depth == 0 {
			return from + loc[0], from + loc[1]
		}
	}
	return -1, -1
}

// listItems splits a list body at its top-level <li> tags and flattens each
// item, including any nested lists, to one line.
func listItems(body string) []string {
	var items []string
	depth, start := 0, -1
	for _, loc := range listItemTagPattern.FindAllStringSubmatchIndex(body, -1) {
		closing := loc[3] > loc[2]
		name := strings.ToLower(body[loc[4]:loc[5]])
		switch {
		case name != "li" && closing:
			depth--
		case name != "li":
			depth++
		case !closing && depth == 0:
			if start >= 0 {
				items = append(items, flatten(body[start:loc[0]]))
			}
			start = loc[1]
		}
	}
	if start >= 0 {
		items = append(items, flatten(body[start:]))
	}
	return items
}

func renderList(items []string, ordered bool) string {
	lines := make([]string, len(items))
	for i, item := range items {
		marker := "-"
		if ordered {
			marker = strconv.Itoa(i+1) + "."
		}
		lines[i] = marker + " " + item
	}
	return "\n" + strings.Join(lines, "\n") + "\n\n"
}
