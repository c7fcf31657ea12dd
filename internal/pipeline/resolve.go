package pipeline

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrInvalidBaseURL indicates the base URL for link resolution cannot be used.
var ErrInvalidBaseURL = errors.New("invalid base URL")

// quoteEscaper percent-encodes quotes so a resolved URL cannot end its
// attribute value.
var quoteEscaper = strings.NewReplacer(`"`, "%22", "'", "%27")

// ResolveURLs rewrites relative image and link references against base.
// If base is empty, returns the HTML unchanged.
//
// Rewrites:
//   - img[src]
//   - a[href]
//
// Leaves alone absolute URLs, protocol-relative URLs, fragment-only anchors
// and the data:, mailto:, tel: and javascript: schemes.
//
// Only the rewritten attribute values change. Every other byte, character
// references included, is copied through as written.
func ResolveURLs(htmlContent, base string) (string, error) {
	if base == "" {
		return htmlContent, nil
	}

	baseURL, err := ParseBaseURL(base)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(htmlContent))

	z := html.NewTokenizer(strings.NewReader(htmlContent))
	for {
		tt := z.Next()
		raw := string(z.Raw())
		switch tt {
		case html.ErrorToken:
			b.WriteString(raw)
			if errors.Is(z.Err(), io.EOF) {
				return b.String(), nil
			}
			return "", z.Err()
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch atom.Lookup(name) {
			case atom.Img:
				raw = resolveAttr(raw, srcAttr, baseURL)
			case atom.A:
				raw = resolveAttr(raw, hrefAttr, baseURL)
			}
		}
		b.WriteString(raw)
	}
}

// ParseBaseURL parses an absolute http(s) or file URL.
func ParseBaseURL(base string) (*url.URL, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if !u.IsAbs() || (u.Host == "" && u.Scheme != "file") {
		return nil, fmt.Errorf("%w: %q is not absolute", ErrInvalidBaseURL, base)
	}
	return u, nil
}

// resolveAttr replaces the value of the attribute matched by re in tag with
// its absolute form. The value is resolved as written, so references such as
// &amp; in a query string are kept.
func resolveAttr(tag string, re *regexp.Regexp, base *url.URL) string {
	m := re.FindStringSubmatchIndex(tag)
	if m == nil {
		return tag
	}

	start, end := -1, -1
	for g := 2; g < len(m); g += 2 {
		if m[g] >= 0 {
			start, end = m[g], m[g+1]
			break
		}
	}
	if start < 0 || !isRelativeRef(tag[start:end]) {
		return tag
	}

	ref, err := url.Parse(strings.TrimSpace(tag[start:end]))
	if err != nil {
		return tag
	}
	resolved := quoteEscaper.Replace(base.ResolveReference(ref).String())

	// Unquoted values gain quotes; quoted ones keep theirs.
	if start == 0 || (tag[start-1] != '"' && tag[start-1] != '\'') {
		return tag[:start] + `"` + resolved + `"` + tag[end:]
	}
	return tag[:start] + resolved + tag[end:]
}

// isRelativeRef reports whether ref should be resolved against a base.
func isRelativeRef(ref string) bool {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}

	lower := strings.ToLower(ref)
	for _, scheme := range []string{"http:", "https:", "file:", "data:", "mailto:", "tel:", "javascript:"} {
		if strings.HasPrefix(lower, scheme) {
			return false
		}
	}
	return true
}
