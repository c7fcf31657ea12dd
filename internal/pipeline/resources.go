package pipeline

import "strings"

// Link is an anchor found in the source markup.
type Link struct {
	Text string
	URL  string
}

// ExtractImageURLs returns the src of every <img> in document order.
// Duplicates are kept; images without a src are skipped.
func ExtractImageURLs(html string) []string {
	var urls []string
	for _, tag := range imageTagPattern.FindAllString(html, -1) {
		if src, ok := attrValue(tag, srcAttr); ok && src != "" {
			urls = append(urls, src)
		}
	}
	return urls
}

// ExtractLinks returns every anchor that has both an href and content,
// in document order. Link text has its tags removed.
func ExtractLinks(html string) []Link {
	var links []Link
	for _, m := range anchorPattern.FindAllStringSubmatch(html, -1) {
		href, ok := attrValue(m[1], hrefAttr)
		if !ok || href == "" || m[2] == "" {
			continue
		}
		links = append(links, Link{
			Text: strings.TrimSpace(stripTags(m[2])),
			URL:  href,
		})
	}
	return links
}
