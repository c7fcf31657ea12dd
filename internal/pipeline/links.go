package pipeline

import "strings"

// Precompiled regex patterns for link and image conversion.
var (
	imageTagPattern = voidPattern("img")
	anchorPattern   = elementPattern("a")
)

// ConvertImages turns <img> tags into ![alt](src). Attribute order does not
// matter. An image without a usable src is left for the tag stripper.
// With ConvertImages off, every image tag is dropped.
func ConvertImages(text string, opts *Options) string {
	o := orDefault(opts)
	return imageTagPattern.ReplaceAllStringFunc(text, func(tag string) string {
		if !o.ConvertImages {
			return ""
		}
		src, ok := attrValue(tag, srcAttr)
		if !ok || strings.TrimSpace(src) == "" {
			return tag
		}
		alt, _ := attrValue(tag, altAttr)
		return "![" + collapseWhitespace(alt) + "](" + strings.TrimSpace(src) + ")"
	})
}

// ConvertLinks turns anchors into [text](href).
//
// When the visible text is empty or equals the href, the bare form <href> is
// used instead. Anchors without an href are unwrapped to their text. With
// ConvertLinks off, anchors are replaced by their inner markup so the
// remaining rules still see it.
func ConvertLinks(text string, opts *Options) string {
	o := orDefault(opts)
	return replaceAllSubmatchFunc(anchorPattern, text, func(m []string) string {
		attrs, inner := m[1], m[2]
		if !o.ConvertLinks {
			return inner
		}

		href, _ := attrValue(attrs, hrefAttr)
		href = strings.TrimSpace(href)
		if href == "" {
			return strings.TrimSpace(stripTags(inner))
		}

		label := collapseWhitespace(stripTags(inner))
		if label == "" || label == href {
			return "<" + href + ">"
		}
		return "[" + label + "](" + href + ")"
	})
}
