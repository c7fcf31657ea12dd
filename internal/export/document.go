// Package export assembles converted chat messages into a Markdown document
// with an optional front-matter header, and names the file it is saved to.
package export

import (
	"strconv"
	"strings"
	"time"
)

// DefaultTitle is used when a page has no usable title.
const DefaultTitle = "Untitled"

// Converter turns an HTML fragment into Markdown.
// *html2md.Converter satisfies it.
type Converter interface {
	Convert(html string) string
}

// Source is a reference cited by a message.
type Source struct {
	Title string `yaml:"title"`
	URL   string `yaml:"url"`
}

// Section is one message of a conversation.
type Section struct {
	Role    string   // heading text, such as "User" or "ChatGPT"; empty for none
	HTML    string   // message content as scraped
	Model   string   // model that produced the answer, if the page shows it
	Sources []Source // citations listed under the message
}

// Document is a whole conversation ready to be rendered.
type Document struct {
	Title    string
	Platform string
	URL      string
	Exported time.Time
	Sections []Section
}

// Render converts every section with conv and assembles the document:
// front matter (when frontMatter is set), a level-1 title, then one
// level-2 heading per role followed by its content and sources.
func (d *Document) Render(conv Converter, frontMatter bool) (string, error) {
	var b strings.Builder

	if frontMatter {
		fm, err := NewFrontMatter(d).Render()
		if err != nil {
			return "", err
		}
		b.WriteString(fm)
		b.WriteString("\n")
	}

	b.WriteString("# ")
	b.WriteString(d.title())
	b.WriteString("\n\n")

	for _, s := range d.Sections {
		writeSection(&b, conv, s)
	}

	return strings.TrimRight(b.String(), "\n") + "\n", nil
}

func (d *Document) title() string {
	if t := strings.Join(strings.Fields(d.Title), " "); t != "" {
		return t
	}
	return DefaultTitle
}

func writeSection(b *strings.Builder, conv Converter, s Section) {
	if role := strings.TrimSpace(s.Role); role != "" {
		b.WriteString("## " + role + "\n\n")
	}
	if model := strings.TrimSpace(s.Model); model != "" {
		b.WriteString("*Model: " + model + "*\n\n")
	}
	if md := conv.Convert(s.HTML); md != "" {
		b.WriteString(md)
		b.WriteString("\n\n")
	}
	if len(s.Sources) == 0 {
		return
	}
	b.WriteString("**Sources:**\n\n")
	for i, src := range s.Sources {
		b.WriteString(strconv.Itoa(i+1) + ". " + sourceLink(src) + "\n")
	}
	b.WriteString("\n")
}

// sourceLink renders a source as a Markdown link, or an autolink when it
// has no title.
func sourceLink(src Source) string {
	title := strings.Join(strings.Fields(src.Title), " ")
	if title == "" || title == src.URL {
		return "<" + src.URL + ">"
	}
	title = strings.NewReplacer("[", `\[`, "]", `\]`).Replace(title)
	return "[" + title + "](" + src.URL + ")"
}
