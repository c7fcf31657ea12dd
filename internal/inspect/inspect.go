// Package inspect parses Markdown with goldmark and reports its structure.
// The CLI prints the report in verbose mode; tests use it to check that
// converted output parses as the intended GitHub Flavored Markdown.
package inspect

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Stats counts the block and inline elements of a Markdown document.
type Stats struct {
	Title       string // text of the first level-1 heading
	Headings    int
	Paragraphs  int
	CodeBlocks  int      // fenced and indented
	Languages   []string // fenced code languages, first-seen order, no duplicates
	Tables      int
	TableRows   int // body rows, header excluded
	Lists       int
	ListItems   int
	Blockquotes int
	Rules       int
	Links       int // inline links and autolinks
	Images      int
	Strikes     int
}

// Analyzer parses Markdown with the GFM extension set.
// Safe for concurrent use.
type Analyzer struct {
	md goldmark.Markdown
}

// NewAnalyzer creates an Analyzer with GFM tables, strikethrough,
// autolinks and task lists enabled.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Analyze parses markdown and counts its elements.
func (a *Analyzer) Analyze(markdown string) *Stats {
	src := []byte(markdown)
	doc := a.md.Parser().Parse(text.NewReader(src))

	s := &Stats{}
	seen := make(map[string]bool)

	// The walker never returns an error.
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			s.Headings++
			if node.Level == 1 && s.Title == "" {
				s.Title = strings.TrimSpace(nodeText(node, src))
			}
		case *ast.Paragraph:
			s.Paragraphs++
		case *ast.FencedCodeBlock:
			s.CodeBlocks++
			if lang := string(node.Language(src)); lang != "" && !seen[lang] {
				seen[lang] = true
				s.Languages = append(s.Languages, lang)
			}
		case *ast.CodeBlock:
			s.CodeBlocks++
		case *east.Table:
			s.Tables++
		case *east.TableRow:
			s.TableRows++
		case *ast.List:
			s.Lists++
		case *ast.ListItem:
			s.ListItems++
		case *ast.Blockquote:
			s.Blockquotes++
		case *ast.ThematicBreak:
			s.Rules++
		case *ast.Link, *ast.AutoLink:
			s.Links++
		case *ast.Image:
			s.Images++
		case *east.Strikethrough:
			s.Strikes++
		}
		return ast.WalkContinue, nil
	})

	return s
}

// Analyze parses markdown with a fresh Analyzer.
func Analyze(markdown string) *Stats {
	return NewAnalyzer().Analyze(markdown)
}

// Summary lists the non-zero counts on one line, e.g.
// "2 headings, 1 code block (go), 3 links". Returns "empty" for no content.
func (s *Stats) Summary() string {
	var parts []string
	add := func(n int, singular, plural string) {
		switch {
		case n == 1:
			parts = append(parts, "1 "+singular)
		case n > 1:
			parts = append(parts, fmt.Sprintf("%d %s", n, plural))
		}
	}

	add(s.Headings, "heading", "headings")
	add(s.Paragraphs, "paragraph", "paragraphs")
	if s.CodeBlocks > 0 {
		before := len(parts)
		add(s.CodeBlocks, "code block", "code blocks")
		if len(s.Languages) > 0 {
			parts[before] += " (" + strings.Join(s.Languages, ", ") + ")"
		}
	}
	add(s.Tables, "table", "tables")
	add(s.Lists, "list", "lists")
	add(s.Blockquotes, "blockquote", "blockquotes")
	add(s.Links, "link", "links")
	add(s.Images, "image", "images")

	if len(parts) == 0 {
		return "empty"
	}
	return strings.Join(parts, ", ")
}

// nodeText concatenates the literal text below n.
func nodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		default:
			b.WriteString(nodeText(c, src))
		}
	}
	return b.String()
}
