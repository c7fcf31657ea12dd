package scrape

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Source is a citation attached to an answer.
type Source struct {
	Title string
	URL   string
}

// Message is one turn of a conversation.
type Message struct {
	Role    string // UserRole or the platform name
	HTML    string // inner HTML of the message body
	Model   string // model label shown next to the answer, if any
	Sources []Source
}

// Page is a conversation selected from page HTML.
type Page struct {
	Title    string
	Messages []Message
}

// Select parses pageHTML and extracts the title and messages of p in
// document order. Returns ErrNoContent when no message has content.
func Select(pageHTML string, p Platform) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseHTML, err)
	}

	scope := doc.Selection
	if p.ContentSelector != "" {
		if content := doc.Find(p.ContentSelector); content.Length() > 0 {
			scope = content
		}
	}

	var messages []Message
	switch p.Layout {
	case SearchSections:
		messages = selectSections(scope, p)
	default:
		messages = selectMessages(scope, p)
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("%w on %s page", ErrNoContent, p.Name)
	}

	return &Page{Title: selectTitle(doc, p), Messages: messages}, nil
}

// selectTitle returns the first non-empty text among the title selectors.
func selectTitle(doc *goquery.Document, p Platform) string {
	for _, sel := range p.TitleSelectors {
		if text := cleanText(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

func selectMessages(scope *goquery.Selection, p Platform) []Message {
	var messages []Message
	scope.Find(p.messageSelector()).Each(func(_ int, s *goquery.Selection) {
		// Skip elements nested in another match, such as a content wrapper
		// that repeats the role attribute.
		if s.ParentsFiltered(p.messageSelector()).Length() > 0 {
			return
		}

		role := p.Name
		if s.Is(p.UserSelector) {
			role = UserRole
		}

		body := s
		if p.BodySelector != "" {
			if inner := s.Find(p.BodySelector).First(); inner.Length() > 0 {
				body = inner
			}
		}

		html, err := body.Html()
		if err != nil || strings.TrimSpace(html) == "" {
			return
		}
		messages = append(messages, Message{Role: role, HTML: html})
	})
	return messages
}

// selectSections pairs the n-th question with the n-th answer. Sources
// found anywhere in scope are attached to the last answer.
func selectSections(scope *goquery.Selection, p Platform) []Message {
	questions := scope.Find(p.QuestionSelector)
	answers := scope.Find(p.AnswerSelector)
	var models *goquery.Selection
	if p.ModelSelector != "" {
		models = scope.Find(p.ModelSelector)
	}

	var messages []Message
	for i, n := 0, max(questions.Length(), answers.Length()); i < n; i++ {
		if q := questions.Eq(i); q.Length() > 0 {
			if html, err := q.Html(); err == nil && strings.TrimSpace(html) != "" {
				messages = append(messages, Message{Role: UserRole, HTML: html})
			}
		}
		a := answers.Eq(i)
		if a.Length() == 0 {
			continue
		}
		html, err := a.Html()
		if err != nil || strings.TrimSpace(html) == "" {
			continue
		}
		msg := Message{Role: p.Name, HTML: html}
		if models != nil {
			msg.Model = cleanText(models.Eq(i).Text())
		}
		messages = append(messages, msg)
	}

	if p.SourceSelector != "" {
		if sources := selectSources(scope, p.SourceSelector); len(sources) > 0 {
			for i := len(messages) - 1; i >= 0; i-- {
				if messages[i].Role != UserRole {
					messages[i].Sources = sources
					break
				}
			}
		}
	}
	return messages
}

// selectSources returns the links matched by selector, without duplicates.
func selectSources(scope *goquery.Selection, selector string) []Source {
	var sources []Source
	seen := make(map[string]bool)
	scope.Find(selector).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		href = strings.TrimSpace(href)
		if !ok || href == "" || seen[href] {
			return
		}
		seen[href] = true
		sources = append(sources, Source{Title: cleanText(s.Text()), URL: href})
	})
	return sources
}

// cleanText collapses whitespace runs into single spaces.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
