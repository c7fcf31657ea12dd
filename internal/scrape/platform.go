package scrape

import (
	"fmt"
	"net/url"
	"strings"
)

// Layout is how a platform arranges a conversation.
type Layout int

const (
	// MessageList pages alternate user and assistant message elements.
	MessageList Layout = iota
	// SearchSections pages pair a question element with an answer element.
	SearchSections
)

// Platform describes the markup of one chat service.
type Platform struct {
	ID          string   // short name used on the command line
	Name        string   // display name, also the assistant role heading
	URLPatterns []string // host and path prefixes of conversation pages

	TitleSelectors  []string // tried in order; the first non-empty text wins
	ContentSelector string   // scope for message selectors; whole page when absent
	Layout          Layout

	// MessageList selectors.
	UserSelector      string
	AssistantSelector string
	BodySelector      string // content inside a message element, when present

	// SearchSections selectors.
	QuestionSelector string
	AnswerSelector   string
	ModelSelector    string
	SourceSelector   string
}

// UserRole is the heading for messages written by the user.
const UserRole = "User"

// platforms is the registry, in detection order.
var platforms = []Platform{
	{
		ID:   "chatgpt",
		Name: "ChatGPT",
		URLPatterns: []string{
			"chatgpt.com/c/", "chatgpt.com/share/",
			"chat.openai.com/c/", "chat.openai.com/share/",
		},
		TitleSelectors:    []string{"h1", "title"},
		ContentSelector:   "main",
		Layout:            MessageList,
		UserSelector:      `[data-message-author-role="user"]`,
		AssistantSelector: `[data-message-author-role="assistant"]`,
		BodySelector:      ".markdown",
	},
	{
		ID:                "claude",
		Name:              "Claude",
		URLPatterns:       []string{"claude.ai/chat/", "claude.ai/project/", "claude.ai/share/"},
		TitleSelectors:    []string{`[data-testid="chat-title"]`, "title", "h1"},
		ContentSelector:   `[data-testid="chat-messages"]`,
		Layout:            MessageList,
		UserSelector:      `[data-testid="user-message"]`,
		AssistantSelector: `[data-testid="assistant-message"]`,
		BodySelector:      ".prose",
	},
	{
		ID:                "gemini",
		Name:              "Gemini",
		URLPatterns:       []string{"gemini.google.com/app/", "gemini.google.com/u/", "gemini.google.com/share/"},
		TitleSelectors:    []string{`[data-test-id="conversation-title"]`, "title", "h1"},
		ContentSelector:   ".conversation-container",
		Layout:            MessageList,
		UserSelector:      ".user-query-container",
		AssistantSelector: ".model-response-text",
		BodySelector:      ".query-text, .gds-body-l",
	},
	{
		ID:               "perplexity",
		Name:             "Perplexity",
		URLPatterns:      []string{"perplexity.ai/search/", "perplexity.ai/page/"},
		TitleSelectors:   []string{"h1", "title"},
		ContentSelector:  `[data-testid="search-results"]`,
		Layout:           SearchSections,
		QuestionSelector: `[data-testid="query-text"]`,
		AnswerSelector:   `[data-testid="answer-text"]`,
		ModelSelector:    `[data-testid="model-name"]`,
		SourceSelector:   `[data-testid="source-item"] a[href], a[data-testid="citation"]`,
	},
	{
		ID:               "phind",
		Name:             "Phind",
		URLPatterns:      []string{"phind.com/search", "phind.com/agent"},
		TitleSelectors:   []string{"h1", "title"},
		ContentSelector:  ".search-results",
		Layout:           SearchSections,
		QuestionSelector: ".question-text",
		AnswerSelector:   ".answer-text",
		ModelSelector:    ".model-indicator",
		SourceSelector:   ".source-item a[href]",
	},
	{
		ID:               "deepwiki",
		Name:             "DeepWiki",
		URLPatterns:      []string{"deepwiki.com/"},
		TitleSelectors:   []string{"title", ".text-xl", ".text-2xl"},
		ContentSelector:  `[data-query-display="true"]`,
		Layout:           SearchSections,
		QuestionSelector: ".text-xl, .text-2xl",
		AnswerSelector:   ".prose-custom",
	},
}

// Platforms returns every supported platform in detection order.
func Platforms() []Platform {
	return append([]Platform(nil), platforms...)
}

// PlatformIDs returns the IDs accepted by Lookup.
func PlatformIDs() []string {
	ids := make([]string, len(platforms))
	for i, p := range platforms {
		ids[i] = p.ID
	}
	return ids
}

// Lookup returns the platform with the given ID (case-insensitive).
func Lookup(id string) (Platform, error) {
	for _, p := range platforms {
		if strings.EqualFold(p.ID, id) {
			return p, nil
		}
	}
	return Platform{}, fmt.Errorf("%w: %q", ErrUnknownPlatform, id)
}

// DetectPlatform finds the platform whose conversation pages include
// rawURL. The scheme, a leading "www." and the query are ignored.
func DetectPlatform(rawURL string) (Platform, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return Platform{}, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	location := strings.TrimPrefix(strings.ToLower(u.Host), "www.") + u.EscapedPath()
	for _, p := range platforms {
		for _, pattern := range p.URLPatterns {
			if strings.HasPrefix(location, pattern) || strings.Contains(location, "."+pattern) {
				return p, nil
			}
		}
	}
	return Platform{}, fmt.Errorf("%w: no platform matches %s", ErrUnknownPlatform, u.Host)
}

// messageSelector matches every message element of a MessageList platform.
func (p Platform) messageSelector() string {
	return p.UserSelector + ", " + p.AssistantSelector
}

// waitSelector is the element whose presence shows a conversation rendered.
func (p Platform) waitSelector() string {
	if p.Layout == SearchSections {
		return p.AnswerSelector
	}
	return p.messageSelector()
}
