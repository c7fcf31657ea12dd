package pipeline

import (
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// Precompiled regex patterns for code conversion.
var (
	preBlockPattern    = elementPattern("pre")
	codeElemPattern    = elementPattern("code")
	backtickRunPattern = regexp.MustCompile("`+")

	// Class name conventions, in order of preference.
	languageClassPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\blanguage-([\w+#.-]+)`),
		regexp.MustCompile(`(?i)\blang-([\w+#.-]+)`),
		regexp.MustCompile(`(?i)\bhljs-([\w+#.-]+)`),
	}
)

// knownLanguages are class tokens accepted as a language without a prefix.
var knownLanguages = map[string]bool{
	"bash": true, "c": true, "cpp": true, "csharp": true, "css": true,
	"diff": true, "dockerfile": true, "go": true, "haskell": true, "html": true,
	"java": true, "javascript": true, "js": true, "json": true, "jsx": true,
	"kotlin": true, "lua": true, "markdown": true, "perl": true, "php": true,
	"powershell": true, "python": true, "ruby": true, "rust": true, "scala": true,
	"shell": true, "sql": true, "swift": true, "toml": true, "ts": true,
	"tsx": true, "typescript": true, "xml": true, "yaml": true,
}

// ConvertCodeBlocks turns <pre> blocks into fenced code blocks.
// When the block holds a <code> element its content is the code and any text
// around it (toolbars, copy buttons) is dropped; otherwise the whole <pre>
// body is the code. Must run before any rule that rewrites inline markup.
func ConvertCodeBlocks(text string, opts *Options) string {
	o := orDefault(opts)
	return replaceAllSubmatchFunc(preBlockPattern, text, func(m []string) string {
		preAttrs, body := m[1], m[2]
		var codeAttrs string
		if code := codeElemPattern.FindStringSubmatch(body); code != nil {
			codeAttrs, body = code[1], code[2]
		}
		code := strings.TrimSpace(stripTags(body))
		lang := codeLanguage(o, code, codeAttrs, preAttrs)
		return "\n" + fence(code, lang) + "\n\n"
	})
}

// ConvertInlineCode turns <code> elements left outside code blocks into code
// spans. Content containing a backtick gets a double-backtick span.
func ConvertInlineCode(text string, _ *Options) string {
	return replaceAllSubmatchFunc(codeElemPattern, text, func(m []string) string {
		code := strings.TrimSpace(stripTags(m[2]))
		if code == "" {
			return ""
		}
		if strings.Contains(code, "`") {
			return "`` " + code + " ``"
		}
		return "`" + code + "`"
	})
}

// fence wraps code in a backtick fence long enough not to be closed by a
// backtick run inside the code.
func fence(code, lang string) string {
	size := 3
	for _, run := range backtickRunPattern.FindAllString(code, -1) {
		if len(run) >= size {
			size = len(run) + 1
		}
	}
	marker := strings.Repeat("`", size)
	return marker + lang + "\n" + code + "\n" + marker
}

// codeLanguage resolves the fence language: class hints on <code>, then on
// <pre>, then content sniffing when enabled, then the configured default.
func codeLanguage(o *Options, code string, attrs ...string) string {
	for _, a := range attrs {
		class, _ := attrValue(a, classAttr)
		if lang := LanguageFromClass(class); lang != "" {
			return lang
		}
	}
	if o.DetectCodeLanguage {
		if lang := DetectLanguage(DecodeEntities(code)); lang != "" {
			return lang
		}
	}
	return o.DefaultCodeLanguage
}

// LanguageFromClass extracts a language name from a class attribute value.
// Recognizes language-X, lang-X and hljs-X, then bare well-known names.
// Returns "" when nothing matches.
func LanguageFromClass(class string) string {
	if class == "" {
		return ""
	}
	for _, re := range languageClassPatterns {
		if m := re.FindStringSubmatch(class); m != nil {
			return strings.ToLower(m[1])
		}
	}
	for _, token := range strings.Fields(class) {
		if token = strings.ToLower(token); knownLanguages[token] {
			return token
		}
	}
	return ""
}

// DetectLanguage guesses the language of code from its content using the
// chroma lexer analysers. Returns "" when no analyser is confident.
func DetectLanguage(code string) string {
	if strings.TrimSpace(code) == "" {
		return ""
	}
	lexer := lexers.Analyse(code)
	if lexer == nil {
		return ""
	}
	cfg := lexer.Config()
	if len(cfg.Aliases) > 0 {
		return strings.ToLower(cfg.Aliases[0])
	}
	return strings.ToLower(strings.ReplaceAll(cfg.Name, " ", ""))
}

// IsKnownLanguage reports whether name is a language chroma has a lexer for.
func IsKnownLanguage(name string) bool {
	return name != "" && lexers.Get(name) != nil
}
