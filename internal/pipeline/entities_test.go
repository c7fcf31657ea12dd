package pipeline

import "testing"

// ---------------------------------------------------------------------------
// TestDecodeEntities
// ---------------------------------------------------------------------------

func TestDecodeEntities(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "no references here", "no references here"},
		{"xml entities", "&lt;b&gt; &amp; &quot;x&quot; &apos;y&apos;", `<b> & "x" 'y'`},
		{"decimal", "it&#39;s", "it's"},
		{"hex lowercase x", "&#x27;", "'"},
		{"hex uppercase X", "&#X41;", "A"},
		{"non-BMP code point", "&#x1F600;", "\U0001F600"},
		{"nbsp becomes space", "a&nbsp;b", "a b"},
		{"case-insensitive fallback", "&AMP; &NBSP; &Hellip;", "&   …"},
		{"exact case distinguishes letters", "&Eacute;&eacute;", "Éé"},
		{"ambiguous folded name left alone", "&EACUTE;", "&EACUTE;"},
		{"no double decoding", "&amp;#39;", "&#39;"},
		{"no double decoding of named", "&amp;lt;", "&lt;"},
		{"unknown name", "&bogus;", "&bogus;"},
		{"missing semicolon", "AT&T &amp", "AT&T &amp"},
		{"code point zero", "&#0;", "&#0;"},
		{"surrogate", "&#xD800;", "&#xD800;"},
		{"beyond unicode", "&#x110000;", "&#x110000;"},
		{"overflowing number", "&#99999999999999999999;", "&#99999999999999999999;"},
		{"typography", "&ldquo;Hi&rdquo; &mdash; &hellip; &euro;5", "“Hi” — … €5"},
		{"greek and math", "&alpha; &le; &Omega;", "α ≤ Ω"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := DecodeEntities(tt.input)
			if got != tt.want {
				t.Errorf("DecodeEntities(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecodeEntities_IdempotentOnPlainText(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"hello world",
		"a & b",
		"x < y > z",
		"mixed 日本語 text; with & and #",
		"& ;&#; &#x; &;",
	}

	for _, input := range inputs {
		once := DecodeEntities(input)
		twice := DecodeEntities(once)
		if once != twice {
			t.Errorf("DecodeEntities not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

// ---------------------------------------------------------------------------
// TestDecodeEntitiesRule
// ---------------------------------------------------------------------------

func TestDecodeEntitiesRule(t *testing.T) {
	t.Parallel()

	t.Run("enabled by default", func(t *testing.T) {
		t.Parallel()

		if got := DecodeEntitiesRule("&lt;", nil); got != "<" {
			t.Errorf("got %q, want %q", got, "<")
		}
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()

		opts := DefaultOptions()
		opts.DecodeEntities = false
		if got := DecodeEntitiesRule("&lt;", opts); got != "&lt;" {
			t.Errorf("got %q, want %q", got, "&lt;")
		}
	})
}
