package export

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestFormatFilename(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 7, 9, 5, 4, 0, time.UTC)

	tests := []struct {
		name     string
		template string
		vars     FilenameVars
		want     string
	}{
		{
			name:     "default template",
			template: DefaultFilenameTemplate,
			vars:     FilenameVars{Title: "How to: use Go?", Platform: "ChatGPT"},
			want:     "2026-03-07_09-05-04_ChatGPT_How_to_use_Go.md",
		},
		{
			name:     "empty template uses default",
			template: "",
			vars:     FilenameVars{Title: "T", Platform: "Claude"},
			want:     "2026-03-07_09-05-04_Claude_T.md",
		},
		{
			name:     "unix time",
			template: "%t",
			want:     "1772874304.md",
		},
		{
			name:     "host",
			template: "%H-%T",
			vars:     FilenameVars{Title: "chat", Host: "chatgpt.com"},
			want:     "chatgpt.com-chat.md",
		},
		{
			name:     "unknown placeholder kept",
			template: "%x_%T",
			vars:     FilenameVars{Title: "T"},
			want:     "%x_T.md",
		},
		{
			name:     "trailing percent kept",
			template: "%T%",
			vars:     FilenameVars{Title: "T"},
			want:     "T%.md",
		},
		{
			name:     "placeholders in title not expanded",
			template: "%T",
			vars:     FilenameVars{Title: "%Y report"},
			want:     "%Y_report.md",
		},
		{
			name:     "empty result falls back",
			template: "%T",
			want:     "export.md",
		},
		{
			name:     "missing platform leaves no double separator",
			template: "%Y_%W_%T",
			vars:     FilenameVars{Title: "T"},
			want:     "2026_T.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FormatFilename(tt.template, tt.vars, now)
			if got != tt.want {
				t.Errorf("FormatFilename(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestFormatFilename_LongTitle(t *testing.T) {
	t.Parallel()

	got := FormatFilename("%T", FilenameVars{Title: strings.Repeat("a", 150)}, time.Now())
	if got != strings.Repeat("a", MaxFilenameLength)+".md" {
		t.Errorf("got %d characters, want %d", len(got), MaxFilenameLength+len(".md"))
	}
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"reserved characters removed", `a<b>c:d"e/f\g|h?i*j`, "abcdefghij"},
		{"whitespace becomes underscore", "a  b\u3000c", "a_b_c"},
		{"control characters removed", "a\tb\x00c", "abc"},
		{"underscore runs collapsed", "a___b", "a_b"},
		{"edges trimmed", "  _a_  ", "a"},
		{"unicode kept", "日本語 タイトル", "日本語_タイトル"},
		{"cap keeps whole runes", strings.Repeat("é", 120), strings.Repeat("é", MaxFilenameLength)},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SanitizeFilename(tt.input); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		wantErr  error
	}{
		{"default", DefaultFilenameTemplate, nil},
		{"literal text", "notes", nil},
		{"empty", "", ErrInvalidTemplate},
		{"blank", "   ", ErrInvalidTemplate},
		{"too long", strings.Repeat("%T", MaxTemplateLength), ErrInvalidTemplate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateTemplate(tt.template)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateTemplate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
