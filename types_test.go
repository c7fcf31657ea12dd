package html2md

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// TestOptions_Validate
// ---------------------------------------------------------------------------

func TestOptions_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    *Options
		wantErr error
	}{
		{"nil is valid", nil, nil},
		{"defaults are valid", DefaultOptions(), nil},
		{"simple language", &Options{DefaultCodeLanguage: "python"}, nil},
		{"language with symbols", &Options{DefaultCodeLanguage: "c++"}, nil},
		{"language with space", &Options{DefaultCodeLanguage: "python 3"}, ErrInvalidCodeLanguage},
		{"language with newline", &Options{DefaultCodeLanguage: "go\n"}, ErrInvalidCodeLanguage},
		{"language with backtick", &Options{DefaultCodeLanguage: "`go"}, ErrInvalidCodeLanguage},
		{"valid base url", &Options{BaseURL: "https://example.com/c/1"}, nil},
		{"relative base url", &Options{BaseURL: "/c/1"}, ErrInvalidBaseURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.opts.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDefaultOptions
// ---------------------------------------------------------------------------

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	got := *DefaultOptions()
	want := Options{
		ConvertLinks:   true,
		ConvertImages:  true,
		RemoveComments: true,
		DecodeEntities: true,
	}
	if got != want {
		t.Errorf("DefaultOptions() = %+v, want %+v", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestNewConverter_Options
// ---------------------------------------------------------------------------

func TestNewConverter_Options(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []Option
		want Options
	}{
		{
			name: "defaults",
			want: *DefaultOptions(),
		},
		{
			name: "each option",
			opts: []Option{
				WithPreserveEmptyLines(true),
				WithConvertLinks(false),
				WithConvertImages(false),
				WithDefaultCodeLanguage("rust"),
				WithDetectCodeLanguage(true),
				WithRemoveComments(false),
				WithDecodeEntities(false),
				WithBaseURL("https://example.com/"),
			},
			want: Options{
				PreserveEmptyLines:  true,
				DefaultCodeLanguage: "rust",
				DetectCodeLanguage:  true,
				BaseURL:             "https://example.com/",
			},
		},
		{
			name: "with options copies every field",
			opts: []Option{WithOptions(&Options{ConvertLinks: true, DefaultCodeLanguage: "go"})},
			want: Options{ConvertLinks: true, DefaultCodeLanguage: "go"},
		},
		{
			name: "with nil options restores defaults",
			opts: []Option{WithConvertLinks(false), WithOptions(nil)},
			want: *DefaultOptions(),
		},
		{
			name: "options after with options apply",
			opts: []Option{WithOptions(&Options{}), WithDecodeEntities(true)},
			want: Options{DecodeEntities: true},
		},
		{
			name: "language sanitized",
			opts: []Option{WithDefaultCodeLanguage(" `python` 3 ")},
			want: func() Options {
				o := *DefaultOptions()
				o.DefaultCodeLanguage = "python"
				return o
			}(),
		},
		{
			name: "invalid base url dropped",
			opts: []Option{WithBaseURL("::")},
			want: *DefaultOptions(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NewConverter(tt.opts...).Options()
			if got != tt.want {
				t.Errorf("Options() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestWithOptions_DoesNotAlias(t *testing.T) {
	t.Parallel()

	src := &Options{DefaultCodeLanguage: "go"}
	c := NewConverter(WithOptions(src))
	src.DefaultCodeLanguage = "python"

	if got := c.Options().DefaultCodeLanguage; got != "go" {
		t.Errorf("DefaultCodeLanguage = %q, want %q", got, "go")
	}
}
