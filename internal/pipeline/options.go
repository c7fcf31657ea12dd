package pipeline

// Options carries the settings rules read while rewriting.
// Rules treat it as read-only.
type Options struct {
	PreserveEmptyLines  bool
	ConvertLinks        bool
	ConvertImages       bool
	DefaultCodeLanguage string
	DetectCodeLanguage  bool
	RemoveComments      bool
	DecodeEntities      bool
}

// DefaultOptions returns the settings used when a rule receives nil options.
func DefaultOptions() *Options {
	return &Options{
		ConvertLinks:   true,
		ConvertImages:  true,
		RemoveComments: true,
		DecodeEntities: true,
	}
}

// Rule rewrites the whole document and returns the result.
// A nil opts means DefaultOptions.
type Rule func(text string, opts *Options) string

func orDefault(opts *Options) *Options {
	if opts == nil {
		return DefaultOptions()
	}
	return opts
}
