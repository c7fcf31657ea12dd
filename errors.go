package html2md

import (
	"errors"

	"github.com/alnah/go-html2md/internal/pipeline"
)

// Sentinel errors for option validation.
var (
	ErrInvalidCodeLanguage = errors.New("invalid default code language")
	ErrInvalidBaseURL      = pipeline.ErrInvalidBaseURL
)
