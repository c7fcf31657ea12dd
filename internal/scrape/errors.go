package scrape

import "errors"

// Sentinel errors for fetching and selection.
var (
	ErrUnknownPlatform = errors.New("unknown platform")
	ErrInvalidURL      = errors.New("invalid page URL")
	ErrNoContent       = errors.New("no messages found")
	ErrParseHTML       = errors.New("failed to parse page HTML")
	ErrBrowserConnect  = errors.New("failed to connect to browser")
	ErrPageLoad        = errors.New("failed to load page")
)
