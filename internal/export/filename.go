package export

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultFilenameTemplate names files by date, time, platform and title.
const DefaultFilenameTemplate = "%Y-%M-%D_%h-%m-%s_%W_%T"

// Length limits for templates and the names they produce.
const (
	MaxTemplateLength = 200
	MaxFilenameLength = 100
)

// fallbackFilename is used when sanitizing leaves nothing.
const fallbackFilename = "export"

// ErrInvalidTemplate indicates a filename template that cannot be used.
var ErrInvalidTemplate = errors.New("invalid filename template")

// placeholderKeys are the letters that may follow % in a template.
const placeholderKeys = "YMDhmstWHT"

var (
	reservedChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f\x7f]`)
	separatorRun  = regexp.MustCompile(`[\s\p{Z}_]+`)
)

// FilenameVars are the values substituted into a filename template.
type FilenameVars struct {
	Title    string
	Platform string
	Host     string
}

// ValidateTemplate checks a filename template.
// Returns ErrInvalidTemplate if it is blank or longer than MaxTemplateLength.
func ValidateTemplate(template string) error {
	if strings.TrimSpace(template) == "" {
		return fmt.Errorf("%w: template cannot be empty", ErrInvalidTemplate)
	}
	if len(template) > MaxTemplateLength {
		return fmt.Errorf("%w: template exceeds %d characters", ErrInvalidTemplate, MaxTemplateLength)
	}
	return nil
}

// FormatFilename expands template and returns a safe file name ending in .md.
//
// Placeholders:
//
//	%Y year       %M month    %D day
//	%h hour (24h) %m minute   %s second
//	%t Unix time  %W platform %H host
//	%T title
//
// Date and time parts are zero-padded. Unknown placeholders are kept as
// written. An empty template uses DefaultFilenameTemplate.
func FormatFilename(template string, vars FilenameVars, now time.Time) string {
	if template == "" {
		template = DefaultFilenameTemplate
	}

	var b strings.Builder
	b.Grow(len(template) + len(vars.Title))

	for i := 0; i < len(template); i++ {
		if template[i] != '%' || i+1 >= len(template) || !strings.ContainsRune(placeholderKeys, rune(template[i+1])) {
			b.WriteByte(template[i])
			continue
		}
		i++
		b.WriteString(placeholder(template[i], vars, now))
	}

	name := SanitizeFilename(b.String())
	if name == "" {
		name = fallbackFilename
	}
	return name + ".md"
}

func placeholder(key byte, vars FilenameVars, now time.Time) string {
	switch key {
	case 'Y':
		return now.Format("2006")
	case 'M':
		return now.Format("01")
	case 'D':
		return now.Format("02")
	case 'h':
		return now.Format("15")
	case 'm':
		return now.Format("04")
	case 's':
		return now.Format("05")
	case 't':
		return strconv.FormatInt(now.Unix(), 10)
	case 'W':
		return SanitizeFilename(vars.Platform)
	case 'H':
		return SanitizeFilename(vars.Host)
	default: // 'T'
		return SanitizeFilename(vars.Title)
	}
}

// SanitizeFilename makes s safe to use as a file name on common file
// systems. Reserved and control characters are removed, whitespace runs
// become a single underscore, and the result is capped at
// MaxFilenameLength characters.
func SanitizeFilename(s string) string {
	s = reservedChars.ReplaceAllString(s, "")
	s = separatorRun.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if utf8.RuneCountInString(s) > MaxFilenameLength {
		s = strings.TrimRight(string([]rune(s)[:MaxFilenameLength]), "_")
	}
	return s
}
