package export

import (
	"strings"
	"time"

	"github.com/alnah/go-html2md/internal/yamlutil"
)

// FrontMatter is the YAML header written above an exported document.
// Field order is the key order in the output.
type FrontMatter struct {
	Title    string `yaml:"title"`
	Platform string `yaml:"platform,omitempty"`
	URL      string `yaml:"url,omitempty"`
	Exported string `yaml:"exported"`
}

// NewFrontMatter describes d. The export time is RFC 3339 in UTC.
func NewFrontMatter(d *Document) FrontMatter {
	exported := d.Exported
	if exported.IsZero() {
		exported = time.Now()
	}
	return FrontMatter{
		Title:    d.title(),
		Platform: d.Platform,
		URL:      d.URL,
		Exported: exported.UTC().Format(time.RFC3339),
	}
}

// Render returns the header between "---" delimiter lines.
func (fm FrontMatter) Render() (string, error) {
	data, err := yamlutil.Marshal(fm)
	if err != nil {
		return "", err
	}
	return "---\n" + strings.TrimRight(string(data), "\n") + "\n---\n", nil
}
