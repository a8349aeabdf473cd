// Package markdown converts HTML email bodies into clean markdown text
// suitable for model input.
package markdown

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// Converter turns HTML into whitespace-collapsed markdown. The conversion is
// deterministic and idempotent: feeding its own output back in does not
// materially change it.
type Converter struct {
	conv *md.Converter
}

// NewConverter builds a converter that strips script, style, meta, link and
// head elements and drops images.
func NewConverter() *Converter {
	conv := md.NewConverter("", true, &md.Options{
		HeadingStyle: "atx",
	})
	conv.Remove("script", "style", "meta", "link", "head", "img")
	return &Converter{conv: conv}
}

// FromHTML converts an HTML document to markdown with no blank lines.
func (c *Converter) FromHTML(html string) (string, error) {
	out, err := c.conv.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("markdown.FromHTML: %w", err)
	}
	return Collapse(out), nil
}

// Collapse trims every line and removes empty ones.
func Collapse(s string) string {
	lines := strings.Split(s, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
