package enhance

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ReadableText extracts the readable body text from an HTML payload,
// dropping scripts, styles and chrome elements. Returns "" when the
// payload cannot be parsed as markup.
func ReadableText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	doc.Find("script, style, nav, header, footer, aside, noscript").Remove()

	body := doc.Find("body")
	if body.Length() == 0 {
		body = doc.Selection
	}

	return collapseWhitespace(body.Text())
}

func collapseWhitespace(text string) string {
	var b strings.Builder
	lastBlank := true
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			lastBlank = true
			continue
		}
		if !lastBlank {
			b.WriteString("\n")
		} else if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(line)
		lastBlank = false
	}
	return b.String()
}
