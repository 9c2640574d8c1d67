package profiles

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	htmlTagPattern    = regexp.MustCompile(`<(?:[a-zA-Z][a-zA-Z0-9]*|/[a-zA-Z][a-zA-Z0-9]*|!--)[^>]*>`)
	spacePattern      = regexp.MustCompile(`[ \t\f\v]+`)
	blankLinesPattern = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes pasted resume text. HTML markup is stripped with
// block elements turned into line breaks; whitespace is collapsed within
// lines and runs of blank lines are reduced to one.
func CleanText(content string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}

	if htmlTagPattern.MatchString(content) {
		if text, ok := htmlToText(content); ok {
			content = text
		}
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spacePattern.ReplaceAllString(line, " "))
	}

	result := strings.Join(lines, "\n")
	result = blankLinesPattern.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

func htmlToText(html string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false
	}

	doc.Find("script, style, noscript, head").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, li, tr, h1, h2, h3, h4, h5, h6, section, article").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return doc.Text(), true
}
