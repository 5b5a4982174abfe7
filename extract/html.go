package extract

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
)

// extractHTML parses an HTML document, strips script and style nodes, and
// returns the page title (falling back to the given name) plus the collapsed
// visible text.
func (e *Extractor) extractHTML(data []byte, fallbackTitle string) (title, body string, err error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		e.logger.Warn("failed to parse HTML", "err", err)
		return fallbackTitle, "", err
	}

	title = collapseWhitespace(doc.Find("title").First().Text())
	if title == "" {
		title = fallbackTitle
	}

	doc.Find("script, style, noscript").Remove()

	body = collapseWhitespace(doc.Find("body").Text())
	if body == "" {
		// Fragments without a <body> element still carry text.
		body = collapseWhitespace(doc.Text())
	}

	return title, body, nil
}
