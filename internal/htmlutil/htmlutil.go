// Package htmlutil loads HTML pages and extracts headline text from them.
package htmlutil

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"github.com/sonnert/SyntacticParser/internal/textutil"
)

// HeadlineSelector matches the elements whose text is treated as a headline.
const HeadlineSelector = "title, h1, h2, h3"

// LoadHTML parses an HTML document, converting it to UTF-8 first. contentType
// is the value of the Content-Type header, if any; the encoding is otherwise
// sniffed from <meta> tags and the content itself.
func LoadHTML(r io.Reader, contentType string) (*goquery.Document, error) {
	utf8, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(utf8)
}

// LoadHTMLString parses an HTML string into a goquery Document.
func LoadHTMLString(htmlStr string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
}

// Headlines returns the text of the page title and h1-h3 headings in document
// order, whitespace normalized. Empty and repeated headlines are dropped.
func Headlines(doc *goquery.Document) []string {
	var out []string
	seen := make(map[string]bool)
	doc.Find(HeadlineSelector).Each(func(_ int, s *goquery.Selection) {
		text := ElementText(s)
		if text == "" || seen[text] {
			return
		}
		seen[text] = true
		out = append(out, text)
	})
	return out
}

// ElementText returns the text of s with runs of whitespace collapsed.
func ElementText(s *goquery.Selection) string {
	return textutil.NormalizeWhitespaces(s.Text())
}
