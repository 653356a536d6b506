// Package readability extracts HTML page content with go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/docsearch"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements docsearch.Extractor at compile time.
var _ docsearch.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract the main content of a page.
// It returns ContentHTML rather than Text.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the title, excerpt and main content.
func (e *Extractor) Extract(rawHTML string) (*docsearch.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docsearch.Errorf(docsearch.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, docsearch.Errorf(docsearch.EINVALID, "failed to extract content: %v", err)
	}

	return &docsearch.ExtractResult{
		Title:       trimSiteName(strings.TrimSpace(article.Title), strings.TrimSpace(article.SiteName)),
		Description: strings.TrimSpace(article.Excerpt),
		ContentHTML: article.Content,
	}, nil
}

// titleSeparators join a page title and the site name in a <title> element.
var titleSeparators = []string{" | ", " - ", " \u2013 ", " \u2014 ", " \u00b7 ", " :: "}

// trimSiteName removes the site name from either end of a page title, so
// "Installation | Acme Docs" indexes as "Installation".
func trimSiteName(title, site string) string {
	if site == "" || title == site {
		return title
	}
	for _, sep := range titleSeparators {
		if t, ok := strings.CutSuffix(title, sep+site); ok && t != "" {
			return strings.TrimSpace(t)
		}
		if t, ok := strings.CutPrefix(title, site+sep); ok && t != "" {
			return strings.TrimSpace(t)
		}
	}
	return title
}
