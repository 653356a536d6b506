// Package goquery extracts searchable text from HTML documentation pages.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docsearch"
)

// Ensure Extractor implements docsearch.Extractor.
var _ docsearch.Extractor = (*Extractor)(nil)

// boilerplateSelector matches page chrome that never holds document content.
// Framework-specific classes cover Docusaurus, VitePress/VuePress and GitBook.
const boilerplateSelector = "script, style, noscript, template, svg, nav, header, footer, aside, " +
	".theme-doc-sidebar-container, .table-of-contents, .VPSidebar, .VPNav, .VPDocAsideOutline, " +
	".sidebar, [data-testid='space.sidebar'], [data-testid='page.desktopTableOfContents']"

// contentSelectors are tried in order to find the main content root.
var contentSelectors = []string{
	".theme-doc-markdown",
	".VPDoc",
	".theme-default-content",
	"[data-testid='page.contentEditor']",
	"article",
	"main",
	"[role='main']",
	"body",
}

const blockSelector = "p, li, pre, blockquote, tr, dt, dd, div, section, br"

const headingSelector = "h1, h2, h3, h4, h5, h6"

// Extractor extracts a page's title, description and main text.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses html and returns its title, meta description and main text.
// The title is taken from the first h1 of the content, then og:title, then
// the title element. Text keeps one line per block element; headings end
// with a period so they read as sentences.
func (e *Extractor) Extract(html string) (*docsearch.ExtractResult, error) {
	if strings.TrimSpace(html) == "" {
		return nil, docsearch.Errorf(docsearch.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docsearch.Errorf(docsearch.EINVALID, "failed to parse HTML: %v", err)
	}

	result := &docsearch.ExtractResult{
		Description: metaContent(doc, "meta[name='description']", "meta[property='og:description']"),
	}

	doc.Find(boilerplateSelector).Remove()
	root := contentRoot(doc)

	if h1 := root.Find("h1").First(); h1.Length() > 0 {
		result.Title = collapse(h1.Text())
		h1.Remove()
	}
	if result.Title == "" {
		result.Title = metaContent(doc, "meta[property='og:title']")
	}
	if result.Title == "" {
		result.Title = collapse(doc.Find("title").First().Text())
	}

	root.Find(headingSelector).Each(func(_ int, sel *goquery.Selection) {
		text := collapse(sel.Text())
		if text != "" && !strings.ContainsAny(text[len(text)-1:], ".!?:") {
			sel.AppendHtml(".")
		}
		sel.AppendHtml("\n")
	})
	root.Find(blockSelector).Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml("\n")
	})

	result.Text = textLines(root.Text())
	return result, nil
}

func contentRoot(doc *goquery.Document) *goquery.Selection {
	for _, selector := range contentSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel
		}
	}
	return doc.Selection
}

func metaContent(doc *goquery.Document, selectors ...string) string {
	for _, selector := range selectors {
		if content, ok := doc.Find(selector).First().Attr("content"); ok {
			if content = collapse(content); content != "" {
				return content
			}
		}
	}
	return ""
}

// textLines collapses whitespace within each line and drops empty lines.
func textLines(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = collapse(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
