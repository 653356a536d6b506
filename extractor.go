package docsearch

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata or the first heading.
	Title string

	// Description is the page summary from meta tags, if any.
	Description string

	// Text is the main content as plain text.
	// Boilerplate (nav, footer, sidebar, scripts) has been removed.
	Text string

	// ContentHTML is the main content as HTML, set by extractors that do
	// not produce plain text themselves. A Converter turns it into markdown.
	ContentHTML string
}

// Extractor extracts the searchable content of an HTML page.
type Extractor interface {
	// Extract processes raw HTML and returns its title and main text.
	Extract(html string) (*ExtractResult, error)
}

// Converter converts HTML content to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	Convert(html string) (string, error)
}
