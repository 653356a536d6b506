package mock

import "github.com/fwojciec/docsearch"

var _ docsearch.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of docsearch.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*docsearch.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*docsearch.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ docsearch.Converter = (*Converter)(nil)

// Converter is a mock implementation of docsearch.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
