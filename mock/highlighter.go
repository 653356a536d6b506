package mock

import "github.com/fwojciec/docsearch"

var _ docsearch.Highlighter = (*Highlighter)(nil)

// Highlighter is a mock implementation of docsearch.Highlighter.
type Highlighter struct {
	HighlightsFn func(query, text string) []string
}

func (h *Highlighter) Highlights(query, text string) []string {
	return h.HighlightsFn(query, text)
}
