// Package search implements the in-memory search engine: indexing of the
// three content collections, relevance scoring, result composition and the
// query pipeline.
package search

import (
	"cmp"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/fwojciec/docsearch"
)

// Ensure Engine implements docsearch.Searcher.
var _ docsearch.Searcher = (*Engine)(nil)

// Engine answers queries against the most recently built index.
//
// Rebuilds construct a complete new index and then publish it atomically,
// so searches in flight keep reading the snapshot they started with. A
// zero Engine behaves like one returned by NewEngine.
type Engine struct {
	// Highlighter selects the highlighted words of each result.
	// It must not be changed once the engine is in use.
	Highlighter docsearch.Highlighter

	mu    sync.Mutex // serializes rebuilds
	index atomic.Pointer[Index]
}

// NewEngine creates an engine with an empty index and the regular
// expression highlighter.
func NewEngine() *Engine {
	e := &Engine{Highlighter: NewRegexHighlighter()}
	e.index.Store(emptyIndex)
	return e
}

// BuildIndex replaces the active index with one built from the given
// collections.
func (e *Engine) BuildIndex(docs []*docsearch.DocRecord, commands []*docsearch.CommandRecord, agents []*docsearch.AgentRecord) *docsearch.IndexStats {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := NewIndex(docs, commands, agents)
	e.index.Store(idx)
	return idx.Stats()
}

// Index returns the active index snapshot.
func (e *Engine) Index() *Index {
	if idx := e.index.Load(); idx != nil {
		return idx
	}
	return emptyIndex
}

// match is a scored entry awaiting pagination. rank is the entry's position
// in the concatenation of documents, commands and agents.
type match struct {
	entry *Entry
	score float64
	rank  int
}

// Search runs q against the active index.
func (e *Engine) Search(q docsearch.Query) *docsearch.SearchResponse {
	query := docsearch.Normalize(q.Text)
	if query == "" {
		return docsearch.EmptyResponse()
	}
	terms := docsearch.Terms(query)

	idx := e.Index()

	var matches []match
	var rank int
	for _, kind := range docsearch.Kinds {
		entries := idx.Entries(kind)
		if !q.Includes(kind) {
			rank += len(entries)
			continue
		}
		for _, entry := range entries {
			if score := scoreTerms(terms, entry); score > 0 {
				matches = append(matches, match{entry: entry, score: score, rank: rank})
			}
			rank++
		}
	}

	slices.SortFunc(matches, func(a, b match) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return cmp.Compare(a.rank, b.rank)
	})

	resp := docsearch.EmptyResponse()
	resp.Total = len(matches)
	resp.Facets = facets(matches)

	offset, limit := q.Page()
	if offset < len(matches) {
		end := len(matches)
		if limit < end-offset {
			end = offset + limit
		}
		for _, m := range matches[offset:end] {
			resp.Results = append(resp.Results, e.compose(query, m))
		}
	}

	if resp.Total == 0 {
		resp.Suggestions = Suggest(q.Text)
	}

	return resp
}

// compose turns a match into a result with excerpt and highlights.
func (e *Engine) compose(query string, m match) docsearch.SearchResult {
	highlighter := e.Highlighter
	if highlighter == nil {
		highlighter = NewRegexHighlighter()
	}

	return docsearch.SearchResult{
		Kind:       m.entry.Kind,
		ID:         m.entry.ID,
		Title:      m.entry.Title,
		Category:   m.entry.Category,
		Excerpt:    Excerpt(m.entry.Content, query),
		Highlights: highlighter.Highlights(query, m.entry.Title+". "+m.entry.Content),
		Score:      m.score,
	}
}

// facets counts the full match set by category and kind. Each list is
// sorted by descending count, ties in order of first appearance.
func facets(matches []match) docsearch.Facets {
	categories := newFacetCounter()
	kinds := newFacetCounter()
	for _, m := range matches {
		categories.add(m.entry.Category)
		kinds.add(string(m.entry.Kind))
	}
	return docsearch.Facets{
		Categories: categories.sorted(),
		Kinds:      kinds.sorted(),
	}
}

type facetCounter struct {
	index  map[string]int
	counts []docsearch.FacetCount
}

func newFacetCounter() *facetCounter {
	return &facetCounter{index: make(map[string]int)}
}

func (c *facetCounter) add(name string) {
	if i, ok := c.index[name]; ok {
		c.counts[i].Count++
		return
	}
	c.index[name] = len(c.counts)
	c.counts = append(c.counts, docsearch.FacetCount{Name: name, Count: 1})
}

func (c *facetCounter) sorted() []docsearch.FacetCount {
	out := slices.Clone(c.counts)
	if out == nil {
		out = []docsearch.FacetCount{}
	}
	slices.SortStableFunc(out, func(a, b docsearch.FacetCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return out
}
