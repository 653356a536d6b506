package docsearch

import "time"

// Pagination defaults applied by Query.Page.
const (
	DefaultLimit = 50
)

// Query describes a single search request.
type Query struct {
	Text string `json:"text"`

	// Kind restricts the search to one collection. Empty or KindAll
	// searches every collection.
	Kind Kind `json:"kind,omitempty"`

	Offset int `json:"offset,omitempty"`
	Limit  int `json:"limit,omitempty"`
}

// Page returns the query's offset and limit with invalid values clamped to
// their defaults: a negative offset becomes 0 and a limit below 1 becomes
// DefaultLimit.
func (q Query) Page() (offset, limit int) {
	offset, limit = q.Offset, q.Limit
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return offset, limit
}

// Includes reports whether the query searches the given collection.
// Unrecognized kinds search every collection.
func (q Query) Includes(k Kind) bool {
	switch q.Kind {
	case KindDocument, KindCommand, KindAgent:
		return q.Kind == k
	default:
		return true
	}
}

// SearchResult is a single ranked match.
type SearchResult struct {
	Kind       Kind     `json:"kind"`
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Category   string   `json:"category"`
	Excerpt    string   `json:"excerpt"`
	Highlights []string `json:"highlights"`
	Score      float64  `json:"score"`
}

// FacetCount is the number of results sharing a facet value.
type FacetCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Facets aggregates the full result set by category and by kind.
type Facets struct {
	Categories []FacetCount `json:"categories"`
	Kinds      []FacetCount `json:"kinds"`
}

// SearchResponse is the answer to a Query.
type SearchResponse struct {
	// Results is the requested page of the ranked result set.
	Results []SearchResult `json:"results"`

	// Total is the size of the result set before pagination.
	Total int `json:"total"`

	// Facets are computed over the full result set, not the page.
	Facets Facets `json:"facets"`

	// Suggestions are only populated when Total is 0.
	Suggestions []string `json:"suggestions"`
}

// EmptyResponse returns a response with no results, empty facets and no
// suggestions.
func EmptyResponse() *SearchResponse {
	return &SearchResponse{
		Results: []SearchResult{},
		Facets: Facets{
			Categories: []FacetCount{},
			Kinds:      []FacetCount{},
		},
		Suggestions: []string{},
	}
}

// IndexStats describes a freshly built index.
type IndexStats struct {
	Generation string    `json:"generation"`
	BuiltAt    time.Time `json:"builtAt"`
	Documents  int       `json:"documents"`
	Commands   int       `json:"commands"`
	Agents     int       `json:"agents"`

	// Skipped counts records left out because they had no searchable text.
	Skipped int `json:"skipped"`
}

// Entries returns the total number of indexed entries.
func (s *IndexStats) Entries() int {
	return s.Documents + s.Commands + s.Agents
}

// Searcher indexes content and answers queries against the active index.
//
// BuildIndex replaces the active index wholesale. Search is safe to call
// concurrently with other searches and with BuildIndex; it never fails and
// reports empty or unmatched queries as a response with Total 0.
type Searcher interface {
	BuildIndex(docs []*DocRecord, commands []*CommandRecord, agents []*AgentRecord) *IndexStats
	Search(q Query) *SearchResponse
}

// Highlighter picks the words of text that matched the query, in order of
// first appearance.
type Highlighter interface {
	Highlights(query, text string) []string
}
