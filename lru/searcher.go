// Package lru caches search responses in a fixed-size LRU cache.
package lru

import (
	"sync/atomic"

	"github.com/fwojciec/docsearch"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize is the number of responses cached when no size is given.
const DefaultSize = 256

// Ensure CachingSearcher implements docsearch.Searcher.
var _ docsearch.Searcher = (*CachingSearcher)(nil)

// cacheKey scopes a query to the index build that answered it.
type cacheKey struct {
	build uint64
	query docsearch.Query
}

// CachingSearcher wraps a Searcher and caches responses per query.
// Every BuildIndex starts a new cache scope, so responses from a previous
// index are never served. Cached responses are shared between callers and
// must not be modified.
type CachingSearcher struct {
	next  docsearch.Searcher
	cache *lru.Cache[cacheKey, *docsearch.SearchResponse]
	build atomic.Uint64
}

// NewCachingSearcher creates a CachingSearcher holding up to size responses.
func NewCachingSearcher(next docsearch.Searcher, size int) *CachingSearcher {
	if size <= 0 {
		size = DefaultSize
	}
	cache, _ := lru.New[cacheKey, *docsearch.SearchResponse](size)
	return &CachingSearcher{next: next, cache: cache}
}

// BuildIndex rebuilds the wrapped index and drops every cached response.
func (s *CachingSearcher) BuildIndex(docs []*docsearch.DocRecord, commands []*docsearch.CommandRecord, agents []*docsearch.AgentRecord) *docsearch.IndexStats {
	stats := s.next.BuildIndex(docs, commands, agents)
	s.build.Add(1)
	s.cache.Purge()
	return stats
}

// Search returns the cached response for q or delegates and caches the result.
func (s *CachingSearcher) Search(q docsearch.Query) *docsearch.SearchResponse {
	key := cacheKey{build: s.build.Load(), query: normalizeQuery(q)}
	if resp, ok := s.cache.Get(key); ok {
		return resp
	}

	resp := s.next.Search(q)
	s.cache.Add(key, resp)
	return resp
}

// Len returns the number of cached responses.
func (s *CachingSearcher) Len() int {
	return s.cache.Len()
}

// normalizeQuery maps queries that differ only in clamped paging or an
// unrecognized kind to the same key.
func normalizeQuery(q docsearch.Query) docsearch.Query {
	offset, limit := q.Page()
	kind := q.Kind
	switch kind {
	case docsearch.KindDocument, docsearch.KindCommand, docsearch.KindAgent:
	default:
		kind = docsearch.KindAll
	}
	return docsearch.Query{Text: q.Text, Kind: kind, Offset: offset, Limit: limit}
}
