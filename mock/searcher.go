package mock

import "github.com/fwojciec/docsearch"

var _ docsearch.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of docsearch.Searcher.
type Searcher struct {
	BuildIndexFn func(docs []*docsearch.DocRecord, commands []*docsearch.CommandRecord, agents []*docsearch.AgentRecord) *docsearch.IndexStats
	SearchFn     func(q docsearch.Query) *docsearch.SearchResponse
}

func (s *Searcher) BuildIndex(docs []*docsearch.DocRecord, commands []*docsearch.CommandRecord, agents []*docsearch.AgentRecord) *docsearch.IndexStats {
	return s.BuildIndexFn(docs, commands, agents)
}

func (s *Searcher) Search(q docsearch.Query) *docsearch.SearchResponse {
	return s.SearchFn(q)
}
