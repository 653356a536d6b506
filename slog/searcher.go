// Package slog provides logging decorators for docsearch services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/docsearch"
)

// Ensure LoggingSearcher implements docsearch.Searcher.
var _ docsearch.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with logging of index builds and queries.
type LoggingSearcher struct {
	next   docsearch.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next docsearch.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// BuildIndex delegates to the wrapped searcher and logs the resulting index.
// Records skipped for lacking searchable text are reported as a warning.
func (s *LoggingSearcher) BuildIndex(docs []*docsearch.DocRecord, commands []*docsearch.CommandRecord, agents []*docsearch.AgentRecord) *docsearch.IndexStats {
	begin := time.Now()
	stats := s.next.BuildIndex(docs, commands, agents)
	s.logger.Info("build index",
		"generation", stats.Generation,
		"documents", stats.Documents,
		"commands", stats.Commands,
		"agents", stats.Agents,
		"duration", time.Since(begin),
	)
	if stats.Skipped > 0 {
		s.logger.Warn("records without searchable text were not indexed",
			"generation", stats.Generation,
			"skipped", stats.Skipped,
		)
	}
	return stats
}

// Search delegates to the wrapped searcher and logs the query outcome.
func (s *LoggingSearcher) Search(q docsearch.Query) (resp *docsearch.SearchResponse) {
	defer func(begin time.Time) {
		if resp == nil {
			return
		}
		s.logger.Info("search",
			"query", q.Text,
			"kind", string(q.Kind),
			"offset", q.Offset,
			"limit", q.Limit,
			"total", resp.Total,
			"results", len(resp.Results),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.Search(q)
}
