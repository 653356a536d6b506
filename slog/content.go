package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docsearch"
)

// Ensure LoggingContentSource implements docsearch.ContentSource.
var _ docsearch.ContentSource = (*LoggingContentSource)(nil)

// LoggingContentSource wraps a ContentSource with logging.
type LoggingContentSource struct {
	next   docsearch.ContentSource
	logger *slog.Logger
}

// NewLoggingContentSource creates a new LoggingContentSource.
func NewLoggingContentSource(next docsearch.ContentSource, logger *slog.Logger) *LoggingContentSource {
	return &LoggingContentSource{next: next, logger: logger}
}

// LoadContent delegates to the wrapped source and logs the record counts.
func (s *LoggingContentSource) LoadContent(ctx context.Context) (content *docsearch.Content, err error) {
	defer func(begin time.Time) {
		var docs, commands, agents int
		if content != nil {
			docs, commands, agents = len(content.Documents), len(content.Commands), len(content.Agents)
		}
		s.logger.Info("load content",
			"documents", docs,
			"commands", commands,
			"agents", agents,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.LoadContent(ctx)
}
