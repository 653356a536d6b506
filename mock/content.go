package mock

import (
	"context"

	"github.com/fwojciec/docsearch"
)

var (
	_ docsearch.ContentSource = (*ContentSource)(nil)
	_ docsearch.ContentStore  = (*ContentStore)(nil)
	_ docsearch.ContentWriter = (*ContentWriter)(nil)
)

// ContentSource is a mock implementation of docsearch.ContentSource.
type ContentSource struct {
	LoadContentFn func(ctx context.Context) (*docsearch.Content, error)
}

func (s *ContentSource) LoadContent(ctx context.Context) (*docsearch.Content, error) {
	return s.LoadContentFn(ctx)
}

// ContentStore is a mock implementation of docsearch.ContentStore.
type ContentStore struct {
	LoadContentFn  func(ctx context.Context) (*docsearch.Content, error)
	SaveContentFn  func(ctx context.Context, content *docsearch.Content) (*docsearch.SaveResult, error)
	ClearContentFn func(ctx context.Context) error
}

func (s *ContentStore) LoadContent(ctx context.Context) (*docsearch.Content, error) {
	return s.LoadContentFn(ctx)
}

func (s *ContentStore) SaveContent(ctx context.Context, content *docsearch.Content) (*docsearch.SaveResult, error) {
	return s.SaveContentFn(ctx, content)
}

func (s *ContentStore) ClearContent(ctx context.Context) error {
	return s.ClearContentFn(ctx)
}

// ContentWriter is a mock implementation of docsearch.ContentWriter.
type ContentWriter struct {
	WriteContentFn func(ctx context.Context, content *docsearch.Content) error
}

func (w *ContentWriter) WriteContent(ctx context.Context, content *docsearch.Content) error {
	return w.WriteContentFn(ctx, content)
}
