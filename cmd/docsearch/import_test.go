package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/docsearch"
	main "github.com/fwojciec/docsearch/cmd/docsearch"
	"github.com/fwojciec/docsearch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportCmd_Run(t *testing.T) {
	t.Parallel()

	content := &docsearch.Content{
		Documents: []*docsearch.DocRecord{{Slug: "install", Title: "Installation"}},
		Commands:  []*docsearch.CommandRecord{{Name: "build"}},
	}
	source := func(t *testing.T) func(string) docsearch.ContentSource {
		return func(dir string) docsearch.ContentSource {
			assert.Equal(t, "./content", dir)
			return &mock.ContentSource{
				LoadContentFn: func(_ context.Context) (*docsearch.Content, error) {
					return content, nil
				},
			}
		}
	}

	t.Run("saves loaded content", func(t *testing.T) {
		t.Parallel()

		var saved *docsearch.Content
		clearCalled := false
		store := &mock.ContentStore{
			SaveContentFn: func(_ context.Context, c *docsearch.Content) (*docsearch.SaveResult, error) {
				saved = c
				return &docsearch.SaveResult{Saved: 1, Unchanged: 1}, nil
			},
			ClearContentFn: func(_ context.Context) error {
				clearCalled = true
				return nil
			},
		}
		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Store:     store,
			NewSource: source(t),
		}

		err := (&main.ImportCmd{Dir: "./content"}).Run(deps)

		require.NoError(t, err)
		assert.Same(t, content, saved)
		assert.False(t, clearCalled)
		assert.Equal(t, "Imported 1 documents, 1 commands, 0 agents from ./content (1 saved, 1 unchanged)\n", stdout.String())
	})

	t.Run("replace clears the catalog first", func(t *testing.T) {
		t.Parallel()

		var calls []string
		store := &mock.ContentStore{
			SaveContentFn: func(_ context.Context, c *docsearch.Content) (*docsearch.SaveResult, error) {
				calls = append(calls, "save")
				return &docsearch.SaveResult{Saved: c.Len()}, nil
			},
			ClearContentFn: func(_ context.Context) error {
				calls = append(calls, "clear")
				return nil
			},
		}

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    &bytes.Buffer{},
			Store:     store,
			NewSource: source(t),
		}

		err := (&main.ImportCmd{Dir: "./content", Replace: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, []string{"clear", "save"}, calls)
	})

	t.Run("does not touch catalog when loading fails", func(t *testing.T) {
		t.Parallel()

		store := &mock.ContentStore{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Store:  store,
			NewSource: func(string) docsearch.ContentSource {
				return &mock.ContentSource{
					LoadContentFn: func(_ context.Context) (*docsearch.Content, error) {
						return nil, docsearch.Errorf(docsearch.ENOTFOUND, "content directory %q not found", "missing")
					},
				}
			},
		}

		err := (&main.ImportCmd{Dir: "missing", Replace: true}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, docsearch.ENOTFOUND, docsearch.ErrorCode(err))
		assert.Equal(t, "error: content directory \"missing\" not found\n", stderr.String())
	})

	t.Run("reports save error", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Store: &mock.ContentStore{
				SaveContentFn: func(_ context.Context, _ *docsearch.Content) (*docsearch.SaveResult, error) {
					return nil, docsearch.Errorf(docsearch.EINVALID, "command name required")
				},
			},
			NewSource: source(t),
		}

		err := (&main.ImportCmd{Dir: "./content"}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: command name required")
	})
}
