package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContent() *docsearch.Content {
	return &docsearch.Content{
		Documents: []*docsearch.DocRecord{
			{Slug: "install", Title: "Installation", Description: "Get set up", Body: "Run npm install.", Category: "Setup", Tags: []string{"cli", "setup"}},
			{Slug: "deploy", Title: "Deploying", Body: "Ship it."},
		},
		Commands: []*docsearch.CommandRecord{
			{
				Name:        "build",
				Syntax:      "docsearch build [dir]",
				Description: "Build the site",
				Examples:    []docsearch.CommandExample{{Command: "docsearch build .", Description: "Current directory"}},
			},
		},
		Agents: []*docsearch.AgentRecord{
			{ID: "reviewer", Name: "Reviewer", Capabilities: []string{"review"}, Tags: []string{}},
		},
	}
}

func TestContentStore_SaveContent(t *testing.T) {
	t.Parallel()

	t.Run("saves and loads every record", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewContentStore(setupTestDB(t))
		ctx := context.Background()
		content := testContent()

		res, err := store.SaveContent(ctx, content)
		require.NoError(t, err)
		assert.Equal(t, &docsearch.SaveResult{Saved: 4}, res)

		got, err := store.LoadContent(ctx)
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})

	t.Run("skips unchanged records", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewContentStore(setupTestDB(t))
		ctx := context.Background()

		_, err := store.SaveContent(ctx, testContent())
		require.NoError(t, err)

		updated := testContent()
		updated.Documents[1].Body = "Ship it twice."

		res, err := store.SaveContent(ctx, updated)
		require.NoError(t, err)
		assert.Equal(t, &docsearch.SaveResult{Saved: 1, Unchanged: 3}, res)

		got, err := store.LoadContent(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Ship it twice.", got.Documents[1].Body)
	})

	t.Run("keeps first-saved order on update", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewContentStore(setupTestDB(t))
		ctx := context.Background()

		_, err := store.SaveContent(ctx, testContent())
		require.NoError(t, err)

		_, err = store.SaveContent(ctx, &docsearch.Content{
			Documents: []*docsearch.DocRecord{
				{Slug: "faq", Title: "FAQ"},
				{Slug: "install", Title: "Install Guide"},
			},
		})
		require.NoError(t, err)

		got, err := store.LoadContent(ctx)
		require.NoError(t, err)
		require.Len(t, got.Documents, 3)
		assert.Equal(t, "install", got.Documents[0].Slug)
		assert.Equal(t, "Install Guide", got.Documents[0].Title)
		assert.Equal(t, "deploy", got.Documents[1].Slug)
		assert.Equal(t, "faq", got.Documents[2].Slug)
	})

	t.Run("records update time", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		store := sqlite.NewContentStore(db)
		store.Now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
		ctx := context.Background()

		_, err := store.SaveContent(ctx, testContent())
		require.NoError(t, err)

		var updatedAt string
		err = db.QueryRowContext(ctx, "SELECT updated_at FROM agents WHERE id = ?", "reviewer").Scan(&updatedAt)
		require.NoError(t, err)
		assert.Equal(t, "2026-03-01T12:00:00Z", updatedAt)
	})

	t.Run("returns EINVALID and writes nothing for invalid record", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewContentStore(setupTestDB(t))
		ctx := context.Background()
		content := testContent()
		content.Agents = append(content.Agents, &docsearch.AgentRecord{Name: "No ID"})

		_, err := store.SaveContent(ctx, content)
		assert.Equal(t, docsearch.EINVALID, docsearch.ErrorCode(err))

		got, err := store.LoadContent(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, got.Len())
	})

	t.Run("accepts nil content", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewContentStore(setupTestDB(t))

		res, err := store.SaveContent(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, &docsearch.SaveResult{}, res)
	})

	t.Run("returns error for canceled context", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewContentStore(setupTestDB(t))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := store.SaveContent(ctx, testContent())

		require.Error(t, err)
	})
}

func TestContentStore_LoadContent(t *testing.T) {
	t.Parallel()

	t.Run("returns empty content for empty catalog", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewContentStore(setupTestDB(t))

		got, err := store.LoadContent(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 0, got.Len())
	})
}

func TestContentStore_ClearContent(t *testing.T) {
	t.Parallel()

	store := sqlite.NewContentStore(setupTestDB(t))
	ctx := context.Background()

	_, err := store.SaveContent(ctx, testContent())
	require.NoError(t, err)

	require.NoError(t, store.ClearContent(ctx))

	got, err := store.LoadContent(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())

	// Cleared records are saved again rather than reported unchanged.
	res, err := store.SaveContent(ctx, testContent())
	require.NoError(t, err)
	assert.Equal(t, 4, res.Saved)
}
