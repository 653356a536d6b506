package search_test

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/mock"
	"github.com/fwojciec/docsearch/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func installDoc() *docsearch.DocRecord {
	return &docsearch.DocRecord{
		Slug:     "install",
		Title:    "Installation",
		Body:     "Run npm install to set up the CLI",
		Category: "Setup",
		Tags:     []string{"setup"},
	}
}

// corpus returns a mixed content set in which many records share terms.
func corpus() ([]*docsearch.DocRecord, []*docsearch.CommandRecord, []*docsearch.AgentRecord) {
	var docs []*docsearch.DocRecord
	for i := range 12 {
		docs = append(docs, &docsearch.DocRecord{
			Slug:     fmt.Sprintf("guide-%d", i),
			Title:    fmt.Sprintf("Deploy guide %d", i),
			Body:     "Deploy the site to production. Configure the server first.",
			Category: []string{"Setup", "Operations", "Setup"}[i%3],
		})
	}
	docs = append(docs, installDoc())

	commands := []*docsearch.CommandRecord{
		{Name: "deploy", Description: "Deploy the current build", Category: "Operations"},
		{Name: "rollback", Description: "Undo the last deploy", Category: "Operations"},
		{Name: "lint", Description: "Check markdown files"},
	}
	agents := []*docsearch.AgentRecord{
		{ID: "release-bot", Name: "Release Bot", Description: "Automates deploy approvals", Category: "Automation"},
		{ID: "doc-writer", Name: "Doc Writer", Description: "Drafts documentation"},
	}
	return docs, commands, agents
}

func TestEngine_Search(t *testing.T) {
	t.Parallel()

	t.Run("finds the installation document", func(t *testing.T) {
		t.Parallel()

		engine := search.NewEngine()
		engine.BuildIndex([]*docsearch.DocRecord{installDoc()}, nil, nil)

		resp := engine.Search(docsearch.Query{Text: "install"})

		require.Equal(t, 1, resp.Total)
		require.Len(t, resp.Results, 1)
		r := resp.Results[0]
		assert.Equal(t, docsearch.KindDocument, r.Kind)
		assert.Equal(t, "install", r.ID)
		assert.Equal(t, "Installation", r.Title)
		assert.Equal(t, "Setup", r.Category)
		assert.Greater(t, r.Score, 10.0)
		assert.Contains(t, r.Excerpt, "install")
		assert.Equal(t, []string{"Installation", "install"}, r.Highlights)
		assert.Empty(t, resp.Suggestions)
	})

	t.Run("returns empty results before the index is built", func(t *testing.T) {
		t.Parallel()

		for _, engine := range []*search.Engine{search.NewEngine(), {}} {
			resp := engine.Search(docsearch.Query{Text: "install"})

			assert.Equal(t, 0, resp.Total)
			assert.Empty(t, resp.Results)
			assert.Empty(t, resp.Facets.Categories)
			assert.Empty(t, resp.Facets.Kinds)
		}
	})

	t.Run("short-circuits empty queries", func(t *testing.T) {
		t.Parallel()

		engine := search.NewEngine()
		engine.BuildIndex(corpus())

		for _, text := range []string{"", "   ", "?!."} {
			resp := engine.Search(docsearch.Query{Text: text})

			assert.Equal(t, 0, resp.Total, "query %q", text)
			assert.Empty(t, resp.Results)
			assert.NotNil(t, resp.Facets.Categories)
			assert.Empty(t, resp.Facets.Categories)
			assert.Empty(t, resp.Facets.Kinds)
			assert.NotNil(t, resp.Suggestions)
			assert.Empty(t, resp.Suggestions)
		}
	})

	t.Run("suggests corrections for misspelled queries", func(t *testing.T) {
		t.Parallel()

		empty := search.NewEngine()
		populated := search.NewEngine()
		populated.BuildIndex([]*docsearch.DocRecord{installDoc()}, nil, nil)

		for _, engine := range []*search.Engine{empty, populated} {
			resp := engine.Search(docsearch.Query{Text: "instalation"})

			assert.Equal(t, 0, resp.Total)
			assert.Contains(t, resp.Suggestions, "installation")
		}
	})

	t.Run("suggests generic queries for short unmatched queries", func(t *testing.T) {
		t.Parallel()

		engine := search.NewEngine()

		resp := engine.Search(docsearch.Query{Text: "zq"})

		assert.Equal(t, []string{"getting started", "installation", "configuration"}, resp.Suggestions)
	})

	t.Run("all-terms bonus outranks a partial match", func(t *testing.T) {
		t.Parallel()

		engine := search.NewEngine()
		engine.BuildIndex([]*docsearch.DocRecord{
			{Slug: "react", Title: "React Guide", Body: "Using react hooks"},
			{Slug: "mobile", Title: "Mobile", Body: "React Native apps"},
		}, nil, nil)

		resp := engine.Search(docsearch.Query{Text: "react native"})

		require.Len(t, resp.Results, 2)
		assert.Equal(t, "mobile", resp.Results[0].ID)
		assert.Equal(t, "react", resp.Results[1].ID)
		assert.Greater(t, resp.Results[0].Score, resp.Results[1].Score)
	})

	t.Run("restricts to the requested kind", func(t *testing.T) {
		t.Parallel()

		engine := search.NewEngine()
		engine.BuildIndex(corpus())

		resp := engine.Search(docsearch.Query{Text: "deploy", Kind: docsearch.KindCommand})

		require.Equal(t, 2, resp.Total)
		for _, r := range resp.Results {
			assert.Equal(t, docsearch.KindCommand, r.Kind)
		}
		assert.Equal(t, []docsearch.FacetCount{{Name: "command", Count: 2}}, resp.Facets.Kinds)
	})

	t.Run("breaks score ties by collection order", func(t *testing.T) {
		t.Parallel()

		engine := search.NewEngine()
		engine.BuildIndex(
			[]*docsearch.DocRecord{{Slug: "same", Title: "same", Category: "X"}},
			[]*docsearch.CommandRecord{{Name: "same", Category: "X"}},
			[]*docsearch.AgentRecord{{ID: "same", Name: "same", Category: "X"}},
		)

		resp := engine.Search(docsearch.Query{Text: "same"})

		require.Len(t, resp.Results, 3)
		assert.Equal(t, docsearch.KindDocument, resp.Results[0].Kind)
		assert.Equal(t, docsearch.KindCommand, resp.Results[1].Kind)
		assert.Equal(t, docsearch.KindAgent, resp.Results[2].Kind)
		assert.Equal(t, resp.Results[0].Score, resp.Results[2].Score)
	})

	t.Run("sorts facets by descending count", func(t *testing.T) {
		t.Parallel()

		engine := search.NewEngine()
		engine.BuildIndex(corpus())

		resp := engine.Search(docsearch.Query{Text: "deploy", Limit: 1})

		assert.Equal(t, []docsearch.FacetCount{
			{Name: "document", Count: 12},
			{Name: "command", Count: 2},
			{Name: "agent", Count: 1},
		}, resp.Facets.Kinds)
		assert.Equal(t, []docsearch.FacetCount{
			{Name: "Setup", Count: 8},
			{Name: "Operations", Count: 6},
			{Name: "Automation", Count: 1},
		}, resp.Facets.Categories)
		assert.Len(t, resp.Results, 1)
	})

	t.Run("returns an empty page for an out of range offset", func(t *testing.T) {
		t.Parallel()

		engine := search.NewEngine()
		engine.BuildIndex(corpus())

		resp := engine.Search(docsearch.Query{Text: "deploy", Offset: 100})

		assert.Equal(t, 15, resp.Total)
		assert.NotNil(t, resp.Results)
		assert.Empty(t, resp.Results)
		assert.Empty(t, resp.Suggestions)
	})

	t.Run("clamps invalid pagination", func(t *testing.T) {
		t.Parallel()

		engine := search.NewEngine()
		engine.BuildIndex(corpus())

		clamped := engine.Search(docsearch.Query{Text: "deploy", Offset: -5, Limit: -1})
		defaults := engine.Search(docsearch.Query{Text: "deploy"})

		assert.Equal(t, defaults.Results, clamped.Results)
		assert.Len(t, clamped.Results, 15)
	})

	t.Run("handles a huge limit", func(t *testing.T) {
		t.Parallel()

		engine := search.NewEngine()
		engine.BuildIndex(corpus())

		resp := engine.Search(docsearch.Query{Text: "deploy", Offset: 1, Limit: math.MaxInt})

		assert.Equal(t, 15, resp.Total)
		assert.Len(t, resp.Results, 14)

		resp = engine.Search(docsearch.Query{Text: "deploy", Offset: math.MaxInt, Limit: math.MaxInt})

		assert.Equal(t, 15, resp.Total)
		assert.Empty(t, resp.Results)
	})

	t.Run("uses the configured highlighter", func(t *testing.T) {
		t.Parallel()

		engine := search.NewEngine()
		engine.Highlighter = search.NewTokenHighlighter()
		engine.BuildIndex([]*docsearch.DocRecord{installDoc()}, nil, nil)

		resp := engine.Search(docsearch.Query{Text: "install"})

		require.Len(t, resp.Results, 1)
		assert.Equal(t, []string{"Installation", "install"}, resp.Results[0].Highlights)
	})
}

func TestEngine_SearchProperties(t *testing.T) {
	t.Parallel()

	engine := search.NewEngine()
	engine.BuildIndex(corpus())
	idx := engine.Index()

	queries := []string{"deploy", "deploy guide", "setup", "server production", "docs", "clj", "general", "zzz"}

	for _, text := range queries {
		t.Run(text, func(t *testing.T) {
			t.Parallel()

			resp := engine.Search(docsearch.Query{Text: text})
			query := docsearch.Normalize(text)

			// Total conservation and zero-score exclusion.
			var nonZero int
			matched := make(map[string]bool)
			for _, kind := range docsearch.Kinds {
				for _, e := range idx.Entries(kind) {
					if search.Score(query, e) > 0 {
						nonZero++
						matched[string(kind)+"/"+e.ID] = true
					}
				}
			}
			assert.Equal(t, nonZero, resp.Total)
			for _, r := range resp.Results {
				assert.True(t, matched[string(r.Kind)+"/"+r.ID], "unexpected result %s/%s", r.Kind, r.ID)
				assert.Greater(t, r.Score, 0.0)
			}

			// Facet completeness.
			var kindSum, categorySum int
			for _, f := range resp.Facets.Kinds {
				kindSum += f.Count
			}
			for _, f := range resp.Facets.Categories {
				categorySum += f.Count
			}
			assert.Equal(t, resp.Total, kindSum)
			assert.Equal(t, resp.Total, categorySum)

			// Descending scores.
			for i := 1; i < len(resp.Results); i++ {
				assert.GreaterOrEqual(t, resp.Results[i-1].Score, resp.Results[i].Score)
			}

			// Pagination determinism.
			for _, n := range []int{1, 2, 5} {
				first := engine.Search(docsearch.Query{Text: text, Offset: 0, Limit: n})
				second := engine.Search(docsearch.Query{Text: text, Offset: n, Limit: 3})
				whole := engine.Search(docsearch.Query{Text: text, Offset: 0, Limit: n + 3})

				assert.Equal(t, resp.Total, first.Total)
				assert.Equal(t, resp.Total, second.Total)
				assert.Equal(t, whole.Results, append(first.Results, second.Results...))
			}
		})
	}
}

func TestEngine_BuildIndex(t *testing.T) {
	t.Parallel()

	t.Run("replaces the previous index", func(t *testing.T) {
		t.Parallel()

		engine := search.NewEngine()
		engine.BuildIndex([]*docsearch.DocRecord{installDoc()}, nil, nil)
		require.Equal(t, 1, engine.Search(docsearch.Query{Text: "install"}).Total)

		stats := engine.BuildIndex(nil, []*docsearch.CommandRecord{{Name: "deploy"}}, nil)

		assert.Equal(t, 0, engine.Search(docsearch.Query{Text: "install"}).Total)
		assert.Equal(t, 1, engine.Search(docsearch.Query{Text: "deploy"}).Total)
		assert.Equal(t, 0, stats.Documents)
		assert.Equal(t, 1, stats.Commands)
	})

	t.Run("is idempotent for identical input", func(t *testing.T) {
		t.Parallel()

		engine := search.NewEngine()
		engine.BuildIndex(corpus())
		first := engine.Search(docsearch.Query{Text: "deploy guide"})
		engine.BuildIndex(corpus())
		second := engine.Search(docsearch.Query{Text: "deploy guide"})

		assert.Equal(t, first, second)
	})

	t.Run("does not disturb concurrent searches", func(t *testing.T) {
		t.Parallel()

		engine := search.NewEngine()
		engine.BuildIndex(corpus())

		var wg sync.WaitGroup
		for range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 20 {
					engine.BuildIndex(corpus())
				}
			}()
		}
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 50 {
					resp := engine.Search(docsearch.Query{Text: "deploy"})
					assert.Equal(t, 15, resp.Total)
				}
			}()
		}
		wg.Wait()
	})
}

func TestEngine_Highlighter(t *testing.T) {
	t.Parallel()

	var gotQuery, gotText string
	engine := search.NewEngine()
	engine.Highlighter = &mock.Highlighter{
		HighlightsFn: func(query, text string) []string {
			gotQuery, gotText = query, text
			return []string{"custom"}
		},
	}
	engine.BuildIndex([]*docsearch.DocRecord{installDoc()}, nil, nil)

	resp := engine.Search(docsearch.Query{Text: "  INSTALL! "})

	require.Len(t, resp.Results, 1)
	assert.Equal(t, []string{"custom"}, resp.Results[0].Highlights)
	assert.Equal(t, "install", gotQuery)
	assert.Equal(t, "Installation. Run npm install to set up the CLI.", gotText)
}
