package readability_test

import (
	"testing"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := readability.NewExtractor().Extract("  \n")

		require.Error(t, err)
		assert.Equal(t, docsearch.EINVALID, docsearch.ErrorCode(err))
	})

	t.Run("extracts title", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Page Title</title></head>
<body><article><p>Content</p></article></body>
</html>`

		result, err := readability.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Page Title", result.Title)
	})

	t.Run("strips the site name from the title", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name  string
			title string
			want  string
		}{
			{"suffix with pipe", "Installation | Acme Docs", "Installation"},
			{"suffix with dash", "Installation - Acme Docs", "Installation"},
			{"prefix", "Acme Docs | Installation", "Installation"},
			{"title is the site name", "Acme Docs", "Acme Docs"},
			{"unrelated separator", "Build | Deploy", "Build | Deploy"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				html := `<!DOCTYPE html>
<html>
<head><title>` + tt.title + `</title><meta property="og:site_name" content="Acme Docs"></head>
<body><article><p>Install the command line tool with npm and verify the version.</p></article></body>
</html>`

				result, err := readability.NewExtractor().Extract(html)

				require.NoError(t, err)
				assert.Equal(t, tt.want, result.Title)
			})
		}
	})

	t.Run("returns content HTML without page chrome", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Deploying</title></head>
<body>
<nav><a href="/home">Home Nav Link</a><a href="/about">About Nav Link</a></nav>
<article>
<h1>Deploying</h1>
<p>Deploy your documentation site to production with a single command.</p>
<h2>Preview builds</h2>
<p>Every pull request gets a preview deployment with its own address.</p>
<ul><li>First item</li><li>Second item</li></ul>
</article>
<footer><p>Footer copyright text 2024</p></footer>
</body>
</html>`

		result, err := readability.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Empty(t, result.Text)
		assert.Contains(t, result.ContentHTML, "Deploy your documentation site")
		assert.Contains(t, result.ContentHTML, "Preview builds")
		assert.Contains(t, result.ContentHTML, "<li")
		assert.NotContains(t, result.ContentHTML, "Home Nav Link")
		assert.NotContains(t, result.ContentHTML, "Footer copyright text")
	})

	t.Run("keeps code blocks", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<article>
<p>Install the package with the following command before continuing.</p>
<pre><code class="language-bash">npm install docsearch</code></pre>
</article>
</body>
</html>`

		result, err := readability.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "<pre")
		assert.Contains(t, result.ContentHTML, "npm install docsearch")
	})
}
