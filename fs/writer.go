package fs

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docsearch"
	"gopkg.in/yaml.v3"
)

// SlugToPath converts a document slug to a relative file path.
// Example: guides/deploy → docs/guides/deploy.md
func SlugToPath(slug string) (string, error) {
	clean := path.Clean("/" + strings.TrimSpace(slug))
	if clean == "/" {
		return "", docsearch.Errorf(docsearch.EINVALID, "invalid document slug %q", slug)
	}
	return filepath.Join(DocsDir, filepath.FromSlash(strings.TrimPrefix(clean, "/"))+".md"), nil
}

// FormatDocument formats a document with YAML frontmatter.
func FormatDocument(doc *docsearch.DocRecord) (string, error) {
	front, err := yaml.Marshal(doc)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(front)
	b.WriteString("---\n\n")
	b.WriteString(doc.Body)
	if doc.Body != "" && !strings.HasSuffix(doc.Body, "\n") {
		b.WriteString("\n")
	}
	return b.String(), nil
}

// Ensure Writer implements docsearch.ContentWriter at compile time.
var _ docsearch.ContentWriter = (*Writer)(nil)

// Writer writes content to a directory in the layout read by Loader.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteContent writes each document as a markdown file and the commands and
// agents as YAML files. Empty collections are not written.
func (w *Writer) WriteContent(ctx context.Context, content *docsearch.Content) error {
	if err := content.Validate(); err != nil {
		return err
	}

	for _, doc := range content.Documents {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.writeDocument(doc); err != nil {
			return err
		}
	}

	if len(content.Commands) > 0 {
		file := struct {
			Commands []*docsearch.CommandRecord `yaml:"commands"`
		}{content.Commands}
		if err := w.writeYAML(CommandsFile, file); err != nil {
			return err
		}
	}

	if len(content.Agents) > 0 {
		file := struct {
			Agents []*docsearch.AgentRecord `yaml:"agents"`
		}{content.Agents}
		if err := w.writeYAML(AgentsFile, file); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeDocument(doc *docsearch.DocRecord) error {
	relPath, err := SlugToPath(doc.Slug)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(w.baseDir, relPath)

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	content, err := FormatDocument(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}

func (w *Writer) writeYAML(name string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(w.baseDir, name), data, 0644)
}
