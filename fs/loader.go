// Package fs loads and exports documentation content as files on disk.
//
// A content directory has the following layout:
//
//	docs/**/*.md      markdown documents with optional YAML frontmatter
//	docs/**/*.html    rendered HTML pages, read through an Extractor
//	commands.yaml     command reference entries
//	agents.yaml       agent descriptors
//
// Every part is optional.
package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fwojciec/docsearch"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// File and directory names within a content directory.
const (
	DocsDir      = "docs"
	CommandsFile = "commands.yaml"
	AgentsFile   = "agents.yaml"
)

// Ensure Loader implements docsearch.ContentSource at compile time.
var _ docsearch.ContentSource = (*Loader)(nil)

// Loader reads a content directory.
type Loader struct {
	dir string

	// Extractor converts HTML documents to text.
	// HTML files are ignored when nil.
	Extractor docsearch.Extractor

	// Converter turns extracted ContentHTML into markdown. Only used for
	// extractors that return ContentHTML instead of Text.
	Converter docsearch.Converter

	// Concurrency bounds the number of documents parsed at once.
	// Defaults to GOMAXPROCS when zero.
	Concurrency int
}

// NewLoader creates a Loader for the content directory dir.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// LoadContent reads every document, command and agent under the directory.
// Documents are ordered by path. Returns ENOTFOUND if the directory does
// not exist and EINVALID if a file cannot be parsed.
func (l *Loader) LoadContent(ctx context.Context) (*docsearch.Content, error) {
	info, err := os.Stat(l.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, docsearch.Errorf(docsearch.ENOTFOUND, "content directory %q not found", l.dir)
	} else if err != nil {
		return nil, err
	} else if !info.IsDir() {
		return nil, docsearch.Errorf(docsearch.EINVALID, "%q is not a directory", l.dir)
	}

	content := &docsearch.Content{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		content.Documents, err = l.loadDocuments(gctx)
		return err
	})
	g.Go(func() (err error) {
		var file struct {
			Commands []*docsearch.CommandRecord `yaml:"commands"`
		}
		err = readYAML(filepath.Join(l.dir, CommandsFile), &file)
		content.Commands = file.Commands
		return err
	})
	g.Go(func() (err error) {
		var file struct {
			Agents []*docsearch.AgentRecord `yaml:"agents"`
		}
		err = readYAML(filepath.Join(l.dir, AgentsFile), &file)
		content.Agents = file.Agents
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := content.Validate(); err != nil {
		return nil, err
	}
	return content, nil
}

func (l *Loader) loadDocuments(ctx context.Context) ([]*docsearch.DocRecord, error) {
	root := filepath.Join(l.dir, DocsDir)
	paths, err := l.documentPaths(root)
	if err != nil {
		return nil, err
	}

	docs := make([]*docsearch.DocRecord, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency())
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := l.loadDocument(root, path)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// documentPaths returns the document files under root in lexical order.
func (l *Loader) documentPaths(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".md", ".markdown":
			paths = append(paths, path)
		case ".html", ".htm":
			if l.Extractor != nil {
				paths = append(paths, path)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func (l *Loader) loadDocument(root, path string) (*docsearch.DocRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return nil, err
	}
	slug := filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		result, err := l.Extractor.Extract(string(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", rel, err)
		}
		body := result.Text
		if body == "" && result.ContentHTML != "" && l.Converter != nil {
			md, err := l.Converter.Convert(result.ContentHTML)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", rel, err)
			}
			body = docsearch.MarkdownText(md)
		}
		return &docsearch.DocRecord{
			Slug:        slug,
			Title:       result.Title,
			Description: result.Description,
			Body:        body,
		}, nil
	default:
		doc, err := ParseMarkdown(data)
		if err != nil {
			return nil, docsearch.Errorf(docsearch.EINVALID, "%s: %s", rel, docsearch.ErrorMessage(err))
		}
		if doc.Slug == "" {
			doc.Slug = slug
		}
		return doc, nil
	}
}

func (l *Loader) concurrency() int {
	if l.Concurrency > 0 {
		return l.Concurrency
	}
	return runtime.GOMAXPROCS(0)
}

// ParseMarkdown parses a markdown document with optional YAML frontmatter.
// The title falls back to the first heading of the body. The body is
// converted to plain text.
func ParseMarkdown(data []byte) (*docsearch.DocRecord, error) {
	front, body := splitFrontmatter(data)

	doc := &docsearch.DocRecord{}
	if len(front) > 0 {
		if err := yaml.Unmarshal(front, doc); err != nil {
			return nil, docsearch.Errorf(docsearch.EINVALID, "invalid frontmatter: %v", err)
		}
	}
	if doc.Title == "" {
		doc.Title = firstHeading(body)
	}
	doc.Body = docsearch.MarkdownText(string(body))
	return doc, nil
}

var frontmatterDelim = []byte("---")

// splitFrontmatter separates a leading "---" delimited YAML block from the body.
func splitFrontmatter(data []byte) (front, body []byte) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	first, rest, ok := bytes.Cut(data, []byte("\n"))
	if !ok || !bytes.Equal(bytes.TrimSpace(first), frontmatterDelim) {
		return nil, data
	}

	var offset int
	for offset < len(rest) {
		line, _, _ := bytes.Cut(rest[offset:], []byte("\n"))
		if bytes.Equal(bytes.TrimSpace(line), frontmatterDelim) {
			end := min(offset+len(line)+1, len(rest))
			return rest[:offset], rest[end:]
		}
		offset += len(line) + 1
	}
	return nil, data
}

func firstHeading(body []byte) string {
	for _, line := range strings.Split(string(body), "\n") {
		if title, ok := strings.CutPrefix(strings.TrimSpace(line), "# "); ok {
			return strings.TrimSpace(title)
		}
	}
	return ""
}

// readYAML decodes the file at path into v. A missing file leaves v untouched.
func readYAML(path string, v any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return docsearch.Errorf(docsearch.EINVALID, "%s: %v", filepath.Base(path), err)
	}
	return nil
}
