package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/docsearch"
	"github.com/prometheus/client_golang/prometheus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Store    docsearch.ContentStore
	Searcher docsearch.Searcher

	// NewSource opens a content directory.
	NewSource func(dir string) docsearch.ContentSource

	// NewWriter creates an exporter writing to dir.
	NewWriter func(dir string) docsearch.ContentWriter

	// Gatherer exposes the serve command's metrics. Nil disables /metrics.
	Gatherer prometheus.Gatherer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `name:"db" env:"DOCSEARCH_DB" help:"Catalog database path (default ~/.docsearch/docsearch.db)"`
	Verbose bool   `short:"v" help:"Log debug output to stderr"`

	Extractor string `enum:"goquery,readability,trafilatura" default:"goquery" help:"HTML document extractor (${enum})"`

	Import ImportCmd `cmd:"" help:"Import a content directory into the catalog"`
	Search SearchCmd `cmd:"" help:"Search the catalog or a content directory"`
	List   ListCmd   `cmd:"" help:"List catalog records"`
	Export ExportCmd `cmd:"" help:"Export the catalog as a content directory"`
	Serve  ServeCmd  `cmd:"" help:"Serve search over HTTP"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Dir     string `arg:"" help:"Content directory"`
	Replace bool   `help:"Clear the catalog before importing"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query       []string `arg:"" optional:"" help:"Search terms"`
	Kind        string   `short:"k" enum:"document,command,agent,all" default:"all" help:"Restrict results to one collection (${enum})"`
	Offset      int      `default:"0" help:"Number of results to skip"`
	Limit       int      `short:"n" default:"50" help:"Maximum number of results"`
	Dir         string   `short:"d" help:"Search a content directory instead of the catalog"`
	JSON        bool     `name:"json" help:"Print the response as JSON"`
	Highlighter string   `enum:"regex,token" default:"regex" help:"Highlight strategy (${enum})"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Kind string `short:"k" enum:"document,command,agent,all" default:"all" help:"Collection to list (${enum})"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir string `arg:"" help:"Output directory"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr      string `default:"127.0.0.1:8080" env:"DOCSEARCH_ADDR" help:"Listen address"`
	Dir       string `short:"d" help:"Serve a content directory instead of the catalog"`
	Watch     bool   `short:"w" help:"Rebuild the index when the content directory changes (requires --dir)"`
	CacheSize int    `default:"256" help:"Number of responses to cache (0 disables caching)"`
}
