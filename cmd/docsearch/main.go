package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/fs"
	"github.com/fwojciec/docsearch/goquery"
	"github.com/fwojciec/docsearch/htmltomarkdown"
	"github.com/fwojciec/docsearch/lru"
	dsprometheus "github.com/fwojciec/docsearch/prometheus"
	"github.com/fwojciec/docsearch/readability"
	"github.com/fwojciec/docsearch/search"
	dsslog "github.com/fwojciec/docsearch/slog"
	"github.com/fwojciec/docsearch/sqlite"
	"github.com/fwojciec/docsearch/trafilatura"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run(); the --db flag overrides it.
	DBPath string

	// SQLite database used by the content catalog.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docsearch"),
		kong.Description("Search documentation, commands and agents."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docsearch --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)
	deps.NewSource = func(dir string) docsearch.ContentSource {
		loader := fs.NewLoader(dir)
		loader.Extractor = newExtractor(cli.Extractor)
		loader.Converter = htmltomarkdown.NewConverter()
		return dsslog.NewLoggingContentSource(loader, deps.Logger)
	}
	deps.NewWriter = func(dir string) docsearch.ContentWriter {
		return fs.NewWriter(dir)
	}

	engine := search.NewEngine()
	if cli.Search.Highlighter == "token" {
		engine.Highlighter = search.NewTokenHighlighter()
	}
	var searcher docsearch.Searcher = engine
	command := kongCtx.Command()
	if strings.HasPrefix(command, "serve") {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		searcher = dsprometheus.NewMetricsSearcher(searcher, reg)
		if cli.Serve.CacheSize > 0 {
			searcher = lru.NewCachingSearcher(searcher, cli.Serve.CacheSize)
		}
		deps.Gatherer = reg
	}
	deps.Searcher = dsslog.NewLoggingSearcher(searcher, deps.Logger)

	// Searching or serving a content directory never touches the catalog.
	if (strings.HasPrefix(command, "search") && cli.Search.Dir != "") ||
		(strings.HasPrefix(command, "serve") && cli.Serve.Dir != "") {
		return kongCtx.Run(deps)
	}

	// Open database
	if cli.DB != "" {
		m.DBPath = cli.DB
	}
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DOCSEARCH_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	deps.Store = sqlite.NewContentStore(m.DB)

	return kongCtx.Run(deps)
}

func newExtractor(name string) docsearch.Extractor {
	switch name {
	case "readability":
		return readability.NewExtractor()
	case "trafilatura":
		return trafilatura.NewExtractor()
	default:
		return goquery.NewExtractor()
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "docsearch.db"
	}
	dir := filepath.Join(home, ".docsearch")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "docsearch.db")
}
