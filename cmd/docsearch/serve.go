package main

import (
	"context"
	"fmt"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/fsnotify"
	"github.com/fwojciec/docsearch/http"
	"golang.org/x/sync/errgroup"
)

// Run executes the serve command. It blocks until deps.Ctx is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	if c.Watch && c.Dir == "" {
		err := docsearch.Errorf(docsearch.EINVALID, "--watch requires --dir")
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	var source docsearch.ContentSource = deps.Store
	if c.Dir != "" {
		source = deps.NewSource(c.Dir)
	}

	server := http.NewServer(deps.Searcher, deps.Logger)
	server.Addr = c.Addr
	server.Gatherer = deps.Gatherer
	server.Reload = func(ctx context.Context) (*docsearch.IndexStats, error) {
		content, err := source.LoadContent(ctx)
		if err != nil {
			return nil, err
		}
		return deps.Searcher.BuildIndex(content.Documents, content.Commands, content.Agents), nil
	}

	stats, err := server.Rebuild(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	if err := server.Open(); err != nil {
		return fmt.Errorf("failed to listen on %q: %w", c.Addr, err)
	}
	fmt.Fprintf(deps.Stdout, "Serving %d entries on %s\n", stats.Entries(), server.URL())

	g, ctx := errgroup.WithContext(deps.Ctx)
	if c.Watch {
		watcher := fsnotify.NewWatcher(c.Dir, func(ctx context.Context) {
			if _, err := server.Rebuild(ctx); err != nil {
				deps.Logger.Warn("reload after change failed", "dir", c.Dir, "err", err)
			}
		})
		watcher.Logger = deps.Logger
		g.Go(func() error { return watcher.Watch(ctx) })
	}
	g.Go(func() error {
		<-ctx.Done()
		return server.Close()
	})
	return g.Wait()
}
