package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/docsearch"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	var source docsearch.ContentSource = deps.Store
	if c.Dir != "" {
		source = deps.NewSource(c.Dir)
	}

	content, err := source.LoadContent(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	if content.Len() == 0 && c.Dir == "" {
		fmt.Fprintln(deps.Stderr, "Catalog is empty. Use 'docsearch import <dir>' to add content.")
	}

	deps.Searcher.BuildIndex(content.Documents, content.Commands, content.Agents)

	q := docsearch.Query{
		Text:   strings.Join(c.Query, " "),
		Kind:   docsearch.Kind(c.Kind),
		Offset: c.Offset,
		Limit:  c.Limit,
	}
	resp := deps.Searcher.Search(q)

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	offset, _ := q.Page()
	fmt.Fprintln(deps.Stdout, docsearch.FormatResponse(resp, offset))
	return nil
}
