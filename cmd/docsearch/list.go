package main

import (
	"fmt"

	"github.com/fwojciec/docsearch"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	content, err := deps.Store.LoadContent(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	if content.Len() == 0 {
		fmt.Fprintln(deps.Stdout, "Catalog is empty. Use 'docsearch import <dir>' to add content.")
		return nil
	}

	q := docsearch.Query{Kind: docsearch.Kind(c.Kind)}
	first := true
	section := func(kind docsearch.Kind, heading string, records []docsearch.Record) {
		if !q.Includes(kind) {
			return
		}
		if !first {
			fmt.Fprintln(deps.Stdout)
		}
		first = false
		fmt.Fprintf(deps.Stdout, "%s (%d):\n", heading, len(records))
		for _, r := range records {
			f := r.Fields()
			fmt.Fprintf(deps.Stdout, "  %s  %s  [%s]\n", f.ID, f.Title, f.Category)
		}
	}

	section(docsearch.KindDocument, "Documents", records(content.Documents))
	section(docsearch.KindCommand, "Commands", records(content.Commands))
	section(docsearch.KindAgent, "Agents", records(content.Agents))
	return nil
}

func records[T docsearch.Record](items []T) []docsearch.Record {
	out := make([]docsearch.Record, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}
