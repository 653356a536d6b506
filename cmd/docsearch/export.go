package main

import (
	"fmt"

	"github.com/fwojciec/docsearch"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	content, err := deps.Store.LoadContent(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	if err := deps.NewWriter(c.Dir).WriteContent(deps.Ctx, content); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d records to %s\n", content.Len(), c.Dir)
	return nil
}
