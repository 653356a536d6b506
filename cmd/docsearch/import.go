package main

import (
	"fmt"

	"github.com/fwojciec/docsearch"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	content, err := deps.NewSource(c.Dir).LoadContent(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	if c.Replace {
		if err := deps.Store.ClearContent(deps.Ctx); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
			return err
		}
	}

	res, err := deps.Store.SaveContent(deps.Ctx, content)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Imported %d documents, %d commands, %d agents from %s (%d saved, %d unchanged)\n",
		len(content.Documents), len(content.Commands), len(content.Agents), c.Dir, res.Saved, res.Unchanged)
	return nil
}
