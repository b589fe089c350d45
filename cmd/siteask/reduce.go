package main

import (
	"fmt"

	"github.com/fwojciec/siteask"
)

// Run executes the reduce command.
func (c *ReduceCmd) Run(deps *Dependencies) error {
	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: could not fetch %s: %v\n", c.URL, err)
		return err
	}

	content, err := deps.Reducer.Reduce(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteask.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, content)
	return nil
}
