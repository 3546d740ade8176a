package main

import (
	"fmt"
	"text/tabwriter"
)

// Run executes the sources command.
func (c *SourcesCmd) Run(deps *Dependencies) error {
	sources := deps.Catalog.List()
	if len(sources) == 0 {
		fmt.Fprintln(deps.Stdout, "No source profiles defined.")
		return nil
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFAMILY\tKEYS\tINDEX")
	for _, src := range sources {
		index, keys := src.IndexURL, src.Keys
		if !src.Crawlable() {
			index, keys = "(single pages only)", "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", src.Name, src.Family, keys, index)
	}
	return w.Flush()
}
