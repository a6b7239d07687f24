package main

import (
	"fmt"
	"strconv"

	"github.com/fwojciec/berita"
)

// Run executes the sites command.
func (c *SitesCmd) Run(deps *Dependencies) error {
	domains := deps.Selectors.Domains()
	if len(domains) == 0 {
		fmt.Fprintln(deps.Stdout, "No publishers registered.")
		return nil
	}

	rows := [][]string{{"DOMAIN", "TITLE", "CONTENT", "AUTHOR", "DATE", "FIRST TITLE", "FIRST CONTENT"}}
	for _, d := range domains {
		s, _ := deps.Selectors.Lookup(d)
		rows = append(rows, []string{
			d,
			strconv.Itoa(len(s.Title)),
			strconv.Itoa(len(s.Content)),
			strconv.Itoa(len(s.Author)),
			strconv.Itoa(len(s.PublishDate)),
			clip(first(s.Title), 40),
			clip(first(s.Content), 40),
		})
	}
	return writeTable(deps.Stdout, rows)
}

func first(sels []berita.Selector) string {
	if len(sels) == 0 {
		return "-"
	}
	return sels[0].String()
}
