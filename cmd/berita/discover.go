package main

import (
	"fmt"
	"regexp"

	"github.com/fwojciec/berita"
)

// Run executes the discover command, printing one URL per line so the
// output can be piped into "scrape --input -".
func (c *DiscoverCmd) Run(deps *Dependencies) error {
	filter, err := c.filter()
	if err != nil {
		return err
	}

	source, ok := deps.Sources[c.From]
	if !ok {
		return berita.Errorf(berita.EINVALID, "unknown URL source %q", c.From)
	}

	urls, err := source.DiscoverURLs(deps.Ctx, c.Location, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", berita.ErrorMessage(err))
		return err
	}

	if c.Limit > 0 && len(urls) > c.Limit {
		urls = urls[:c.Limit]
	}
	for _, u := range urls {
		fmt.Fprintln(deps.Stdout, u)
	}
	fmt.Fprintf(deps.Stderr, "Found %d URLs\n", len(urls))
	return nil
}

func (c *DiscoverCmd) filter() (*berita.URLFilter, error) {
	if len(c.Include) == 0 && len(c.Exclude) == 0 {
		return nil, nil
	}
	f := &berita.URLFilter{}
	for _, p := range c.Include {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, berita.Errorf(berita.EINVALID, "invalid include pattern %q: %v", p, err)
		}
		f.Include = append(f.Include, re)
	}
	for _, p := range c.Exclude {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, berita.Errorf(berita.EINVALID, "invalid exclude pattern %q: %v", p, err)
		}
		f.Exclude = append(f.Exclude, re)
	}
	return f, nil
}
