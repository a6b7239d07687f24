package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fwojciec/berita"
)

// Run executes the probe command. It reports the normalized domain,
// whether selectors are registered for it, and the outcome of each
// request strategy until one succeeds.
func (c *ProbeCmd) Run(deps *Dependencies) error {
	domain := berita.NormalizeDomain(c.URL)
	if domain == "" {
		return berita.Errorf(berita.EINVALID, "invalid URL %q", c.URL)
	}
	_, registered := deps.Selectors.Lookup(domain)

	fmt.Fprintf(deps.Stdout, "Domain:     %s\n", domain)
	fmt.Fprintf(deps.Stdout, "Selectors:  %s\n", yesNo(registered))

	attempts, err := deps.Prober.Probe(deps.Ctx, c.URL)
	if err != nil {
		return err
	}

	accessible := false
	rows := [][]string{{"STRATEGY", "STATUS", "BYTES", "TIME", "ERROR"}}
	for _, a := range attempts {
		status := "-"
		if a.Status > 0 {
			status = strconv.Itoa(a.Status)
		}
		errText := ""
		if a.Err != nil {
			errText = clip(a.Err.Error(), 60)
		} else {
			accessible = true
		}
		rows = append(rows, []string{a.Strategy, status, strconv.Itoa(a.Bytes), a.Duration.Round(time.Millisecond).String(), errText})
	}

	fmt.Fprintf(deps.Stdout, "Accessible: %s\n\n", yesNo(accessible))
	return writeTable(deps.Stdout, rows)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
