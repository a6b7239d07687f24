package main

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// writeTable prints rows as space-aligned columns, measuring cells by
// display width so wide characters line up. The first row is the header.
func writeTable(w io.Writer, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if n := runewidth.StringWidth(row[i]); n > widths[i] {
				widths[i] = n
			}
		}
	}

	var sb strings.Builder
	for _, row := range rows {
		sb.Reset()
		for i := 0; i < len(widths); i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if i == len(widths)-1 {
				sb.WriteString(cell)
				break
			}
			sb.WriteString(runewidth.FillRight(cell, widths[i]))
			sb.WriteString("  ")
		}
		sb.WriteString("\n")
		if _, err := io.WriteString(w, strings.TrimRight(sb.String(), " \n")+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// clip shortens s to at most width display cells.
func clip(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}
