// Package width measures the rendered column width of text the way a
// terminal or editor would, so pkg/printer's column tracking agrees with
// what the user actually sees: wide CJK characters count as two columns,
// combining marks count as zero, and a multi-rune emoji grapheme cluster
// counts once.
package width

import (
	"github.com/rivo/uniseg"
	"golang.org/x/text/width"
)

// String returns the display width of s in terminal columns.
func String(s string) int {
	total := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		total += runeWidth(gr.Runes())
	}
	return total
}

func runeWidth(runes []rune) int {
	if len(runes) == 0 {
		return 0
	}
	r := runes[0]
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	if r == '\t' {
		return 1 // pkg/printer never emits literal tabs into rendered output
	}
	return 1
}
