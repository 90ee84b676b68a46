package jfmt

import "github.com/clipperhouse/displaywidth"

// WidthFunc measures the rendered column width of a string. Every padding
// and alignment decision in the package goes through the configured
// WidthFunc; no component may assume one byte equals one column (spec §4.1,
// §9 "String width").
type WidthFunc func(s string) int

// DefaultWidth counts runes, treating every rune as one column. This is the
// package default and matches plain ASCII/Latin text exactly.
func DefaultWidth(s string) int {
	n := 0
	for range s {
		n++
	}

	return n
}

// EastAsianWidth measures width the way a terminal renders it, counting
// East-Asian fullwidth and wide characters as two columns. Backed by
// [github.com/clipperhouse/displaywidth], the same grapheme-aware width
// library the rest of the pack's terminal tooling uses. Select it via
// [Options.WidthFunc] when formatting documents that may contain CJK text.
func EastAsianWidth(s string) int {
	return displaywidth.String(s)
}
