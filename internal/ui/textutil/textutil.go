// Package textutil measures and fits text by terminal column width.
package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// Width is the number of terminal columns s occupies (no ANSI codes).
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s to at most limit columns, ending in Ellipsis when cut.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if Width(s) <= limit {
		return s
	}
	return runewidth.Truncate(s, limit, Ellipsis)
}

// PadRight fits s into exactly width columns, truncating or space-padding.
func PadRight(s string, width int) string {
	s = Truncate(s, width)
	return s + strings.Repeat(" ", max(0, width-Width(s)))
}

// PadLeft is PadRight with the padding in front, for numeric columns.
func PadLeft(s string, width int) string {
	s = Truncate(s, width)
	return strings.Repeat(" ", max(0, width-Width(s))) + s
}
