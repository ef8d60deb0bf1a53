package draw

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TextWidth returns the number of terminal columns s occupies.
func TextWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s to at most width columns, marking the cut with an ellipsis.
func Truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}

// CenterCol returns the 1-based column at which s starts when centred in width columns.
func CenterCol(width int, s string) int {
	col := (width-TextWidth(s))/2 + 1
	if col < 1 {
		return 1
	}
	return col
}

// Wrap breaks s into lines no wider than width columns. Explicit newlines
// are kept, so blank lines separate paragraphs. Words longer than width
// are truncated.
func Wrap(s string, width int) []string {
	if width < 1 {
		return nil
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := ""
		lineWidth := 0
		for _, word := range words {
			ww := TextWidth(word)
			if ww > width {
				word = Truncate(word, width)
				ww = TextWidth(word)
			}
			switch {
			case lineWidth == 0:
				line, lineWidth = word, ww
			case lineWidth+1+ww <= width:
				line += " " + word
				lineWidth += 1 + ww
			default:
				lines = append(lines, line)
				line, lineWidth = word, ww
			}
		}
		lines = append(lines, line)
	}
	return lines
}
