// Package textwrap implements the greedy line breaking used for card rules
// and flavor text.
package textwrap

import (
	"strings"
	"unicode/utf8"
)

// Wrap breaks text into lines of at most width runes.
//
// Each "\n"-separated paragraph is wrapped on its own, and a paragraph that
// is empty or only whitespace becomes one empty line. Words are never split:
// a word longer than width occupies a line by itself. Runs of whitespace
// inside a paragraph collapse to single spaces.
//
// Wrap is idempotent: wrapping strings.Join(Wrap(s, w), "\n") at the same
// width yields the same lines. A width below 1 is treated as 1.
func Wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, wrapWords(words, width)...)
	}
	return lines
}

func wrapWords(words []string, width int) []string {
	var (
		lines []string
		cur   strings.Builder
		n     int
	)
	for _, w := range words {
		wl := utf8.RuneCountInString(w)
		if n > 0 && n+1+wl > width {
			lines = append(lines, cur.String())
			cur.Reset()
			n = 0
		}
		if n > 0 {
			cur.WriteByte(' ')
			n++
		}
		cur.WriteString(w)
		n += wl
	}
	return append(lines, cur.String())
}
