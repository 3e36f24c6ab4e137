package card

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var unsafeRun = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// Slug returns a file-system safe stem for a card name.
func Slug(name string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), name)
	if err != nil {
		folded = name
	}
	s := strings.Trim(unsafeRun.ReplaceAllString(folded, "_"), "_")
	if s == "" {
		return "card"
	}
	return s
}
