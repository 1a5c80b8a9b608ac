package mapping

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize prepares a header for comparison: zero-width characters and BOM
// are removed, the text is lowercased and NFC-composed, whitespace runs
// collapse to one space and the ends are trimmed.
func Normalize(text string) string {
	text = strings.Map(func(r rune) rune {
		switch r {
		case '\u200B', '\u200C', '\u200D', '\uFEFF':
			return -1
		}
		return r
	}, text)

	// Exports re-saved on macOS carry decomposed umlauts.
	text = norm.NFC.String(strings.ToLower(text))

	return strings.Join(strings.FieldsFunc(text, unicode.IsSpace), " ")
}
