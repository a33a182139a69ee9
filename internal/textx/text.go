// Package textx normalizes free text before it is compared or used as a
// storage key.
package textx

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases s, drops punctuation and symbols, collapses
// whitespace and trims the result. "¿QUÉ HORA ES?" becomes "qué hora es".
func Normalize(s string) string {
	lowered := cases.Lower(language.Und).String(s)

	var b strings.Builder
	b.Grow(len(lowered))
	space := false
	for _, r := range lowered {
		switch {
		case unicode.IsSpace(r):
			space = b.Len() > 0
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			// The rune is dropped, but it still separates words.
			if b.Len() > 0 {
				space = true
			}
		default:
			if space {
				b.WriteByte(' ')
				space = false
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Fold strips combining marks so "adiós" compares equal to "adios".
// A transformer is built per call because transform chains are not safe
// for concurrent use.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
