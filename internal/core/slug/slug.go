// Package slug converts facet display values to URL tokens and back.
//
// The transform is lossy: Unslugify cannot recover punctuation or irregular
// capitalization ("F-150" -> "f-150" -> "F 150"). Decoded values are only
// used to look up the catalog's own spelling, never trusted as-is.
package slug

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars = regexp.MustCompile(`[^\w\s-]`)
	whitespace   = regexp.MustCompile(`\s+`)
	hyphens      = regexp.MustCompile(`-+`)
)

// Slugify lowercases text, drops everything except word characters, spaces and
// hyphens, and joins words with single hyphens. Slugify(Slugify(x)) == Slugify(x).
func Slugify(text string) string {
	s := strings.ToLower(foldDiacritics(text))
	s = nonSlugChars.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = hyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Unslugify splits a slug on hyphens and capitalizes the first letter of each token.
func Unslugify(slug string) string {
	tokens := strings.Split(slug, "-")
	words := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(token)
		words = append(words, string(unicode.ToUpper(r))+token[size:])
	}
	return strings.Join(words, " ")
}

// Equal reports whether two display values map to the same slug.
func Equal(a, b string) bool {
	return Slugify(a) == Slugify(b)
}

// foldDiacritics strips combining marks so "Citroën" keeps its "e".
func foldDiacritics(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return out
}
