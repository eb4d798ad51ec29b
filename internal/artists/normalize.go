package artists

import (
	"strings"
	"unicode"

	"github.com/samber/lo"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	spacedPunctuation = strings.NewReplacer(" - ", " ", ": ", " ")
	punctuationFixes  = strings.NewReplacer("’", "'", "…", "...", "‐", "-")
)

// droppedRunes are removed after canonical decomposition: combining marks
// (accents) and apostrophe-like characters.
var droppedRunes = runes.Predicate(func(r rune) bool {
	return unicode.Is(unicode.Mn, r) || r == '\'' || r == '`' || r == '’'
})

// Normalize returns the comparison key of an artist name. It is used only
// for equality checks, never for display.
//
// The key is lower case, has " - " and ": " collapsed to a space, is
// decomposed (NFD) with combining marks and apostrophes removed, maps a few
// look-alike glyphs (ellipsis, non-breaking hyphen) to ASCII and collapses
// double spaces.
//
//	Normalize("Beyoncé")   // "beyonce"
//	Normalize("Guns N' Roses") == Normalize("guns n roses")
func Normalize(name string) string {
	s := strings.ToLower(name)
	s = spacedPunctuation.Replace(s)

	// transform.Chain keeps state, so it is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(droppedRunes))
	if out, _, err := transform.String(t, s); err == nil {
		s = out
	}

	s = punctuationFixes.Replace(s)
	return strings.ReplaceAll(s, "  ", " ")
}

// SameArtist reports whether a and b name the same artist.
func SameArtist(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// ListsHaveSameStrings reports whether a and b hold the same artists: equal
// length and, after normalisation, every name of one list appears in the
// other. Order is ignored.
func ListsHaveSameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	keysA := lo.Map(a, func(s string, _ int) string { return Normalize(s) })
	keysB := lo.Map(b, func(s string, _ int) string { return Normalize(s) })
	return lo.Every(keysA, keysB) && lo.Every(keysB, keysA)
}
