package artists

import (
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
)

// defaultSeparators is the built-in separator list. The first entry is the
// canonical delimiter every other separator is rewritten to before splitting.
var defaultSeparators = []string{"␟", ", ", " & ", " and ", " + ", " with ", "/", ";"}

// DefaultSeparators returns a fresh copy of the built-in separator list.
//
// The first element ("␟", U+241F SYMBOL FOR UNIT SEPARATOR) is the canonical
// delimiter; it practically never occurs in real tags.
func DefaultSeparators() []string {
	return append([]string(nil), defaultSeparators...)
}

// SplitArtists splits text into artist names without ever breaking apart a
// whitelisted (single artist) name.
//
// Whitelist entries are tried in order. An entry found anywhere in text
// (case-insensitively) is collected and its first occurrence removed, so its
// own separators are never seen by the generic split. If what is left of text
// equals an entry, the matches collected so far are returned as is.
//
// Every separator after the first is then rewritten to separators[0] and the
// remainder is split on it. The result is the generic fragments followed by
// the whitelist matches, with blank fragments dropped. Fragments are not
// trimmed.
//
// With no separators the remainder is kept whole.
//
// Example:
//
//	SplitArtists("Jim Croce & Earth, Wind & Fire", []string{"Earth, Wind & Fire"}, DefaultSeparators())
//	// ["Jim Croce", "Earth, Wind & Fire"]
func SplitArtists(text string, whitelist, separators []string) []string {
	var matches []string
	for _, single := range whitelist {
		if isBlank(single) {
			continue
		}
		start, end, ok := indexFold(text, single)
		if !ok {
			continue
		}
		matches = append(matches, single)
		if strings.EqualFold(text, single) {
			return matches
		}
		text = text[:start] + text[end:]
	}

	var fragments []string
	if len(separators) == 0 {
		fragments = []string{text}
	} else {
		canonical := separators[0]
		for _, sep := range separators[1:] {
			if sep == "" {
				continue
			}
			text = strings.ReplaceAll(text, sep, canonical)
		}
		if canonical == "" {
			fragments = []string{text}
		} else {
			fragments = strings.Split(text, canonical)
		}
	}

	return lo.Filter(append(fragments, matches...), func(s string, _ int) bool {
		return !isBlank(s)
	})
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// indexFold reports the byte range of the first case-insensitive occurrence
// of substr in s. Matching is rune by rune with Unicode simple folding, so the
// returned offsets are valid in s even when upper and lower case forms differ
// in encoded length.
func indexFold(s, substr string) (start, end int, ok bool) {
	if substr == "" {
		return 0, 0, true
	}
	for i := 0; i < len(s); {
		if n, found := hasPrefixFold(s[i:], substr); found {
			return i, i + n, true
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return 0, 0, false
}

// hasPrefixFold reports whether s begins with prefix under case folding and,
// if so, how many bytes of s the prefix covers.
func hasPrefixFold(s, prefix string) (int, bool) {
	n := 0
	for _, pr := range prefix {
		if n >= len(s) {
			return 0, false
		}
		sr, size := utf8.DecodeRuneInString(s[n:])
		if sr != pr && !strings.EqualFold(string(sr), string(pr)) {
			return 0, false
		}
		n += size
	}
	return n, true
}

// containsFold reports whether substr occurs in s, ignoring case.
func containsFold(s, substr string) bool {
	_, _, ok := indexFold(s, substr)
	return ok
}
