package artists

import (
	"strings"
)

// Markers recognised as the first token of a featured-artist bracket.
var (
	artistFieldMarkers = []string{"feat.", "featuring", "with"}
	titleMarkers       = []string{"feat.", "feat", "featuring", "with"}
)

// inlineFeaturing are unbracketed featuring markers in the artist field.
// Matching is case-sensitive on purpose: "Feat." is listed, "FEAT." is not.
var inlineFeaturing = []string{" feat. ", " featuring ", " Feat. ", " Featuring "}

// clause is a featured-artist bracket located in a string.
type clause struct {
	prefix string // everything before the opening bracket
	body   string // artist text between the marker and the closing bracket
}

// findClause locates the last "(marker text)" or "[marker text]" in s.
//
// A bracket qualifies only if one of markers is its first token (compared
// case-insensitively) and is followed by a space, and if the bracket is
// closed. The body runs up to the first ')' or ']' after the marker.
func findClause(s string, markers []string) (clause, bool) {
	var found clause
	ok := false
	for i := 0; i < len(s); i++ {
		if s[i] != '(' && s[i] != '[' {
			continue
		}
		rest := s[i+1:]
		for _, marker := range markers {
			n, match := hasPrefixFold(rest, marker)
			if !match || n >= len(rest) || rest[n] != ' ' {
				continue
			}
			body := rest[n+1:]
			closing := strings.IndexAny(body, ")]")
			if closing < 0 {
				continue
			}
			found = clause{prefix: s[:i], body: body[:closing]}
			ok = true
			break
		}
	}
	return found, ok
}

// RewriteFeaturing flattens featured-artist notation in an artist field into
// comma-separated form, ready for SplitArtists.
//
// A bracketed "(feat. X)", "(featuring X)" or "(with X)" (square brackets
// work too) is replaced by ", X" and anything after that bracket is dropped.
// Only one bracket is rewritten, the last qualifying one. Bare " feat. " and
// " featuring " (also capitalised) become ", " wherever they occur.
//
// Example:
//
//	RewriteFeaturing("Beyoncé feat. JAY-Z & Kanye West") // "Beyoncé, JAY-Z & Kanye West"
//	RewriteFeaturing("Artist (with Guest) [Live]")        // "Artist, Guest"
func RewriteFeaturing(artist string) string {
	if c, ok := findClause(artist, artistFieldMarkers); ok {
		artist = strings.TrimRight(c.prefix, " ") + ", " + c.body
	}
	for _, marker := range inlineFeaturing {
		artist = strings.ReplaceAll(artist, marker, ", ")
	}
	return artist
}

// FeaturedClause returns the artist text of the featured-artist clause in a
// track title, e.g. "Colbie Caillat" for
// "Breathe (feat. Colbie Caillat) (Taylor's Version)".
//
// The clause must be bracketed and start with feat, feat., featuring or with.
// "You Belong With Me" and "Running Up That Hill (A Deal with God)" have no
// clause. When several brackets qualify the last one wins.
func FeaturedClause(title string) (string, bool) {
	c, ok := findClause(title, titleMarkers)
	if !ok {
		return "", false
	}
	return c.body, true
}
