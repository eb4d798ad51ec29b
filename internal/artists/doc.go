// Package artists turns free-text artist and title tags into a canonical,
// deduplicated list of performing artists.
//
// # Extraction
//
// Build an Extractor once from configuration and reuse it:
//
//	e := artists.New(
//	    artists.WithSingleArtists([]string{"Earth, Wind & Fire", "AC/DC"}),
//	    artists.WithSeparators(artists.DefaultSeparators()),
//	)
//	e.GetArtists("Beyoncé feat. JAY-Z & Kanye West", "Drunk in Love (remix)", nil)
//	// ["Beyoncé", "JAY-Z", "Kanye West"]
//
// The pipeline is:
//
//  1. Whitelisted names are pulled out of the artist field first so their
//     own commas and ampersands are never split.
//  2. Featuring notation in the artist field ("(feat. X)", " featuring ")
//     is flattened to commas (RewriteFeaturing).
//  3. The field is split on the separators (SplitArtists).
//  4. A featuring clause in the title ("(with X)") adds its artists
//     (FeaturedClause).
//  5. Names are trimmed, "Various Artists" is dropped and duplicates under
//     Normalize are removed. The track artist itself, when it survives
//     unchanged, leads the list.
//
// # Separators
//
// The default separators are:
//
//	"␟", ", ", " & ", " and ", " + ", " with ", "/", ";"
//
// The first entry is the canonical delimiter; all others are rewritten to it
// before the split.
//
// # Comparison
//
// Normalize folds case, diacritics and a few punctuation variants.
// ListsHaveSameStrings compares two artist lists ignoring order, which is
// what callers use to decide whether a stored list needs rewriting.
package artists
