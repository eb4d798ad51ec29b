package library

import (
	"strings"

	"github.com/handiism/autoartists/internal/model"
	"github.com/samber/lo"
)

// Fields a query term can be restricted to.
const (
	FieldArtist  = "artist"
	FieldTitle   = "title"
	FieldPath    = "path"
	FieldArtists = "artists"
)

var queryFields = []string{FieldArtist, FieldTitle, FieldPath, FieldArtists}

type term struct {
	field string // empty for a bare term
	value string // lower-cased
}

// Query selects library items. All terms must match. The zero Query matches
// every item.
type Query struct {
	terms []term
}

// ParseQuery builds a query from command-line arguments. Each argument is
// split on whitespace into terms. A term of the form "field:value" restricts
// the match to that field; any other term matches the artist, title or path.
//
//	library.ParseQuery([]string{"artist:beyoncé", "love"})
func ParseQuery(args []string) Query {
	var q Query
	for _, arg := range args {
		for _, word := range strings.Fields(arg) {
			q.terms = append(q.terms, parseTerm(word))
		}
	}
	return q
}

func parseTerm(word string) term {
	if field, value, ok := strings.Cut(word, ":"); ok && lo.Contains(queryFields, strings.ToLower(field)) {
		return term{field: strings.ToLower(field), value: strings.ToLower(value)}
	}
	return term{value: strings.ToLower(word)}
}

// Match reports whether item satisfies every term of the query.
func (q Query) Match(item *model.Item) bool {
	return lo.EveryBy(q.terms, func(t term) bool {
		return t.match(item)
	})
}

// Empty reports whether the query has no terms.
func (q Query) Empty() bool {
	return len(q.terms) == 0
}

// String renders the query back in its parsed form.
func (q Query) String() string {
	words := lo.Map(q.terms, func(t term, _ int) string {
		if t.field == "" {
			return t.value
		}
		return t.field + ":" + t.value
	})
	return strings.Join(words, " ")
}

func (t term) match(item *model.Item) bool {
	switch t.field {
	case FieldArtist:
		return containsLower(item.Artist, t.value)
	case FieldTitle:
		return containsLower(item.Title, t.value)
	case FieldPath:
		return containsLower(item.Path, t.value)
	case FieldArtists:
		return lo.SomeBy(item.Artists, func(a string) bool {
			return containsLower(a, t.value)
		})
	default:
		return containsLower(item.Artist, t.value) ||
			containsLower(item.Title, t.value) ||
			containsLower(item.Path, t.value)
	}
}

func containsLower(s, lowerSubstr string) bool {
	return strings.Contains(strings.ToLower(s), lowerSubstr)
}
