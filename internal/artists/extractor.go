package artists

import (
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// variousArtists is the compilation placeholder, never a real artist.
const variousArtists = "various artists"

// Extractor computes canonical artist lists from artist and title tags.
//
// An Extractor is immutable once built and safe for concurrent use. To change
// the whitelist or separators, build a new one.
type Extractor struct {
	separators    []string
	singleArtists []string
	logger        *zap.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithSeparators sets the separator list. The first entry is the canonical
// delimiter. An empty list disables generic splitting.
func WithSeparators(separators []string) Option {
	return func(e *Extractor) {
		e.separators = append([]string(nil), separators...)
	}
}

// WithSingleArtists sets the whitelist of names that must never be split,
// such as "Earth, Wind & Fire". Blank entries are ignored.
func WithSingleArtists(names []string) Option {
	return func(e *Extractor) {
		e.singleArtists = lo.Filter(names, func(s string, _ int) bool { return !isBlank(s) })
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Extractor. Without options it uses DefaultSeparators, an
// empty whitelist and a no-op logger.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		separators: DefaultSeparators(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger.Debug("Artist extractor ready",
		zap.Strings("single_artists", e.singleArtists),
		zap.Strings("separators", e.separators))
	return e
}

// Separators returns a copy of the configured separators.
func (e *Extractor) Separators() []string {
	return append([]string(nil), e.separators...)
}

// SingleArtists returns a copy of the configured whitelist.
func (e *Extractor) SingleArtists() []string {
	return append([]string(nil), e.singleArtists...)
}

// Split splits text with the extractor's whitelist and separators.
func (e *Extractor) Split(text string) []string {
	return SplitArtists(text, e.singleArtists, e.separators)
}

// TitleFeatures returns the featured artists named in a title clause such as
// "(feat. A & B)", or nil if the title has none.
func (e *Extractor) TitleFeatures(title string) []string {
	body, ok := FeaturedClause(title)
	if !ok {
		return nil
	}
	return e.Split(body)
}

// GetArtists returns the ordered, deduplicated list of artists for a track.
//
// Candidates are gathered in this order: the existing artists (kept
// verbatim), whitelisted names found in artist, the remaining artist field
// after featuring notation is flattened and split, and finally artists from
// a featuring clause in title. Candidates are trimmed, "Various Artists" and
// empty names are dropped, and names equal under Normalize are kept once.
// A candidate identical to artist is moved to the front.
//
// Example:
//
//	e := New(WithSingleArtists([]string{"Earth, Wind & Fire"}))
//	e.GetArtists("An Artist", "September (feat. Earth, Wind & Fire)", nil)
//	// ["An Artist", "Earth, Wind & Fire"]
func (e *Extractor) GetArtists(artist, title string, artists []string) []string {
	trackArtist := artist
	candidates := append([]string(nil), artists...)

	for _, single := range e.singleArtists {
		start, end, ok := indexFold(artist, single)
		if !ok {
			continue
		}
		e.logger.Debug("Single artist matched", zap.String("single_artist", single), zap.String("artist", artist))
		if !lo.Contains(candidates, single) {
			candidates = append(candidates, single)
		}
		artist = artist[:start] + artist[end:]
	}

	artist = RewriteFeaturing(artist)
	candidates = e.appendNew(candidates, e.Split(artist))
	candidates = e.appendNew(candidates, e.TitleFeatures(title))

	final := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" || strings.EqualFold(candidate, variousArtists) {
			continue
		}
		key := Normalize(candidate)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if candidate == trackArtist {
			final = append([]string{candidate}, final...)
		} else {
			final = append(final, candidate)
		}
	}
	return final
}

// appendNew appends the names not already present, compared exactly.
func (e *Extractor) appendNew(candidates, names []string) []string {
	for _, name := range names {
		if lo.Contains(candidates, name) {
			continue
		}
		e.logger.Debug("Adding artist", zap.String("artist", name))
		candidates = append(candidates, name)
	}
	return candidates
}
