package audio

import (
	"strings"

	"github.com/bogem/id3v2"
	"github.com/handiism/autoartists/internal/model"
	"github.com/samber/lo"
)

// multiValueSeparator joins the values of a multi-value text frame, as
// ID3v2.4 prescribes.
const multiValueSeparator = "\x00"

// TagEditAction defines how to handle individual ID3 tags.
type TagEditAction int

const (
	// TagEmpty removes the frame.
	TagEmpty TagEditAction = iota

	// TagModify replaces the frame with the computed value.
	TagModify

	// TagDoNotModify leaves the existing frame unchanged.
	TagDoNotModify
)

// TagConfig controls which frames the Tagger reads and writes.
//
// Example:
//
//	cfg := &TagConfig{
//	    ModifyTags:   true,
//	    ArtistsFrame: "ARTISTS",  // TXXX description
//	    Artists:      TagModify,  // Replace the artists list
//	}
type TagConfig struct {
	// ModifyTags is a master switch. If false, no frames are written.
	ModifyTags bool

	// ArtistsFrame is the description of the TXXX frame holding the
	// artists list. Matched case-insensitively when reading.
	ArtistsFrame string

	// Artists controls the TXXX artists frame.
	Artists TagEditAction
}

// DefaultTagConfig returns the default tag configuration, which writes the
// artists list to TXXX:ARTISTS.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		ModifyTags:   true,
		ArtistsFrame: "ARTISTS",
		Artists:      TagModify,
	}
}

// Tagger reads items from MP3 files and writes computed artists lists back.
//
// The single-value fields come from TPE1 (artist), TIT2 (title) and TALB
// (album). The artists list lives in a user defined text frame, one value
// per artist.
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//
//	item, err := tagger.ReadItem("/music/song.mp3")
//	if err != nil {
//	    return err
//	}
//	err = tagger.SaveArtists(item, []string{"Beyoncé", "JAY-Z"})
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// ReadItem reads the tags of the MP3 file at path.
func (t *Tagger) ReadItem(path string) (*model.Item, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer tag.Close()

	return &model.Item{
		Path:    path,
		Artist:  strings.TrimRight(tag.Artist(), multiValueSeparator),
		Title:   tag.Title(),
		Album:   tag.Album(),
		Artists: t.artistsFrame(tag),
	}, nil
}

// SaveArtists writes artists to the item's file according to the
// configuration. It does not modify item.
func (t *Tagger) SaveArtists(item *model.Item, artists []string) error {
	if !t.config.ModifyTags || t.config.Artists == TagDoNotModify {
		return nil
	}

	tag, err := id3v2.Open(item.Path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	t.removeArtistsFrame(tag)

	if t.config.Artists == TagModify && len(artists) > 0 {
		tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
			Encoding:    id3v2.EncodingUTF8,
			Description: t.config.ArtistsFrame,
			Value:       JoinValues(artists),
		})
	}

	return tag.Save()
}

// artistsFrame returns the values of the configured TXXX frame.
func (t *Tagger) artistsFrame(tag *id3v2.Tag) []string {
	for _, f := range tag.GetFrames(tag.CommonID("User defined text information frame")) {
		udtf, ok := f.(id3v2.UserDefinedTextFrame)
		if ok && strings.EqualFold(udtf.Description, t.config.ArtistsFrame) {
			return SplitValues(udtf.Value)
		}
	}
	return nil
}

// removeArtistsFrame deletes the configured TXXX frame and keeps every other
// user defined text frame.
func (t *Tagger) removeArtistsFrame(tag *id3v2.Tag) {
	id := tag.CommonID("User defined text information frame")
	frames := tag.GetFrames(id)
	tag.DeleteFrames(id)

	for _, f := range frames {
		udtf, ok := f.(id3v2.UserDefinedTextFrame)
		if !ok || strings.EqualFold(udtf.Description, t.config.ArtistsFrame) {
			continue
		}
		tag.AddUserDefinedTextFrame(udtf)
	}
}

// JoinValues encodes a multi-value frame.
func JoinValues(values []string) string {
	return strings.Join(values, multiValueSeparator)
}

// SplitValues decodes a multi-value frame, dropping empty values and the
// terminator some writers append.
func SplitValues(value string) []string {
	return lo.Filter(strings.Split(value, multiValueSeparator), func(v string, _ int) bool {
		return v != ""
	})
}
