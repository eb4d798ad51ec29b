package model

import (
	"path/filepath"
	"strings"
)

// Item is a single track in the library.
//
// Artist and Title are the raw single-value tags. Artists is the multi-value
// artists field, which may be empty when the track has never been processed.
type Item struct {
	// Path is the location of the audio file.
	Path string

	// Artist is the track artist tag, possibly naming several artists.
	Artist string

	// Title is the track title, which may carry a "(feat. ...)" clause.
	Title string

	// Album is the album title. Informational only.
	Album string

	// Artists is the current multi-value artists field.
	Artists []string
}

// HasArtists reports whether the item already carries an artists list.
// Any entry counts, blank ones included.
func (i *Item) HasArtists() bool {
	return len(i.Artists) > 0
}

// String returns "Artist - Title", falling back to the file name when both
// tags are empty.
func (i *Item) String() string {
	if i.Artist == "" && i.Title == "" {
		return filepath.Base(i.Path)
	}
	return i.Artist + " - " + i.Title
}

// Clone returns a deep copy of the item.
func (i *Item) Clone() *Item {
	c := *i
	c.Artists = append([]string(nil), i.Artists...)
	return &c
}

// Change is a computed artists list for an item.
type Change struct {
	Item    *Item
	Artists []string
}

// Before returns the item's artists list before the change is applied.
func (c *Change) Before() []string {
	return append([]string{}, c.Item.Artists...)
}

// String renders the change as "Artist - Title: a, b".
func (c *Change) String() string {
	return c.Item.String() + ": " + strings.Join(c.Artists, ", ")
}
