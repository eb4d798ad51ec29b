package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/autoartists/internal/model"
)

// PlaylistFormat represents supported playlist file formats.
//
// Each format has different features and compatibility:
//   - M3U: Simple text format, widely supported
//   - PLS: INI-style format, used by Winamp
//   - WPL: XML format, Windows Media Player
type PlaylistFormat int

const (
	// FormatM3U creates .m3u files (most compatible).
	// Can be extended with EXTINF lines carrying the new artists.
	FormatM3U PlaylistFormat = iota

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	FormatPLS

	// FormatWPL creates .wpl files (Windows Media Player).
	FormatWPL
)

// FormatFromPath picks a playlist format from a file extension. Unknown
// extensions get M3U.
func FormatFromPath(path string) PlaylistFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pls":
		return FormatPLS
	case ".wpl":
		return FormatWPL
	default:
		return FormatM3U
	}
}

// PlaylistCreator generates a playlist of changed items.
//
// The playlist lets the user review the affected tracks in a player. Entries
// carry absolute paths since the changes may span the whole library.
//
// Example:
//
//	creator := NewPlaylistCreator(FormatM3U, true)
//	content := creator.CreatePlaylist(changes)
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:-1,Beyoncé, JAY-Z - Drunk in Love
//	// /music/Beyoncé/Drunk in Love.mp3
type PlaylistCreator struct {
	format   PlaylistFormat
	extended bool // For M3U: include EXTINF lines
}

// NewPlaylistCreator creates a new PlaylistCreator.
//
// extended only applies to M3U.
func NewPlaylistCreator(format PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// CreatePlaylist generates playlist content for changes.
func (p *PlaylistCreator) CreatePlaylist(changes []*model.Change) string {
	switch p.format {
	case FormatPLS:
		return p.createPLS(changes)
	case FormatWPL:
		return p.createWPL(changes)
	default:
		return p.createM3U(changes)
	}
}

// WritePlaylist writes the playlist for changes to path.
func (p *PlaylistCreator) WritePlaylist(path string, changes []*model.Change) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(p.CreatePlaylist(changes)), 0644)
}

// entryTitle is "<artists> - <title>" using the computed artists.
func entryTitle(change *model.Change) string {
	return strings.Join(change.Artists, ", ") + " - " + change.Item.Title
}

func (p *PlaylistCreator) createM3U(changes []*model.Change) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, change := range changes {
		if p.extended {
			// Durations are not read, -1 marks them unknown.
			sb.WriteString(fmt.Sprintf("#EXTINF:-1,%s\n", entryTitle(change)))
		}
		sb.WriteString(change.Item.Path + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist:
//
//	[playlist]
//	File1=/music/song.mp3
//	Title1=A, B - Song
//	Length1=-1
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistCreator) createPLS(changes []*model.Change) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, change := range changes {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, change.Item.Path))
		sb.WriteString(fmt.Sprintf("Title%d=%s\n", idx, entryTitle(change)))
		sb.WriteString(fmt.Sprintf("Length%d=-1\n", idx))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(changes)))
	sb.WriteString("Version=2\n")

	return sb.String()
}

func (p *PlaylistCreator) createWPL(changes []*model.Change) string {
	var sb strings.Builder

	sb.WriteString("<?wpl version=\"1.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString("    <meta name=\"Generator\" content=\"autoartists\"/>\n")
	sb.WriteString(fmt.Sprintf("    <meta name=\"ItemCount\" content=\"%d\"/>\n", len(changes)))
	sb.WriteString("    <title>autoartists changes</title>\n")
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, change := range changes {
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\"/>\n", escapeXML(change.Item.Path)))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// escapeXML escapes special XML characters in a string.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
