// Package audio reads and writes the artists tags of MP3 files and writes
// playlists of changed items.
//
// # ID3 Tagging
//
// Use the Tagger to read items and store computed artists lists:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	item, err := tagger.ReadItem(path)
//	err = tagger.SaveArtists(item, []string{"Beyoncé", "JAY-Z"})
//
// The artists list is stored in a user defined text frame (TXXX) with the
// description from TagConfig.ArtistsFrame, "ARTISTS" by default. Values are
// separated by NUL, the ID3v2.4 multi-value convention. Other TXXX frames
// are preserved.
//
// # Playlist Generation
//
// Generate a playlist of the changed items for review in a player:
//
//	creator := audio.NewPlaylistCreator(audio.FormatFromPath(out), true)
//	err := creator.WritePlaylist(out, changes)
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
package audio
