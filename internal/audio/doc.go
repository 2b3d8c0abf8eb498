// Package audio writes FLAC metadata and generates playlists for split
// output.
//
// # Tagging
//
// Tagger writes Vorbis comments (TRACKNUMBER, TITLE, ALBUM, ARTIST, ...)
// and an optional front-cover picture block into produced FLAC files. Only
// metadata blocks are rewritten; the audio stream is untouched.
//
//	tagger := audio.NewTagger()
//	err := tagger.Tag(job.OutputPath, job.Tags, coverJPEG)
//
// A tag-write failure spoils metadata, not audio: callers report it as a
// warning and keep the produced file.
//
// # Playlists
//
// PlaylistCreator renders the split tracks as M3U (plain or extended), PLS,
// WPL or ZPL:
//
//	creator := audio.NewPlaylistCreator(audio.FormatM3U, true)
//	content := creator.Create("The Album", entries)
//	os.WriteFile("The Album.m3u", []byte(content), 0644)
package audio
