package model

// CueSheet is the parsed form of one CUE file.
//
// Files appear in source order. Album-level TITLE/PERFORMER apply to every
// track that does not override them; Genre and Date come from REM GENRE and
// REM DATE lines when present.
//
// A CueSheet exclusively owns its CueFiles and their CueTracks; tracks hold
// no back-reference to their file, they are related by position only.
type CueSheet struct {
	// Title is the album title, from a TITLE line outside any TRACK.
	Title string

	// Performer is the album performer, from a PERFORMER line outside any TRACK.
	Performer string

	// Genre is the REM GENRE value, if present.
	Genre string

	// Date is the REM DATE value, if present.
	Date string

	// Files are the FILE entries in order of appearance.
	Files []*CueFile
}

// TrackCount returns the total number of tracks across all files.
func (s *CueSheet) TrackCount() int {
	n := 0
	for _, f := range s.Files {
		n += len(f.Tracks)
	}
	return n
}

// CueFile is one FILE entry: a single continuous audio capture (one vinyl
// side, typically) and the tracks cut from it.
type CueFile struct {
	// Path is the audio file path resolved against the sheet directory.
	Path string

	// Format is the declared type token from the FILE line (WAVE, FLAC...).
	// Informational only; the actual format is probed before splitting.
	Format string

	// Tracks are the TRACK entries belonging to this file, in order.
	Tracks []*CueTrack
}

// CueTrack is one TRACK entry within a file.
type CueTrack struct {
	// Number is the track number as declared in the sheet, 1-based.
	// Numbers may restart at 1 in a later FILE (the per-side reset case).
	Number int

	// Title is the track title, verbatim from the sheet including any
	// embedded quotes or apostrophes.
	Title string

	// Performer is the track-level performer. Empty means the album
	// performer applies.
	Performer string

	// Start is the INDEX 01 timecode, the only boundary used for splitting.
	Start Timecode

	// PreGap is the INDEX 00 timecode if one was declared. Recorded for
	// completeness, never used as a split boundary.
	PreGap *Timecode
}

// EffectivePerformer returns the track performer, falling back to the album
// performer when the track does not declare one.
func (t *CueTrack) EffectivePerformer(sheet *CueSheet) string {
	if t.Performer != "" {
		return t.Performer
	}
	return sheet.Performer
}
