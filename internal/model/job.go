package model

import (
	"fmt"
	"regexp"
	"strings"
)

// SplitJob is one derived unit of work: extract a single track from its
// source file into an output FLAC.
//
// Jobs are created by the planner, consumed once by the split manager, and
// then discarded. End is nil for the last track of a file, meaning the
// segment runs to end-of-stream. A file's last track always ends at that
// file's end; segments never bleed into the next FILE entry.
type SplitJob struct {
	// Sequence is the 1-based global position of the job in sheet order.
	// Used for reporting; never used for the output filename.
	Sequence int

	// SourcePath is the audio file the segment is cut from.
	SourcePath string

	// Start is the segment start boundary (the track's INDEX 01).
	Start Timecode

	// End is the next track's start within the same file, or nil for
	// end-of-stream.
	End *Timecode

	// OutputPath is where the produced FLAC is written.
	OutputPath string

	// Tags is the Vorbis comment set for the output. Empty when tagging
	// is disabled. Values are verbatim sheet text, never sanitized.
	Tags map[string]string
}

// OutputName returns the output filename for a track:
//
//	{fileOrdinal:02d}-{trackNumber:02d} - {sanitizedTitle}.flac
//
// fileOrdinal is the 1-based position of the owning FILE entry and
// trackNumber is the track's own declared number. The pair is unique within
// a sheet even when per-side numbering restarts at 1, so no two tracks can
// produce the same name unless their sanitized titles collide under an
// identical prefix, which the parser's uniqueness checks rule out.
func OutputName(fileOrdinal int, track *CueTrack) string {
	return fmt.Sprintf("%02d-%02d - %s.flac", fileOrdinal, track.Number, sanitizeFileName(track.Title))
}

var (
	invalidPathChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots     = regexp.MustCompile(`\.+$`)
	whitespaceRuns   = regexp.MustCompile(`\s+`)
)

// sanitizeFileName applies the fixed substitution table for
// filesystem-illegal characters. Only filenames are sanitized; tag values
// keep the original text.
//
//   - < > : " / \ | ? * and control chars (0x00-0x1f) become underscore
//   - trailing dots are removed (Windows)
//   - whitespace runs collapse to a single space
//   - trailing whitespace is removed
//   - an empty result becomes "untitled"
func sanitizeFileName(name string) string {
	name = invalidPathChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = whitespaceRuns.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)
	if name == "" {
		return "untitled"
	}
	return name
}
