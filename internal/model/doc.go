// Package model defines the core data structures shared across splat.
//
// # CueSheet
//
// CueSheet is the parsed form of a CUE file: album-level metadata plus the
// ordered FILE entries, each with its ordered tracks:
//
//	sheet := &model.CueSheet{...} // produced by internal/cue
//	for i, file := range sheet.Files {
//	    for _, track := range file.Tracks {
//	        fmt.Println(model.OutputName(i+1, track))
//	    }
//	}
//
// # Timecode
//
// Timecode is a CUE mm:ss:ff position (frames are 1/75 of a second).
// Conversions are exact integer arithmetic so split points never drift:
//
//	tc, _ := model.NewTimecode(3, 12, 33)
//	tc.Samples(44100)      // exact sample offset
//	tc.FFmpegTimestamp()   // "192.440000"
//
// # SplitJob
//
// SplitJob is one unit of work derived from a track: source file, start/end
// boundary, output path, and the tag set to apply. Jobs are created by
// internal/plan and consumed once by the split manager.
//
// # Output naming
//
// Output filenames always use a two-part prefix, the 1-based FILE ordinal
// followed by the track's own declared number:
//
//	01-01 - Opening.flac
//	02-01 - Side Two Intro.flac
//
// The ordinal disambiguates sheets whose track numbers restart at 1 on each
// side, so Side A track 1 and Side B track 1 never collide.
package model
