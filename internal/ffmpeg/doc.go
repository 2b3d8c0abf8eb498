// Package ffmpeg wraps the external transcoder processes (ffmpeg/ffprobe)
// behind a small client.
//
// The rest of splat treats the transcoder as a black box with two
// capabilities: report a source file's stream parameters, and extract an
// exact segment to FLAC either as a bit-exact stream copy or as a full
// decode and re-encode at maximum compression.
//
//	client := ffmpeg.NewClient("", "") // use ffmpeg/ffprobe from PATH
//
//	info, err := client.Probe(ctx, "/rips/SideA.flac")
//	// info.SampleRate, info.DurationSeconds, info.IsFLAC()
//
//	err = client.Extract(ctx, ffmpeg.ExtractSpec{
//	    Source: "/rips/SideA.flac",
//	    Output: "/rips/01-01 - Opening.flac",
//	    Start:  start,
//	    End:    &end, // nil runs to end-of-stream
//	    Mode:   ffmpeg.ModeReencode,
//	})
//
// # Modes
//
// ModeReencode decodes the segment and re-encodes it with FLAC compression
// level 8. The encoder writes a STREAMINFO block that is numerically correct
// for the segment (MD5, total samples, duration), and its settings are
// deterministic, so re-encoding the same segment twice produces identical
// bytes.
//
// ModeStreamCopy extracts without re-encoding FLAC frames. The output's
// STREAMINFO is copied from the source and is numerically wrong for the
// segment; that is an accepted property of stream copy and is deliberately
// not patched up. WAV sources have no FLAC frames to copy, so callers must
// always re-encode them.
//
// Source metadata is never carried into outputs (-map_metadata -1); tags are
// applied afterwards by the tagger, so output tag content is deterministic
// regardless of what the capture file carried.
//
// On failure or cancellation the partially written output is removed; a
// produced but empty file is treated as a failure too.
package ffmpeg
