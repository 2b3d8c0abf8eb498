package model

import (
	"errors"
	"fmt"
)

// framesPerSecond is the CUE frame rate (Red Book sectors per second).
const framesPerSecond = 75

// ErrInvalidTimecode is returned when a timecode field is out of range.
//
// Wrapped errors carry the offending value; use errors.Is to detect it:
//
//	_, err := model.NewTimecode(0, 61, 0)
//	errors.Is(err, model.ErrInvalidTimecode) // true
var ErrInvalidTimecode = errors.New("invalid timecode")

// Timecode is a CUE sheet position expressed as minutes:seconds:frames,
// where a frame is 1/75 of a second.
//
// Timecode is a value type; the zero value is 00:00:00.
type Timecode struct {
	Minutes int
	Seconds int
	Frames  int
}

// NewTimecode validates the fields and returns a Timecode.
//
// Returns an error wrapping ErrInvalidTimecode if any field is negative,
// seconds is 60 or more, or frames is 75 or more.
func NewTimecode(minutes, seconds, frames int) (Timecode, error) {
	if minutes < 0 || seconds < 0 || frames < 0 {
		return Timecode{}, fmt.Errorf("%w: negative field in %02d:%02d:%02d", ErrInvalidTimecode, minutes, seconds, frames)
	}
	if seconds >= 60 {
		return Timecode{}, fmt.Errorf("%w: seconds out of range in %02d:%02d:%02d", ErrInvalidTimecode, minutes, seconds, frames)
	}
	if frames >= framesPerSecond {
		return Timecode{}, fmt.Errorf("%w: frames out of range in %02d:%02d:%02d", ErrInvalidTimecode, minutes, seconds, frames)
	}
	return Timecode{Minutes: minutes, Seconds: seconds, Frames: frames}, nil
}

// TotalFrames returns the position as a whole number of 1/75-second frames.
func (t Timecode) TotalFrames() int64 {
	return (int64(t.Minutes)*60+int64(t.Seconds))*framesPerSecond + int64(t.Frames)
}

// Samples converts the position to an exact sample offset for the given
// sample rate.
//
// The computation is frames*rate/75 in integer arithmetic, truncated only at
// the final division. For rates divisible by 75 (44100, 48000, 88200, 96000,
// 176400, 192000) the result is exact with no truncation at all, so offsets
// never drift across tracks.
func (t Timecode) Samples(sampleRate int) int64 {
	return t.TotalFrames() * int64(sampleRate) / framesPerSecond
}

// Seconds64 returns the position in seconds as a float, for display and
// playlist durations. Split boundaries never use this.
func (t Timecode) Seconds64() float64 {
	return float64(t.TotalFrames()) / framesPerSecond
}

// FFmpegTimestamp formats the position as seconds with microsecond precision
// for ffmpeg -ss/-to arguments, e.g. "192.440000".
//
// Microseconds are computed from the exact frame count and rounded half-up,
// matching the precision ffmpeg accepts without introducing per-track drift.
func (t Timecode) FFmpegTimestamp() string {
	// micros = frames * 1e6 / 75, rounded half-up via doubled numerator.
	micros := (t.TotalFrames()*1000000*2 + framesPerSecond) / (framesPerSecond * 2)
	return fmt.Sprintf("%d.%06d", micros/1000000, micros%1000000)
}

// Before reports whether t is strictly earlier than other.
func (t Timecode) Before(other Timecode) bool {
	return t.TotalFrames() < other.TotalFrames()
}

// String returns the canonical mm:ss:ff form, e.g. "03:12:33".
func (t Timecode) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Minutes, t.Seconds, t.Frames)
}
