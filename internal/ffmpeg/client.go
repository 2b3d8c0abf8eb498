package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"splat/internal/model"
)

// Mode selects how a segment is extracted.
type Mode int

const (
	// ModeReencode decodes and re-encodes to FLAC at compression level 8.
	// STREAMINFO of the output is correct for the segment.
	ModeReencode Mode = iota

	// ModeStreamCopy copies encoded frames without re-encoding. Bit-exact,
	// but the output STREAMINFO is inherited from the source and wrong for
	// the segment. Not valid for WAV sources.
	ModeStreamCopy
)

// StreamInfo describes the first audio stream of a source file, as reported
// by ffprobe.
type StreamInfo struct {
	CodecName       string
	SampleRate      int
	Channels        int
	DurationSeconds float64
}

// IsFLAC reports whether the probed stream carries native FLAC frames,
// i.e. whether stream copy is possible at all.
func (si *StreamInfo) IsFLAC() bool {
	return si.CodecName == "flac"
}

// ExtractSpec describes one segment extraction.
type ExtractSpec struct {
	// Source is the input audio file.
	Source string

	// Output is the FLAC file to produce. Overwrite policy is the
	// caller's concern; ffmpeg itself is always run with -y.
	Output string

	// Start is the segment start.
	Start model.Timecode

	// End is the segment end, or nil for end-of-stream.
	End *model.Timecode

	// Mode selects stream copy or re-encode.
	Mode Mode
}

// Client invokes the external ffmpeg and ffprobe binaries.
//
// The zero paths mean "resolve from PATH". A Client is stateless and safe
// for concurrent use.
type Client struct {
	ffmpegPath  string
	ffprobePath string
}

// NewClient creates a Client. Empty paths default to "ffmpeg" and "ffprobe".
func NewClient(ffmpegPath, ffprobePath string) *Client {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Client{ffmpegPath: ffmpegPath, ffprobePath: ffprobePath}
}

// Available verifies both binaries can be resolved, before any job runs.
func (c *Client) Available() error {
	if _, err := exec.LookPath(c.ffmpegPath); err != nil {
		return fmt.Errorf("ffmpeg not found: %w", err)
	}
	if _, err := exec.LookPath(c.ffprobePath); err != nil {
		return fmt.Errorf("ffprobe not found: %w", err)
	}
	return nil
}

// probeOutput mirrors the subset of `ffprobe -show_streams -of json` output
// that splat needs. ffprobe reports numeric fields as JSON strings.
type probeOutput struct {
	Streams []struct {
		CodecName  string `json:"codec_name"`
		SampleRate string `json:"sample_rate"`
		Channels   int    `json:"channels"`
		Duration   string `json:"duration"`
	} `json:"streams"`
}

// Probe reports the stream parameters of the first audio stream in path.
func (c *Client) Probe(ctx context.Context, path string) (*StreamInfo, error) {
	cmd := exec.CommandContext(ctx, c.ffprobePath,
		"-hide_banner", "-loglevel", "error",
		"-select_streams", "a:0",
		"-show_streams",
		"-of", "json",
		path,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("probe %s: %w: %s", path, err, strings.TrimSpace(stderr.String()))
	}

	var out probeOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return nil, fmt.Errorf("probe %s: parse ffprobe output: %w", path, err)
	}
	if len(out.Streams) == 0 {
		return nil, fmt.Errorf("probe %s: no audio stream", path)
	}

	s := out.Streams[0]
	rate, err := strconv.Atoi(s.SampleRate)
	if err != nil || rate <= 0 {
		return nil, fmt.Errorf("probe %s: bad sample rate %q", path, s.SampleRate)
	}
	duration, _ := strconv.ParseFloat(s.Duration, 64)

	return &StreamInfo{
		CodecName:       s.CodecName,
		SampleRate:      rate,
		Channels:        s.Channels,
		DurationSeconds: duration,
	}, nil
}

// Extract produces spec.Output containing exactly the samples between
// spec.Start and spec.End of spec.Source.
//
// On a non-zero exit, an empty output, or cancellation, any partial output
// file is removed before returning.
func (c *Client) Extract(ctx context.Context, spec ExtractSpec) error {
	cmd := exec.CommandContext(ctx, c.ffmpegPath, extractArgs(spec)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		os.Remove(spec.Output)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("ffmpeg: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	info, err := os.Stat(spec.Output)
	if err != nil {
		return fmt.Errorf("ffmpeg produced no output: %w", err)
	}
	if info.Size() == 0 {
		os.Remove(spec.Output)
		return fmt.Errorf("ffmpeg produced an empty file")
	}
	return nil
}

// extractArgs builds the ffmpeg argument list for a spec.
//
// Seeking happens after -i (accurate decode seek); -map_metadata -1 keeps
// source tags out of the output.
func extractArgs(spec ExtractSpec) []string {
	args := []string{
		"-hide_banner", "-loglevel", "error", "-nostdin", "-y",
		"-i", spec.Source,
		"-ss", spec.Start.FFmpegTimestamp(),
	}
	if spec.End != nil {
		args = append(args, "-to", spec.End.FFmpegTimestamp())
	}
	switch spec.Mode {
	case ModeStreamCopy:
		args = append(args, "-c", "copy")
	default:
		args = append(args, "-c:a", "flac", "-compression_level", "8")
	}
	args = append(args, "-map_metadata", "-1", spec.Output)
	return args
}
