package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// CopyMode values.
const (
	// CopyModeReencode decodes and re-encodes each segment, producing
	// correct STREAMINFO. The default.
	CopyModeReencode = "reencode"

	// CopyModeStreamCopy keeps original FLAC frames bit-exactly; the
	// output STREAMINFO is inherited and numerically wrong for the
	// segment. WAV sources re-encode regardless.
	CopyModeStreamCopy = "streamcopy"
)

// OnExists policies for outputs that already exist.
const (
	OnExistsFail      = "fail"
	OnExistsOverwrite = "overwrite"
	OnExistsSkip      = "skip"
)

// Settings holds all configuration options.
type Settings struct {
	// Split behavior
	Tagging     bool   `json:"tagging"`
	CopyMode    string `json:"copy_mode"`
	OnExists    string `json:"on_exists"`
	Concurrency int    `json:"concurrency"`

	// Playlist generation
	CreatePlaylist bool   `json:"create_playlist"`
	PlaylistFormat string `json:"playlist_format"` // m3u, pls, wpl, zpl
	M3UExtended    bool   `json:"m3u_extended"`

	// Cover art embedding
	EmbedCoverArt   bool `json:"embed_cover_art"`
	CoverArtMaxSize int  `json:"cover_art_max_size"`

	// External tools
	FFmpegPath  string `json:"ffmpeg_path"`
	FFprobePath string `json:"ffprobe_path"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Tagging:     true,
		CopyMode:    CopyModeReencode,
		OnExists:    OnExistsFail,
		Concurrency: 4,

		CreatePlaylist: false,
		PlaylistFormat: "m3u",
		M3UExtended:    true,

		EmbedCoverArt:   false,
		CoverArtMaxSize: 1000,
	}
}

// Load reads settings from a JSON file. A missing file yields defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Save writes settings to a JSON file, creating parent directories.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks enumerated options and ranges.
func (s *Settings) Validate() error {
	switch s.CopyMode {
	case CopyModeReencode, CopyModeStreamCopy:
	default:
		return fmt.Errorf("invalid copy_mode %q (want %s or %s)", s.CopyMode, CopyModeReencode, CopyModeStreamCopy)
	}
	switch s.OnExists {
	case OnExistsFail, OnExistsOverwrite, OnExistsSkip:
	default:
		return fmt.Errorf("invalid on_exists %q (want %s, %s or %s)", s.OnExists, OnExistsFail, OnExistsOverwrite, OnExistsSkip)
	}
	if s.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", s.Concurrency)
	}
	return nil
}
