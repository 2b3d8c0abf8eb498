// Package config provides configuration management for splat.
//
// Settings are stored as JSON. Loading a missing file returns defaults, so
// a config file is never required:
//
//	settings, err := config.Load("/home/user/.config/splat/config.json")
//
// # Options
//
//   - tagging: write CUE-derived tags into the outputs (default on)
//   - copy_mode: "reencode" (correct STREAMINFO, default) or "streamcopy"
//     (bit-exact FLAC frames, stale STREAMINFO)
//   - on_exists: "fail" (default), "overwrite" or "skip" when an output
//     file already exists
//   - concurrency: how many transcodes run in parallel (≥ 1)
//   - create_playlist, playlist_format, m3u_extended: playlist generation
//   - embed_cover_art, cover_art_max_size: sleeve-scan embedding
//   - ffmpeg_path, ffprobe_path: external binaries (default: from PATH)
package config
