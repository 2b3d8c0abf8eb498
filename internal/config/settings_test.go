package config

import (
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defaults := DefaultSettings()
	if *settings != *defaults {
		t.Errorf("missing file should yield defaults, got %+v", settings)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.json")

	want := DefaultSettings()
	want.CopyMode = CopyModeStreamCopy
	want.OnExists = OnExistsSkip
	want.Concurrency = 8
	want.CreatePlaylist = true
	want.PlaylistFormat = "pls"

	if err := want.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *want {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
		wantOK bool
	}{
		{"defaults", func(s *Settings) {}, true},
		{"streamcopy", func(s *Settings) { s.CopyMode = CopyModeStreamCopy }, true},
		{"bad copy mode", func(s *Settings) { s.CopyMode = "fast" }, false},
		{"bad on_exists", func(s *Settings) { s.OnExists = "replace" }, false},
		{"zero concurrency", func(s *Settings) { s.Concurrency = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultSettings()
			tt.mutate(settings)
			err := settings.Validate()
			if (err == nil) != tt.wantOK {
				t.Errorf("Validate() = %v, wantOK %v", err, tt.wantOK)
			}
		})
	}
}
