package audio

import (
	"strings"
	"testing"
)

func testEntries() []Entry {
	return []Entry{
		{Path: "/rips/01-01 - One.flac", Title: "One", Artist: "The Band", Duration: 273.16},
		{Path: "/rips/01-02 - Two.flac", Title: "Two", Artist: "The Band", Duration: 268.8},
	}
}

func TestPlaylistCreator_M3U(t *testing.T) {
	content := NewPlaylistCreator(FormatM3U, false).Create("The Album", testEntries())

	if strings.Contains(content, "#EXTM3U") {
		t.Error("plain M3U must not contain #EXTM3U")
	}
	if !strings.Contains(content, "01-01 - One.flac") {
		t.Error("M3U should list track filenames")
	}
	if strings.Contains(content, "/rips/") {
		t.Error("M3U entries must be bare filenames, not absolute paths")
	}
}

func TestPlaylistCreator_M3UExtended(t *testing.T) {
	content := NewPlaylistCreator(FormatM3U, true).Create("The Album", testEntries())

	if !strings.HasPrefix(content, "#EXTM3U") {
		t.Error("extended M3U should start with #EXTM3U")
	}
	if !strings.Contains(content, "#EXTINF:273,The Band - One") {
		t.Errorf("extended M3U missing EXTINF line:\n%s", content)
	}
}

func TestPlaylistCreator_PLS(t *testing.T) {
	content := NewPlaylistCreator(FormatPLS, false).Create("The Album", testEntries())

	if !strings.HasPrefix(content, "[playlist]") {
		t.Error("PLS should start with [playlist]")
	}
	if !strings.Contains(content, "File1=01-01 - One.flac") {
		t.Error("PLS should contain File1 entry")
	}
	if !strings.Contains(content, "NumberOfEntries=2") {
		t.Error("PLS should count entries")
	}
}

func TestPlaylistCreator_XMLFormats(t *testing.T) {
	entries := []Entry{{Path: "01-01 - Rock & Roll.flac", Title: "Rock & Roll", Artist: "A<B", Duration: 100}}

	wpl := NewPlaylistCreator(FormatWPL, false).Create("Album <1971>", entries)
	if !strings.Contains(wpl, "<?wpl") {
		t.Error("WPL should contain the wpl declaration")
	}
	if !strings.Contains(wpl, "Rock &amp; Roll") {
		t.Error("WPL should escape ampersands")
	}
	if strings.Contains(wpl, "<1971>") {
		t.Error("WPL should escape angle brackets in the title")
	}

	zpl := NewPlaylistCreator(FormatZPL, false).Create("Album", entries)
	if !strings.Contains(zpl, "<?zpl") {
		t.Error("ZPL should contain the zpl declaration")
	}
	if !strings.Contains(zpl, `duration="100000"`) {
		t.Error("ZPL durations are in milliseconds")
	}
	if !strings.Contains(zpl, "trackArtist=\"A&lt;B\"") {
		t.Error("ZPL should escape artist metadata")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want PlaylistFormat
	}{
		{"m3u", FormatM3U},
		{"PLS", FormatPLS},
		{"wpl", FormatWPL},
		{"zpl", FormatZPL},
		{"bogus", FormatM3U},
		{"", FormatM3U},
	}
	for _, tt := range tests {
		if got := ParseFormat(tt.in); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPlaylistFormat_Extension(t *testing.T) {
	tests := []struct {
		format PlaylistFormat
		want   string
	}{
		{FormatM3U, ".m3u"},
		{FormatPLS, ".pls"},
		{FormatWPL, ".wpl"},
		{FormatZPL, ".zpl"},
	}
	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Extension() = %q, want %q", got, tt.want)
		}
	}
}
