package audio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PlaylistFormat represents supported playlist file formats.
type PlaylistFormat int

const (
	// FormatM3U creates .m3u files (most compatible). Can be extended
	// with EXTINF lines carrying duration and title.
	FormatM3U PlaylistFormat = iota

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	FormatPLS

	// FormatWPL creates .wpl files (Windows Media Player, XML SMIL).
	FormatWPL

	// FormatZPL creates .zpl files (Zune/Groove Music, XML SMIL).
	FormatZPL
)

// ParseFormat maps a configuration string to a PlaylistFormat,
// defaulting to M3U.
func ParseFormat(s string) PlaylistFormat {
	switch strings.ToLower(s) {
	case "pls":
		return FormatPLS
	case "wpl":
		return FormatWPL
	case "zpl":
		return FormatZPL
	default:
		return FormatM3U
	}
}

// Extension returns the file extension for the format, including the dot.
func (pf PlaylistFormat) Extension() string {
	switch pf {
	case FormatPLS:
		return ".pls"
	case FormatWPL:
		return ".wpl"
	case FormatZPL:
		return ".zpl"
	default:
		return ".m3u"
	}
}

// Entry is one playlist line: a produced track file and its display
// metadata. Duration is in seconds; zero means unknown.
type Entry struct {
	Path     string
	Title    string
	Artist   string
	Duration float64
}

// PlaylistCreator generates playlist files over the split output.
//
// Entries reference tracks by bare filename, assuming the playlist sits in
// the same directory as the tracks (both are written next to the CUE).
type PlaylistCreator struct {
	format   PlaylistFormat
	extended bool // M3U only: include #EXTINF lines
}

// NewPlaylistCreator creates a PlaylistCreator. extended only affects M3U.
func NewPlaylistCreator(format PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{format: format, extended: extended}
}

// Create renders the playlist content for the given album title and entries.
func (p *PlaylistCreator) Create(title string, entries []Entry) string {
	switch p.format {
	case FormatPLS:
		return p.createPLS(entries)
	case FormatWPL:
		return p.createWPL(title, entries)
	case FormatZPL:
		return p.createZPL(title, entries)
	default:
		return p.createM3U(entries)
	}
}

func (p *PlaylistCreator) createM3U(entries []Entry) string {
	var sb strings.Builder
	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}
	for _, e := range entries {
		if p.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:%d,%s - %s\n", int(e.Duration), e.Artist, e.Title))
		}
		sb.WriteString(filepath.Base(e.Path) + "\n")
	}
	return sb.String()
}

func (p *PlaylistCreator) createPLS(entries []Entry) string {
	var sb strings.Builder
	sb.WriteString("[playlist]\n")
	for i, e := range entries {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, filepath.Base(e.Path)))
		sb.WriteString(fmt.Sprintf("Title%d=%s\n", idx, e.Title))
		sb.WriteString(fmt.Sprintf("Length%d=%d\n", idx, int(e.Duration)))
	}
	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(entries)))
	sb.WriteString("Version=2\n")
	return sb.String()
}

func (p *PlaylistCreator) createWPL(title string, entries []Entry) string {
	var sb strings.Builder
	sb.WriteString("<?wpl version=\"1.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(title)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\"/>\n", escapeXML(filepath.Base(e.Path))))
	}
	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")
	return sb.String()
}

func (p *PlaylistCreator) createZPL(title string, entries []Entry) string {
	var sb strings.Builder
	sb.WriteString("<?zpl version=\"2.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(title)))
	sb.WriteString("    <meta name=\"Generator\" content=\"splat\"/>\n")
	sb.WriteString(fmt.Sprintf("    <meta name=\"ItemCount\" content=\"%d\"/>\n", len(entries)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\" albumTitle=\"%s\" trackTitle=\"%s\" trackArtist=\"%s\" duration=\"%d\"/>\n",
			escapeXML(filepath.Base(e.Path)),
			escapeXML(title),
			escapeXML(e.Title),
			escapeXML(e.Artist),
			int(e.Duration*1000)))
	}
	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")
	return sb.String()
}

// escapeXML escapes the special XML characters in a string.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
