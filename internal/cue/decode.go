package cue

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// decodeText decodes raw sheet bytes, preferring UTF-8 with a Windows-1252
// fallback. Many CUE sheets shipped with older rips were written by Windows
// tools in the platform code page; every Windows-1252 byte sequence decodes,
// so the fallback cannot fail, only mis-map truly exotic encodings.
func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}
