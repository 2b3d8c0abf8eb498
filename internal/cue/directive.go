package cue

import (
	"strings"
)

// directiveKind identifies the CUE directives the parser acts on.
type directiveKind int

const (
	// dirUnknown marks a line the parser does not recognize. Unknown
	// directives are structurally skipped, never an error.
	dirUnknown directiveKind = iota
	dirRem
	dirFile
	dirTrack
	dirTitle
	dirPerformer
	dirIndex
)

// directive is one classified sheet line.
type directive struct {
	kind directiveKind
	line int
	// rest is the text after the keyword, trimmed.
	rest string
}

// classify maps a raw sheet line to a directive. Leading/trailing whitespace
// and a trailing CR (from CRLF sheets) are ignored. Keyword matching is
// case-insensitive.
func classify(raw string, num int) directive {
	line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
	keyword, rest, _ := strings.Cut(line, " ")

	kind := dirUnknown
	switch strings.ToUpper(keyword) {
	case "REM":
		kind = dirRem
	case "FILE":
		kind = dirFile
	case "TRACK":
		kind = dirTrack
	case "TITLE":
		kind = dirTitle
	case "PERFORMER":
		kind = dirPerformer
	case "INDEX":
		kind = dirIndex
	}

	return directive{kind: kind, line: num, rest: strings.TrimSpace(rest)}
}

// quotedArg extracts a possibly quoted argument that extends to the end of
// the line. The first and last double quote are the delimiters, so embedded
// apostrophes and quotes are preserved verbatim. Unquoted input is returned
// as-is.
func quotedArg(rest string) string {
	if len(rest) >= 2 && rest[0] == '"' {
		if last := strings.LastIndexByte(rest, '"'); last > 0 {
			return rest[1:last]
		}
	}
	return rest
}

// fileArg splits a FILE directive's argument into the path and the declared
// type token. The path may be quoted (first/last quote delimiters) or a bare
// word; the type is whatever follows it.
func fileArg(rest string) (path, format string) {
	if len(rest) >= 2 && rest[0] == '"' {
		if last := strings.LastIndexByte(rest[1:], '"'); last >= 0 {
			return rest[1 : 1+last], strings.TrimSpace(rest[last+2:])
		}
	}
	path, format, _ = strings.Cut(rest, " ")
	return path, strings.TrimSpace(format)
}
