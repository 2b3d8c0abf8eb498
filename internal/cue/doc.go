// Package cue parses CUE sheets into the splat data model.
//
// The parser is line-oriented: each line is classified into a directive
// (REM, PERFORMER, TITLE, FILE, TRACK, INDEX) or an explicit unrecognized
// variant that is skipped, so sheets carrying extra REM fields or vendor
// directives parse cleanly. CRLF and LF sheets parse identically.
//
// # Quoted arguments
//
// Quoted strings are delimited by the first and last double quote on the
// line, never by naive splitting, so embedded apostrophes and quotes
// survive:
//
//	TITLE "Tom's Song"            → Tom's Song
//	TITLE "He said "Hello" today" → He said "Hello" today
//
// # Usage
//
//	sheet, err := cue.Load("/rips/album/album.cue")
//	var perr *cue.ParseError
//	if errors.As(err, &perr) {
//	    fmt.Printf("bad sheet at line %d: %s\n", perr.Line, perr.Msg)
//	}
//
// Load reads the sheet as UTF-8 with a Windows-1252 fallback, resolves FILE
// paths against the sheet directory, and verifies the referenced audio files
// exist. Parse works on already-decoded text and performs no file system
// access, which is what the tests use.
//
// A malformed sheet is fatal: Parse returns a *ParseError naming the line
// and no partial sheet.
package cue
