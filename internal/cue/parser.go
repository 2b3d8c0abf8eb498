package cue

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"splat/internal/model"
)

// ParseError describes a malformed sheet. Line is 1-based; 0 means the
// failure concerns the sheet as a whole rather than a single line.
//
// A ParseError is fatal: nothing downstream of the parser can be trusted,
// so no partial sheet is ever returned alongside one.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return "cue: " + e.Msg
	}
	return fmt.Sprintf("cue: line %d: %s", e.Line, e.Msg)
}

// Parser converts decoded sheet text into a model.CueSheet.
//
// Dir is the directory FILE paths are resolved against (the sheet's own
// directory). It travels with the parser instead of any process-wide state
// so two sheets in different directories can be parsed concurrently.
type Parser struct {
	dir string
}

// NewParser creates a Parser resolving FILE paths against dir.
func NewParser(dir string) *Parser {
	return &Parser{dir: dir}
}

// Load reads, decodes and parses the sheet at path, then verifies every
// referenced audio file exists next to it.
//
// The text is decoded as UTF-8, falling back to Windows-1252 for sheets
// produced by older Windows rippers.
func Load(path string) (*model.CueSheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}

	sheet, err := NewParser(filepath.Dir(path)).Parse(decodeText(data))
	if err != nil {
		return nil, err
	}

	for _, f := range sheet.Files {
		if _, err := os.Stat(f.Path); err != nil {
			return nil, &ParseError{Msg: fmt.Sprintf("referenced audio file missing: %s", f.Path)}
		}
	}
	return sheet, nil
}

// Parse converts sheet text into a CueSheet or fails with a *ParseError.
// It performs no file system access.
func (p *Parser) Parse(text string) (*model.CueSheet, error) {
	sheet := &model.CueSheet{}
	var (
		curFile  *model.CueFile
		curTrack *model.CueTrack
	)
	// The zero Timecode is a valid start (00:00:00), so presence of
	// INDEX 01 is tracked separately.
	hasStart := make(map[*model.CueTrack]bool)

	for num, raw := range strings.Split(text, "\n") {
		d := classify(raw, num+1)

		switch d.kind {
		case dirUnknown:
			// Forward compatibility: skip anything unrecognized.

		case dirRem:
			key, value, _ := strings.Cut(d.rest, " ")
			switch strings.ToUpper(key) {
			case "GENRE":
				if sheet.Genre == "" {
					sheet.Genre = quotedArg(strings.TrimSpace(value))
				}
			case "DATE":
				if sheet.Date == "" {
					sheet.Date = quotedArg(strings.TrimSpace(value))
				}
			}

		case dirFile:
			path, format := fileArg(d.rest)
			if path == "" {
				return nil, &ParseError{Line: d.line, Msg: "malformed FILE entry"}
			}
			curFile = &model.CueFile{
				Path:   filepath.Join(p.dir, filepath.FromSlash(path)),
				Format: format,
			}
			sheet.Files = append(sheet.Files, curFile)
			curTrack = nil

		case dirTrack:
			if curFile == nil {
				return nil, &ParseError{Line: d.line, Msg: "TRACK before FILE"}
			}
			fields := strings.Fields(d.rest)
			if len(fields) < 1 {
				return nil, &ParseError{Line: d.line, Msg: "malformed TRACK entry"}
			}
			number, err := strconv.Atoi(fields[0])
			if err != nil || number < 1 {
				return nil, &ParseError{Line: d.line, Msg: fmt.Sprintf("invalid TRACK number %q", fields[0])}
			}
			curTrack = &model.CueTrack{Number: number}
			curFile.Tracks = append(curFile.Tracks, curTrack)

		case dirTitle:
			title := quotedArg(d.rest)
			if curTrack != nil {
				curTrack.Title = title
			} else if sheet.Title == "" {
				sheet.Title = title
			}

		case dirPerformer:
			performer := quotedArg(d.rest)
			if curTrack != nil {
				curTrack.Performer = performer
			} else if sheet.Performer == "" {
				sheet.Performer = performer
			}

		case dirIndex:
			if curTrack == nil {
				return nil, &ParseError{Line: d.line, Msg: "INDEX before TRACK"}
			}
			fields := strings.Fields(d.rest)
			if len(fields) < 2 {
				return nil, &ParseError{Line: d.line, Msg: "malformed INDEX entry"}
			}
			indexNum, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, &ParseError{Line: d.line, Msg: fmt.Sprintf("invalid INDEX number %q", fields[0])}
			}
			tc, perr := parseTimecode(fields[1], d.line)
			if perr != nil {
				return nil, perr
			}
			switch indexNum {
			case 0:
				pregap := tc
				curTrack.PreGap = &pregap
			case 1:
				if hasStart[curTrack] {
					return nil, &ParseError{Line: d.line, Msg: "duplicate INDEX 01"}
				}
				curTrack.Start = tc
				hasStart[curTrack] = true
			default:
				// Higher indices are legal in CUE but irrelevant here.
			}
		}
	}

	if err := validate(sheet, hasStart); err != nil {
		return nil, err
	}
	return sheet, nil
}

// parseTimecode parses mm:ss:ff with range validation.
func parseTimecode(s string, line int) (model.Timecode, *ParseError) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return model.Timecode{}, &ParseError{Line: line, Msg: fmt.Sprintf("invalid timecode %q", s)}
	}
	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return model.Timecode{}, &ParseError{Line: line, Msg: fmt.Sprintf("invalid timecode %q", s)}
		}
		nums[i] = n
	}
	tc, err := model.NewTimecode(nums[0], nums[1], nums[2])
	if err != nil {
		return model.Timecode{}, &ParseError{Line: line, Msg: err.Error()}
	}
	return tc, nil
}

// validate enforces the sheet invariants after the line pass: at least one
// FILE, at least one TRACK per file, TITLE and INDEX 01 on every track,
// track numbers unique within their file, and start times monotonically
// non-decreasing within each file.
func validate(sheet *model.CueSheet, hasStart map[*model.CueTrack]bool) *ParseError {
	if len(sheet.Files) == 0 {
		return &ParseError{Msg: "no FILE entries found"}
	}

	for _, f := range sheet.Files {
		if len(f.Tracks) == 0 {
			return &ParseError{Msg: fmt.Sprintf("no TRACK entries for file %s", filepath.Base(f.Path))}
		}
		numbers := make(map[int]bool)
		var prev *model.CueTrack
		for _, tr := range f.Tracks {
			if tr.Title == "" {
				return &ParseError{Msg: fmt.Sprintf("missing TITLE for track %d", tr.Number)}
			}
			if !hasStart[tr] {
				return &ParseError{Msg: fmt.Sprintf("missing INDEX 01 for track %d", tr.Number)}
			}
			if numbers[tr.Number] {
				return &ParseError{Msg: fmt.Sprintf("duplicate track number %d in file %s", tr.Number, filepath.Base(f.Path))}
			}
			numbers[tr.Number] = true
			if prev != nil && tr.Start.Before(prev.Start) {
				return &ParseError{Msg: fmt.Sprintf("track %d starts before track %d", tr.Number, prev.Number)}
			}
			prev = tr
		}
	}
	return nil
}
