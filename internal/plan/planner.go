package plan

import (
	"path/filepath"
	"strconv"

	"splat/internal/model"
)

// Jobs derives the ordered SplitJob sequence for a sheet.
//
// outputDir is where track files are written (the sheet directory, normally).
// When tagging is false the jobs carry empty tag sets and outputs keep only
// container defaults.
//
// Tag values are deterministic functions of the sheet alone, so concurrent
// execution order can never change what ends up in a file.
func Jobs(sheet *model.CueSheet, outputDir string, tagging bool) []*model.SplitJob {
	jobs := make([]*model.SplitJob, 0, sheet.TrackCount())

	seq := 0
	for i, file := range sheet.Files {
		for j, track := range file.Tracks {
			seq++
			job := &model.SplitJob{
				Sequence:   seq,
				SourcePath: file.Path,
				Start:      track.Start,
				OutputPath: filepath.Join(outputDir, model.OutputName(i+1, track)),
			}
			// End at the next track of the same file; the file's last
			// track always runs to end-of-stream.
			if j+1 < len(file.Tracks) {
				end := file.Tracks[j+1].Start
				job.End = &end
			}
			if tagging {
				job.Tags = tagSet(sheet, track)
			}
			jobs = append(jobs, job)
		}
	}
	return jobs
}

// tagSet builds the Vorbis comment set for one track. TRACKNUMBER is the
// track's declared number, not its global sequence, matching how per-side
// rips are usually tagged.
func tagSet(sheet *model.CueSheet, track *model.CueTrack) map[string]string {
	tags := map[string]string{
		"TRACKNUMBER": strconv.Itoa(track.Number),
		"TITLE":       track.Title,
	}
	if sheet.Title != "" {
		tags["ALBUM"] = sheet.Title
	}
	if performer := track.EffectivePerformer(sheet); performer != "" {
		tags["ARTIST"] = performer
		tags["ALBUMARTIST"] = performer
	}
	if sheet.Genre != "" {
		tags["GENRE"] = sheet.Genre
	}
	if sheet.Date != "" {
		tags["DATE"] = sheet.Date
	}
	return tags
}
