// Package plan turns a parsed CueSheet into the ordered list of split jobs.
//
// For each FILE entry the planner walks the tracks in order; a track's end
// boundary is the next track's INDEX 01 within the same file, and the last
// track of a file runs to end-of-stream. Boundaries never cross FILE
// entries.
//
// The planner is a pure transform: it performs no I/O and never probes the
// audio. Sample-rate-dependent conversions happen downstream, where the
// transcoder has probed the sources.
//
//	jobs := plan.Jobs(sheet, "/rips/album", true)
//	for _, job := range jobs {
//	    fmt.Println(job.OutputPath, job.Start, job.End)
//	}
package plan
