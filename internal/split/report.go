package split

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"splat/internal/model"
)

// ErrOutputExists marks a job refused because its output file already
// exists and the on_exists policy is "fail". It is a policy refusal, not a
// transcode failure; detect it with errors.Is.
var ErrOutputExists = errors.New("output already exists")

// TranscodeError is a failed extraction: the output file does not exist.
type TranscodeError struct {
	Path  string
	Cause error
}

func (e *TranscodeError) Error() string {
	return fmt.Sprintf("transcode failed: %v", e.Cause)
}

func (e *TranscodeError) Unwrap() error { return e.Cause }

// TagError is a failed tag write on an otherwise intact output file.
type TagError struct {
	Path  string
	Cause error
}

func (e *TagError) Error() string {
	return fmt.Sprintf("tag write failed: %v", e.Cause)
}

func (e *TagError) Unwrap() error { return e.Cause }

// Result is the outcome of one track job.
type Result struct {
	Job *model.SplitJob

	// Skipped means the output already existed and on_exists is "skip".
	Skipped bool

	// Err is a transcode failure: the output file does not exist.
	Err error

	// TagErr means the audio was written but its tags were not. The file
	// is playable; only the metadata is missing.
	TagErr error
}

// Report aggregates the results of a run, in sheet order.
type Report struct {
	Results []Result
	Elapsed time.Duration
}

// Written counts jobs that produced an output file.
func (r *Report) Written() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil && !res.Skipped {
			n++
		}
	}
	return n
}

// Skipped counts jobs skipped because their output already existed.
func (r *Report) Skipped() int {
	n := 0
	for _, res := range r.Results {
		if res.Skipped {
			n++
		}
	}
	return n
}

// Failed returns the results whose transcode failed, in sheet order.
func (r *Report) Failed() []Result {
	var failed []Result
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// Ok reports whether every job produced its output (or was skipped) and
// every written file carries its tags.
func (r *Report) Ok() bool {
	for _, res := range r.Results {
		if res.Err != nil || res.TagErr != nil {
			return false
		}
	}
	return true
}

// Summary renders a one-line run summary.
func (r *Report) Summary() string {
	s := fmt.Sprintf("%d of %d tracks written in %s", r.Written(), len(r.Results), r.Elapsed.Round(time.Millisecond))
	if skipped := r.Skipped(); skipped > 0 {
		s += fmt.Sprintf(", %d skipped", skipped)
	}
	if failed := len(r.Failed()); failed > 0 {
		s += fmt.Sprintf(", %d failed", failed)
	}
	return s
}

// Err returns nil when the run succeeded, otherwise an error naming every
// failed output.
func (r *Report) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	msg := fmt.Sprintf("%d track(s) failed:", len(failed))
	for _, res := range failed {
		msg += fmt.Sprintf("\n  %s: %v", filepath.Base(res.Job.OutputPath), res.Err)
	}
	return fmt.Errorf("%s", msg)
}
