package split

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"splat/internal/audio"
	"splat/internal/config"
	"splat/internal/cue"
	"splat/internal/ffmpeg"
	ioutils "splat/internal/io"
	"splat/internal/model"
	"splat/internal/plan"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a split progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Transcoder probes sources and extracts segments. *ffmpeg.Client is the
// production implementation.
type Transcoder interface {
	Available() error
	Probe(ctx context.Context, path string) (*ffmpeg.StreamInfo, error)
	Extract(ctx context.Context, spec ffmpeg.ExtractSpec) error
}

// Tagger writes tags and artwork into finished outputs. *audio.Tagger is
// the production implementation.
type Tagger interface {
	Tag(path string, tags map[string]string, artwork []byte) error
}

// Manager coordinates one split run.
type Manager struct {
	settings     *config.Settings
	transcoder   Transcoder
	tagger       Tagger
	playlist     *audio.PlaylistCreator
	imageService *ioutils.ImageService

	sheet   *model.CueSheet
	dir     string
	cuePath string
	jobs    []*model.SplitJob
	sources map[string]*ffmpeg.StreamInfo
	artwork []byte

	dryRun        bool
	attemptedJobs int32
	totalJobs     int32

	onProgress func(ProgressEvent)
}

// NewManager creates a Manager.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		settings:     settings,
		transcoder:   ffmpeg.NewClient(settings.FFmpegPath, settings.FFprobePath),
		tagger:       audio.NewTagger(),
		playlist:     audio.NewPlaylistCreator(audio.ParseFormat(settings.PlaylistFormat), settings.M3UExtended),
		imageService: ioutils.NewImageService(),
		sources:      make(map[string]*ffmpeg.StreamInfo),
		onProgress:   onProgress,
	}
}

// SetDryRun makes Run report what it would do without touching any file.
func (m *Manager) SetDryRun(on bool) {
	m.dryRun = on
}

// Initialize loads the sheet at cuePath, plans the track jobs and probes
// every referenced source file. After it returns nil the run is fully
// determined: Progress reports 0 of the final job total.
func (m *Manager) Initialize(ctx context.Context, cuePath string) error {
	if err := m.transcoder.Available(); err != nil {
		return err
	}

	sheet, err := cue.Load(cuePath)
	if err != nil {
		return err
	}
	m.sheet = sheet
	m.cuePath = cuePath
	m.dir = filepath.Dir(cuePath)

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Loaded sheet: %s (%d files, %d tracks)", sheetName(sheet, cuePath), len(sheet.Files), sheet.TrackCount()),
		Level:   LevelInfo,
	})

	m.jobs = plan.Jobs(sheet, m.dir, m.settings.Tagging)
	m.totalJobs = int32(len(m.jobs))

	for _, f := range sheet.Files {
		if err := m.probeSource(ctx, f); err != nil {
			return err
		}
	}

	if m.settings.Tagging && m.settings.EmbedCoverArt {
		m.loadCoverArt(ctx)
	}
	return nil
}

// Run executes every planned job and returns the aggregated report. It
// never returns early over individual job failures; only context
// cancellation stops the run before all jobs have been attempted.
func (m *Manager) Run(ctx context.Context) *Report {
	start := time.Now()
	results := make([]Result, len(m.jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.settings.Concurrency)

	for i, job := range m.jobs {
		i, job := i, job
		g.Go(func() error {
			results[i] = m.runJob(gctx, job)
			atomic.AddInt32(&m.attemptedJobs, 1)
			if errors.Is(results[i].Err, context.Canceled) {
				return results[i].Err
			}
			return nil
		})
	}
	g.Wait()

	report := &Report{Results: results, Elapsed: time.Since(start)}

	if ctx.Err() == nil && !m.dryRun && m.settings.CreatePlaylist {
		m.writePlaylist(report)
	}

	if !m.dryRun && report.Written() > 0 && len(m.jobs) > 0 && len(m.jobs[0].Tags) > 0 {
		keys := make([]string, 0, len(m.jobs[0].Tags))
		for key := range m.jobs[0].Tags {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		m.progress(ProgressEvent{Message: "Tags applied: " + strings.Join(keys, ", "), Level: LevelVerbose})
	}

	level := LevelSuccess
	if !report.Ok() {
		level = LevelWarning
	}
	m.progress(ProgressEvent{Message: report.Summary(), Level: level})
	return report
}

// Progress returns how many jobs have been attempted out of the planned
// total. Attempted counts every decided outcome, failures and skips
// included; successes alone are counted by Report.Written.
func (m *Manager) Progress() (attempted, total int32) {
	return atomic.LoadInt32(&m.attemptedJobs), m.totalJobs
}

// TrackNames returns a display line per planned job, in sheet order.
func (m *Manager) TrackNames() []string {
	names := make([]string, len(m.jobs))
	for i, job := range m.jobs {
		names[i] = filepath.Base(job.OutputPath)
	}
	return names
}

func (m *Manager) probeSource(ctx context.Context, f *model.CueFile) error {
	info, err := m.transcoder.Probe(ctx, f.Path)
	if err != nil {
		return err
	}
	m.sources[f.Path] = info

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("%s: %s, %d Hz, %d channels", filepath.Base(f.Path), info.CodecName, info.SampleRate, info.Channels),
		Level:   LevelVerbose,
	})

	if m.settings.CopyMode == config.CopyModeStreamCopy && !info.IsFLAC() {
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("%s is not FLAC, re-encoding instead of stream copy", filepath.Base(f.Path)),
			Level:   LevelWarning,
		})
	}
	if info.DurationSeconds > 0 {
		for _, tr := range f.Tracks {
			if tr.Start.Seconds64() >= info.DurationSeconds {
				m.progress(ProgressEvent{
					Message: fmt.Sprintf("track %d starts at %s, beyond the end of %s", tr.Number, tr.Start, filepath.Base(f.Path)),
					Level:   LevelWarning,
				})
			}
		}
	}
	return nil
}

// loadCoverArt looks for a sleeve scan next to the sheet and prepares it
// for embedding. Failures only cost the artwork, never the run.
func (m *Manager) loadCoverArt(ctx context.Context) {
	path, ok := ioutils.FindCoverArt(m.dir)
	if !ok {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error reading cover art %s: %v", filepath.Base(path), err), Level: LevelWarning})
		return
	}
	resized, err := m.imageService.ResizeImage(ctx, data, m.settings.CoverArtMaxSize, m.settings.CoverArtMaxSize)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error processing cover art %s: %v", filepath.Base(path), err), Level: LevelWarning})
		return
	}
	m.artwork = resized
	m.progress(ProgressEvent{Message: fmt.Sprintf("Embedding cover art from %s", filepath.Base(path)), Level: LevelInfo})
}

func (m *Manager) runJob(ctx context.Context, job *model.SplitJob) Result {
	res := Result{Job: job}
	name := filepath.Base(job.OutputPath)

	if _, err := os.Stat(job.OutputPath); err == nil {
		switch m.settings.OnExists {
		case config.OnExistsSkip:
			m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping existing: %s", name), Level: LevelVerbose})
			res.Skipped = true
			return res
		case config.OnExistsOverwrite:
			// Fall through; ffmpeg runs with -y.
		default:
			res.Err = ErrOutputExists
			m.progress(ProgressEvent{Message: fmt.Sprintf("%s: %v", name, res.Err), Level: LevelError})
			return res
		}
	}

	mode := m.modeFor(job.SourcePath)
	if m.dryRun {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Would write %s (%s)", name, modeName(mode)), Level: LevelInfo})
		return res
	}

	err := m.transcoder.Extract(ctx, ffmpeg.ExtractSpec{
		Source: job.SourcePath,
		Output: job.OutputPath,
		Start:  job.Start,
		End:    job.End,
		Mode:   mode,
	})
	if err != nil {
		res.Err = &TranscodeError{Path: job.OutputPath, Cause: err}
		if !errors.Is(err, context.Canceled) {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error writing %s: %v", name, err), Level: LevelError})
		}
		return res
	}

	if len(job.Tags) > 0 || m.artwork != nil {
		if err := m.tagger.Tag(job.OutputPath, job.Tags, m.artwork); err != nil {
			res.TagErr = &TagError{Path: job.OutputPath, Cause: err}
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error tagging %s: %v", name, err), Level: LevelWarning})
			return res
		}
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Wrote %s", name), Level: LevelVerbose})
	return res
}

// modeFor decides stream copy versus re-encode for a source. Stream copy
// needs both the setting and a native FLAC stream; everything else, WAV
// included, re-encodes.
func (m *Manager) modeFor(sourcePath string) ffmpeg.Mode {
	if m.settings.CopyMode != config.CopyModeStreamCopy {
		return ffmpeg.ModeReencode
	}
	info := m.sources[sourcePath]
	if info == nil || !info.IsFLAC() {
		return ffmpeg.ModeReencode
	}
	return ffmpeg.ModeStreamCopy
}

func (m *Manager) writePlaylist(report *Report) {
	var entries []audio.Entry
	for _, res := range report.Results {
		if res.Err != nil {
			continue
		}
		job := res.Job
		entry := audio.Entry{
			Path:   job.OutputPath,
			Title:  job.Tags["TITLE"],
			Artist: job.Tags["ARTIST"],
		}
		if job.End != nil {
			entry.Duration = job.End.Seconds64() - job.Start.Seconds64()
		} else if info := m.sources[job.SourcePath]; info != nil && info.DurationSeconds > 0 {
			entry.Duration = info.DurationSeconds - job.Start.Seconds64()
		}
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return
	}

	format := audio.ParseFormat(m.settings.PlaylistFormat)
	path := strings.TrimSuffix(m.cuePath, filepath.Ext(m.cuePath)) + format.Extension()
	content := m.playlist.Create(sheetName(m.sheet, m.cuePath), entries)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelWarning})
		return
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist %s", filepath.Base(path)), Level: LevelSuccess})
}

func modeName(mode ffmpeg.Mode) string {
	if mode == ffmpeg.ModeStreamCopy {
		return "stream copy"
	}
	return "re-encode"
}

// sheetName is the album title, falling back to the sheet's filename.
func sheetName(sheet *model.CueSheet, cuePath string) string {
	if sheet.Title != "" {
		return sheet.Title
	}
	return strings.TrimSuffix(filepath.Base(cuePath), filepath.Ext(cuePath))
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
