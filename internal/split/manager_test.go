package split

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"splat/internal/config"
	"splat/internal/ffmpeg"
)

const testSheet = `TITLE "Night Side"
PERFORMER "The Band"
FILE "side1.flac" WAVE
  TRACK 01 AUDIO
    TITLE "One"
    INDEX 01 00:00:00
  TRACK 02 AUDIO
    TITLE "Two"
    INDEX 01 04:33:12
`

type fakeTranscoder struct {
	mu    sync.Mutex
	info  *ffmpeg.StreamInfo
	fail  map[string]bool // output base names whose extraction fails
	specs []ffmpeg.ExtractSpec
}

func (f *fakeTranscoder) Available() error { return nil }

func (f *fakeTranscoder) Probe(ctx context.Context, path string) (*ffmpeg.StreamInfo, error) {
	return f.info, nil
}

func (f *fakeTranscoder) Extract(ctx context.Context, spec ffmpeg.ExtractSpec) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[filepath.Base(spec.Output)] {
		return errors.New("transcode blew up")
	}
	f.specs = append(f.specs, spec)
	return os.WriteFile(spec.Output, []byte("flac"), 0644)
}

type fakeTagger struct {
	mu     sync.Mutex
	tagged []string
}

func (f *fakeTagger) Tag(path string, tags map[string]string, artwork []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tagged = append(f.tagged, filepath.Base(path))
	return nil
}

func writeSheet(t *testing.T) (dir, cuePath string) {
	t.Helper()
	dir = t.TempDir()
	cuePath = filepath.Join(dir, "rip.cue")
	if err := os.WriteFile(cuePath, []byte(testSheet), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "side1.flac"), []byte("raw"), 0644); err != nil {
		t.Fatal(err)
	}
	return dir, cuePath
}

func newTestManager(t *testing.T, settings *config.Settings) (*Manager, *fakeTranscoder, *fakeTagger) {
	t.Helper()
	ft := &fakeTranscoder{
		info: &ffmpeg.StreamInfo{CodecName: "flac", SampleRate: 44100, Channels: 2, DurationSeconds: 600},
	}
	tg := &fakeTagger{}
	m := NewManager(settings, nil)
	m.transcoder = ft
	m.tagger = tg
	return m, ft, tg
}

func TestManager_Run(t *testing.T) {
	_, cuePath := writeSheet(t)
	m, ft, tg := newTestManager(t, config.DefaultSettings())

	if err := m.Initialize(context.Background(), cuePath); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	report := m.Run(context.Background())

	if !report.Ok() {
		t.Fatalf("run failed: %v", report.Err())
	}
	if report.Written() != 2 {
		t.Errorf("Written() = %d, want 2", report.Written())
	}
	if len(ft.specs) != 2 {
		t.Fatalf("extracted %d segments, want 2", len(ft.specs))
	}
	for _, spec := range ft.specs {
		if spec.Mode != ffmpeg.ModeReencode {
			t.Errorf("mode = %v, want re-encode by default", spec.Mode)
		}
	}
	if len(tg.tagged) != 2 {
		t.Errorf("tagged %d files, want 2", len(tg.tagged))
	}
	done, total := m.Progress()
	if done != 2 || total != 2 {
		t.Errorf("Progress() = %d/%d, want 2/2", done, total)
	}
}

func TestManager_Run_FailureIsolation(t *testing.T) {
	_, cuePath := writeSheet(t)
	m, ft, _ := newTestManager(t, config.DefaultSettings())
	ft.fail = map[string]bool{"01-01 - One.flac": true}

	if err := m.Initialize(context.Background(), cuePath); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	report := m.Run(context.Background())

	failed := report.Failed()
	if len(failed) != 1 {
		t.Fatalf("Failed() has %d entries, want 1", len(failed))
	}
	if got := filepath.Base(failed[0].Job.OutputPath); got != "01-01 - One.flac" {
		t.Errorf("failed job = %s", got)
	}
	if report.Written() != 1 {
		t.Errorf("Written() = %d, sibling job should still complete", report.Written())
	}
	if report.Err() == nil {
		t.Error("Err() should be non-nil when a job failed")
	}

	// Progress counts attempted jobs, failures included.
	attempted, total := m.Progress()
	if attempted != 2 || total != 2 {
		t.Errorf("Progress() = %d/%d, want 2/2 attempted", attempted, total)
	}
}

// blockingTranscoder parks every extraction until its context is canceled,
// simulating a long-running ffmpeg child that dies on cancellation.
type blockingTranscoder struct {
	fakeTranscoder
	started chan struct{}
}

func (b *blockingTranscoder) Extract(ctx context.Context, spec ffmpeg.ExtractSpec) error {
	select {
	case b.started <- struct{}{}:
	default:
	}
	<-ctx.Done()
	return ctx.Err()
}

func TestManager_Run_Cancellation(t *testing.T) {
	dir, cuePath := writeSheet(t)

	settings := config.DefaultSettings()
	settings.Concurrency = 1
	m, _, _ := newTestManager(t, settings)
	bt := &blockingTranscoder{started: make(chan struct{}, 1)}
	bt.info = &ffmpeg.StreamInfo{CodecName: "flac", SampleRate: 44100, Channels: 2, DurationSeconds: 600}
	m.transcoder = bt

	if err := m.Initialize(context.Background(), cuePath); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-bt.started
		cancel()
	}()
	report := m.Run(ctx)

	if len(report.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(report.Results))
	}
	for i, res := range report.Results {
		if res.Job == nil {
			t.Fatalf("result %d lost its job", i)
		}
		if !errors.Is(res.Err, context.Canceled) {
			t.Errorf("result %d error = %v, want context.Canceled", i, res.Err)
		}
	}
	if report.Err() == nil {
		t.Error("Err() should be non-nil after cancellation")
	}

	// No partial outputs may remain next to the sources.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if name := e.Name(); name != "rip.cue" && name != "side1.flac" {
			t.Errorf("unexpected leftover file %s", name)
		}
	}
}

func TestManager_OnExists(t *testing.T) {
	tests := []struct {
		policy      string
		wantWritten int
		wantSkipped int
		wantFailed  int
	}{
		{config.OnExistsFail, 1, 0, 1},
		{config.OnExistsSkip, 1, 1, 0},
		{config.OnExistsOverwrite, 2, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.policy, func(t *testing.T) {
			dir, cuePath := writeSheet(t)
			if err := os.WriteFile(filepath.Join(dir, "01-01 - One.flac"), []byte("old"), 0644); err != nil {
				t.Fatal(err)
			}

			settings := config.DefaultSettings()
			settings.OnExists = tt.policy
			m, _, _ := newTestManager(t, settings)

			if err := m.Initialize(context.Background(), cuePath); err != nil {
				t.Fatalf("Initialize: %v", err)
			}
			report := m.Run(context.Background())

			if got := report.Written(); got != tt.wantWritten {
				t.Errorf("Written() = %d, want %d", got, tt.wantWritten)
			}
			if got := report.Skipped(); got != tt.wantSkipped {
				t.Errorf("Skipped() = %d, want %d", got, tt.wantSkipped)
			}
			if got := len(report.Failed()); got != tt.wantFailed {
				t.Errorf("len(Failed()) = %d, want %d", got, tt.wantFailed)
			}

			// The fail policy reports a refusal, not a transcode failure.
			if tt.policy == config.OnExistsFail {
				if failed := report.Failed(); len(failed) == 1 && !errors.Is(failed[0].Err, ErrOutputExists) {
					t.Errorf("refusal error = %v, want ErrOutputExists", failed[0].Err)
				}
			}
		})
	}
}

func TestManager_StreamCopyNeedsFLAC(t *testing.T) {
	settings := config.DefaultSettings()
	settings.CopyMode = config.CopyModeStreamCopy

	_, cuePath := writeSheet(t)
	m, ft, _ := newTestManager(t, settings)
	if err := m.Initialize(context.Background(), cuePath); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	m.Run(context.Background())
	for _, spec := range ft.specs {
		if spec.Mode != ffmpeg.ModeStreamCopy {
			t.Errorf("FLAC source: mode = %v, want stream copy", spec.Mode)
		}
	}

	// WAV sources re-encode even under the streamcopy setting.
	_, cuePath = writeSheet(t)
	m, ft, _ = newTestManager(t, settings)
	ft.info = &ffmpeg.StreamInfo{CodecName: "pcm_s16le", SampleRate: 44100, Channels: 2, DurationSeconds: 600}
	if err := m.Initialize(context.Background(), cuePath); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	m.Run(context.Background())
	for _, spec := range ft.specs {
		if spec.Mode != ffmpeg.ModeReencode {
			t.Errorf("PCM source: mode = %v, want re-encode", spec.Mode)
		}
	}
}

func TestManager_DryRun(t *testing.T) {
	_, cuePath := writeSheet(t)
	m, ft, tg := newTestManager(t, config.DefaultSettings())
	m.SetDryRun(true)

	if err := m.Initialize(context.Background(), cuePath); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	report := m.Run(context.Background())

	if len(ft.specs) != 0 {
		t.Errorf("dry run extracted %d segments, want 0", len(ft.specs))
	}
	if len(tg.tagged) != 0 {
		t.Errorf("dry run tagged %d files, want 0", len(tg.tagged))
	}
	if !report.Ok() {
		t.Errorf("dry run should report Ok: %v", report.Err())
	}
}

func TestManager_Playlist(t *testing.T) {
	settings := config.DefaultSettings()
	settings.CreatePlaylist = true
	settings.PlaylistFormat = "m3u"

	dir, cuePath := writeSheet(t)
	m, _, _ := newTestManager(t, settings)
	if err := m.Initialize(context.Background(), cuePath); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	m.Run(context.Background())

	data, err := os.ReadFile(filepath.Join(dir, "rip.m3u"))
	if err != nil {
		t.Fatalf("playlist not written: %v", err)
	}
	content := string(data)
	for _, name := range []string{"01-01 - One.flac\n", "01-02 - Two.flac\n"} {
		if !strings.Contains(content, name) {
			t.Errorf("playlist missing %q:\n%s", name, content)
		}
	}
}
