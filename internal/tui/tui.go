// Package tui provides a Bubble Tea terminal user interface for splat.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"splat/internal/config"
	"splat/internal/split"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	trackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateInitializing
	StateSplitting
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   split.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	tracks    []string
	report    *split.Report
	err       error

	// Run context
	ctx    context.Context
	cancel context.CancelFunc

	// Split manager reference
	manager *split.Manager

	// Split progress
	attemptedJobs int32
	totalJobs     int32

	// events carries manager progress into the Bubble Tea loop.
	events chan split.ProgressEvent

	// Options
	streamCopy bool
	playlist   bool
	verbose    bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel() Model {
	ti := textinput.New()
	ti.Placeholder = "/path/to/rip.cue"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  config.DefaultSettings(),
		logs:      make([]LogEntry, 0),
		events:    make(chan split.ProgressEvent, 64),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent when a split progress event arrives.
	ProgressMsg struct {
		Event split.ProgressEvent
	}

	// InitDoneMsg is sent when sheet loading and probing completes.
	InitDoneMsg struct {
		Tracks  []string
		Manager *split.Manager
		Err     error
	}

	// SplitDoneMsg is sent when all jobs have been attempted.
	SplitDoneMsg struct {
		Report *split.Report
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateSplitting || m.state == StateInitializing {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateInput && m.textInput.Value() != "" {
				m.state = StateInitializing
				return m, tea.Batch(m.initializeSplit(), m.spinner.Tick, m.nextEvent())
			}

		case "s":
			if m.state == StateInput {
				m.streamCopy = !m.streamCopy
			}

		case "p":
			if m.state == StateInput {
				m.playlist = !m.playlist
			}

		case "v":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for a new run
				m.state = StateInput
				m.logs = nil
				m.tracks = nil
				m.report = nil
				m.err = nil
				m.attemptedJobs = 0
				m.totalJobs = 0
				m.manager = nil
				m.events = make(chan split.ProgressEvent, 64)
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.SetValue("")
				m.textInput.Focus()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		// Keep listening for the next event either way.
		cmds = append(cmds, m.nextEvent())
		// Filter verbose messages if not in verbose mode
		if msg.Event.Level == split.LevelVerbose && !m.verbose {
			return m, tea.Batch(cmds...)
		}
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		// Keep only last 10 logs
		if len(m.logs) > 10 {
			m.logs = m.logs[len(m.logs)-10:]
		}

	case InitDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.tracks = msg.Tracks
			m.manager = msg.Manager
			m.state = StateSplitting
			cmds = append(cmds, m.startSplit(), m.tickProgress())
		}

	case SplitDoneMsg:
		m.report = msg.Report
		if m.manager != nil {
			m.attemptedJobs, m.totalJobs = m.manager.Progress()
		}
		if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else if err := msg.Report.Err(); err != nil {
			m.state = StateError
			m.err = err
		} else {
			m.state = StateComplete
		}

	case TickMsg:
		// Update progress from manager
		if m.manager != nil && m.state == StateSplitting {
			attempted, total := m.manager.Progress()
			m.attemptedJobs = attempted
			m.totalJobs = total

			var percent float64
			if total > 0 {
				percent = float64(attempted) / float64(total)
			}
			progressCmd := m.progress.SetPercent(percent)
			cmds = append(cmds, progressCmd, m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// nextEvent returns a command that waits for the manager's next progress
// event and delivers it as a ProgressMsg. The Update handler re-issues it
// after every ProgressMsg so the log pane stays live for the whole run.
func (m Model) nextEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		return ProgressMsg{Event: <-events}
	}
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("splat"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Split continuous rips into per-track FLAC files"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateInitializing:
		b.WriteString(m.viewInitializing())
	case StateSplitting:
		b.WriteString(m.viewSplitting())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter CUE sheet path:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	streamCopyCheck := "[ ]"
	if m.streamCopy {
		streamCopyCheck = "[×]"
	}
	playlistCheck := "[ ]"
	if m.playlist {
		playlistCheck = "[×]"
	}
	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[×]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Stream copy (s)\n", streamCopyCheck))
	b.WriteString(fmt.Sprintf("  %s Create playlist (p)\n", playlistCheck))
	b.WriteString(fmt.Sprintf("  %s Verbose/debug output (v)\n", verboseCheck))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewInitializing() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Reading sheet and probing sources..."))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewSplitting() string {
	var b strings.Builder

	if len(m.tracks) > 0 {
		b.WriteString(successStyle.Render(fmt.Sprintf("Planned %d track(s):", len(m.tracks))))
		b.WriteString("\n")
		for _, track := range m.tracks {
			b.WriteString(trackStyle.Render(fmt.Sprintf("  ♪ %s", track)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Progress bar
	var percent float64
	if m.totalJobs > 0 {
		percent = float64(m.attemptedJobs) / float64(m.totalJobs)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf("Processed: %d/%d", m.attemptedJobs, m.totalJobs)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	summary := "Done"
	if m.report != nil {
		summary = m.report.Summary()
	}
	box := boxStyle.Render(fmt.Sprintf("✨ Split Complete!\n\n%s", summary))
	b.WriteString(box)

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case split.LevelError:
			style = errorStyle
			prefix = "✗"
		case split.LevelWarning:
			style = warningStyle
			prefix = "!"
		case split.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case split.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • s: stream copy • p: playlist • v: verbose • esc: quit"
	case StateInitializing, StateSplitting:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new split • q: quit"
	}
	return ""
}

// initializeSplit loads the sheet and creates the manager.
func (m *Model) initializeSplit() tea.Cmd {
	return func() tea.Msg {
		cuePath := m.textInput.Value()

		settings := config.DefaultSettings()
		if m.streamCopy {
			settings.CopyMode = config.CopyModeStreamCopy
		}
		if m.playlist {
			settings.CreatePlaylist = true
		}

		// The callback runs on manager goroutines; it hands events to the
		// Bubble Tea loop through the buffered channel drained by
		// nextEvent. A full buffer drops the event rather than stalling a
		// transcode.
		events := m.events
		manager := split.NewManager(settings, func(event split.ProgressEvent) {
			select {
			case events <- event:
			default:
			}
		})

		if err := manager.Initialize(m.ctx, cuePath); err != nil {
			return InitDoneMsg{Err: err}
		}

		return InitDoneMsg{
			Tracks:  manager.TrackNames(),
			Manager: manager,
			Err:     nil,
		}
	}
}

// startSplit runs the jobs in the background.
func (m *Model) startSplit() tea.Cmd {
	return func() tea.Msg {
		if m.manager == nil {
			return SplitDoneMsg{Report: &split.Report{}}
		}
		return SplitDoneMsg{Report: m.manager.Run(m.ctx)}
	}
}

// Run starts the TUI application.
func Run() error {
	p := tea.NewProgram(NewModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
