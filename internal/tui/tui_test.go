package tui

import (
	"testing"

	"splat/internal/split"
)

// Events put on the model's channel must come back as ProgressMsg and land
// in the log pane.
func TestProgressEventsReachLogPane(t *testing.T) {
	m := NewModel()
	m.state = StateSplitting

	m.events <- split.ProgressEvent{Message: "Wrote 01-01 - One.flac", Level: split.LevelSuccess}

	msg := m.nextEvent()()
	pm, ok := msg.(ProgressMsg)
	if !ok {
		t.Fatalf("nextEvent delivered %T, want ProgressMsg", msg)
	}

	updated, _ := m.Update(pm)
	model := updated.(Model)
	if len(model.logs) != 1 {
		t.Fatalf("got %d log entries, want 1", len(model.logs))
	}
	if model.logs[0].Message != "Wrote 01-01 - One.flac" {
		t.Errorf("log message = %q", model.logs[0].Message)
	}
	if model.logs[0].Level != split.LevelSuccess {
		t.Errorf("log level = %v, want success", model.logs[0].Level)
	}
}

func TestProgressVerboseFiltered(t *testing.T) {
	m := NewModel()
	m.state = StateSplitting

	updated, _ := m.Update(ProgressMsg{Event: split.ProgressEvent{Message: "detail", Level: split.LevelVerbose}})
	if got := len(updated.(Model).logs); got != 0 {
		t.Errorf("verbose event logged without verbose mode: %d entries", got)
	}

	m.verbose = true
	updated, _ = m.Update(ProgressMsg{Event: split.ProgressEvent{Message: "detail", Level: split.LevelVerbose}})
	if got := len(updated.(Model).logs); got != 1 {
		t.Errorf("verbose event dropped in verbose mode: %d entries", got)
	}
}

// A full event buffer must never block a manager goroutine.
func TestEventBufferOverflowDoesNotBlock(t *testing.T) {
	m := NewModel()
	send := func(event split.ProgressEvent) {
		select {
		case m.events <- event:
		default:
		}
	}

	for i := 0; i < cap(m.events)+10; i++ {
		send(split.ProgressEvent{Message: "x", Level: split.LevelInfo})
	}
	if len(m.events) != cap(m.events) {
		t.Errorf("buffered %d events, want full buffer of %d", len(m.events), cap(m.events))
	}
}
