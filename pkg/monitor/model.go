// Package monitor implements the full-screen chaos interface: a live
// countdown, the current mapping sample and an activity log around a prompt
// whose lines are remapped exactly like the line-mode prompt.
package monitor

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/chaoskb/internal/interact"
	"github.com/marcus/chaoskb/internal/output"
	"github.com/marcus/chaoskb/internal/remap"
	"github.com/marcus/chaoskb/internal/scheduler"
	"github.com/marcus/chaoskb/pkg/monitor/keymap"
)

// DefaultRefreshInterval is how often the status line is redrawn.
const DefaultRefreshInterval = 250 * time.Millisecond

// Model is the bubbletea model for the chaos TUI
type Model struct {
	Engine    *remap.Engine
	Generator *remap.Generator
	Scheduler *scheduler.Scheduler
	Keymap    *keymap.Registry
	Input     textinput.Model

	ShowHelp        bool
	Width           int
	Height          int
	SampleSize      int
	Version         string
	RefreshInterval time.Duration
	StartedAt       time.Time
	Quitting        bool

	loop         *interact.Loop
	sink         *eventSink
	lastShuffles int
}

// NewModel creates the TUI model. The scheduler is expected to be started
// by the caller.
func NewModel(engine *remap.Engine, gen *remap.Generator, sched *scheduler.Scheduler, km *keymap.Registry, sampleSize int, ver string) Model {
	if km == nil {
		km = keymap.NewRegistry()
		keymap.RegisterDefaults(km)
	}
	if sampleSize <= 0 {
		sampleSize = output.DefaultSampleSize
	}

	input := textinput.New()
	input.Placeholder = "type something (quit, shuffle, caps)"
	input.Prompt = "> "
	input.CharLimit = 0
	input.Focus()

	sink := &eventSink{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return Model{
		Engine:          engine,
		Generator:       gen,
		Scheduler:       sched,
		Keymap:          km,
		Input:           input,
		SampleSize:      sampleSize,
		Version:         ver,
		RefreshInterval: DefaultRefreshInterval,
		StartedAt:       time.Now(),
		loop:            interact.New(engine, gen, nil, sink, logger),
		sink:            sink,
		lastShuffles:    sched.Shuffles(),
	}
}

// Events returns the activity log, oldest first
func (m Model) Events() []Event {
	return m.sink.events
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.scheduleTick())
}

func (m Model) scheduleTick() tea.Cmd {
	return tea.Tick(m.RefreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) activeContext() keymap.Context {
	if m.ShowHelp {
		return keymap.ContextHelp
	}
	return keymap.ContextPrompt
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		m.syncTimerShuffles()
		return m, m.scheduleTick()

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Input.Width = max(msg.Width-6, 10)
		return m, nil

	case tea.KeyMsg:
		if cmd, ok := m.Keymap.Lookup(msg, m.activeContext()); ok {
			return m.executeCommand(cmd)
		}
		if m.ShowHelp {
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// executeCommand runs a keymap command
func (m Model) executeCommand(cmd keymap.Command) (tea.Model, tea.Cmd) {
	switch cmd {
	case keymap.CmdQuit:
		m.Quitting = true
		return m, tea.Quit

	case keymap.CmdToggleHelp:
		m.ShowHelp = !m.ShowHelp

	case keymap.CmdClose:
		m.ShowHelp = false

	case keymap.CmdShuffle:
		m.loop.Handle("shuffle")

	case keymap.CmdToggleCaps:
		m.loop.Handle("caps")

	case keymap.CmdTogglePause:
		switch {
		case m.Scheduler.Pause():
			m.sink.add(Event{Kind: EventPause, Text: "Chaos paused"})
		case m.Scheduler.Resume():
			m.sink.add(Event{Kind: EventResume, Text: "Chaos resumed"})
		}

	case keymap.CmdClearInput:
		m.Input.Reset()

	case keymap.CmdSubmit:
		line := m.Input.Value()
		m.Input.Reset()
		if c, _ := m.loop.Handle(line); c == interact.CmdQuit {
			m.Quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// syncTimerShuffles records shuffles the scheduler made since the last tick.
func (m *Model) syncTimerShuffles() {
	n := m.Scheduler.Shuffles()
	if n == m.lastShuffles {
		return
	}
	m.lastShuffles = n
	m.sink.add(Event{Kind: EventTimerShuffle, Text: shuffleText(m.Engine.Mapping())})
}

func shuffleText(m *remap.Mapping) string {
	return fmt.Sprintf("Remapped %d keys", m.Len())
}

func capsText(inverted bool) string {
	return fmt.Sprintf("Caps Lock toggled: %s (inverted behavior)", output.CapsStatus(inverted))
}
