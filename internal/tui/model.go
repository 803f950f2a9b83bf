// Package tui renders the application state with Bubble Tea.
package tui

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tudo/internal/app"
)

// DefaultTickRate is how often relative due dates are redrawn.
const DefaultTickRate = 250 * time.Millisecond

type tickMsg time.Time

// copiedMsg reports the result of a clipboard write.
type copiedMsg struct {
	title string
	err   error
}

// Model is the Bubble Tea model over an app.State.
//
// Toggling runs inside Update, so the program handles no further input until
// the backend round trip finishes and at most one update is in flight.
type Model struct {
	ctx   context.Context
	state *app.State

	keys   KeyMap
	help   help.Model
	styles Styles

	tickRate time.Duration
	now      func() time.Time
	copy     func(string) error

	width  int
	height int
	status string
	err    error
}

// Option configures a Model.
type Option func(*Model)

// WithTickRate sets the redraw interval.
func WithTickRate(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.tickRate = d
		}
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithClipboard overrides the clipboard writer, for tests.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) { m.copy = write }
}

// New creates a Model. ctx bounds backend calls made from the UI.
func New(ctx context.Context, state *app.State, opts ...Option) *Model {
	m := &Model{
		ctx:      ctx,
		state:    state,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		styles:   DefaultStyles(),
		tickRate: DefaultTickRate,
		now:      time.Now,
		copy:     clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.tickRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		return m, m.tick()

	case copiedMsg:
		if msg.err != nil {
			log.Printf("tui: copy: %v", msg.err)
			m.err = msg.err
		} else {
			m.status = "copied: " + msg.title
		}
		return m, nil

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		if m.state.ShouldQuit() {
			return m, tea.Quit
		}
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.state.Quit()
	case key.Matches(msg, m.keys.NextTasklist):
		m.clearStatus()
		m.state.NextTasklist()
	case key.Matches(msg, m.keys.PreviousTasklist):
		m.clearStatus()
		m.state.PreviousTasklist()
	case key.Matches(msg, m.keys.NextTask):
		m.state.NextTask()
	case key.Matches(msg, m.keys.PreviousTask):
		m.state.PreviousTask()
	case key.Matches(msg, m.keys.Toggle):
		m.toggle()
	case key.Matches(msg, m.keys.Copy):
		return m.copyTitle()
	}
	return nil
}

// copyTitle writes the selected task's title to the system clipboard.
func (m *Model) copyTitle() tea.Cmd {
	m.clearStatus()
	task, ok := m.state.SelectedTask()
	if !ok {
		m.status = "no task selected"
		return nil
	}
	write := m.copy
	return func() tea.Msg {
		return copiedMsg{title: task.Title, err: write(task.Title)}
	}
}

func (m *Model) toggle() {
	m.clearStatus()

	task, _ := m.state.SelectedTask()
	err := m.state.ToggleActiveTaskStatus(m.ctx)
	switch {
	case err == nil:
		if t, ok := m.state.SelectedTask(); ok {
			m.status = "marked " + t.Status.String() + ": " + t.Title
		}
	case errors.Is(err, app.ErrNoActiveTask):
		m.status = "no task selected"
	default:
		log.Printf("tui: toggle %s: %v", task.ID, err)
		m.err = err
	}
}

func (m *Model) clearStatus() {
	m.status = ""
	m.err = nil
}

// Err returns the last error shown in the status line.
func (m *Model) Err() error { return m.err }
