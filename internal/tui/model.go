// Package tui is a terminal browser for the dashboard. Every key press is
// turned into one dashboard.Request and rendered through the engine, the
// same way the web dashboard handles a request.
package tui

import (
	"context"
	"io"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bryan-cox/taskboard/internal/dashboard"
	"github.com/bryan-cox/taskboard/internal/model"
)

// Model is the Bubble Tea model of the browser.
type Model struct {
	engine *dashboard.Engine
	keys   KeyMap
	help   help.Model

	// workspaceIdx and dateIdx pick a filter option; 0 means all, i means
	// option i-1.
	workspaceIdx int
	dateIdx      int

	view     dashboard.View
	width    int
	quitting bool
}

// New returns a browser showing the whole dataset with the first image
// selected.
func New(engine *dashboard.Engine) Model {
	m := Model{
		engine: engine,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	return m.dispatch(dashboard.EventFilterChanged)
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Rendered returns the most recent render.
func (m Model) Rendered() dashboard.View {
	return m.view
}

// Selection returns the active filter selection.
func (m Model) Selection() model.Selection {
	var sel model.Selection
	workspaces := m.engine.Workspaces()
	if m.workspaceIdx > 0 && m.workspaceIdx <= len(workspaces) {
		sel.Workspaces = []string{workspaces[m.workspaceIdx-1]}
	}
	dates := m.engine.Dates(sel.Workspaces)
	if m.dateIdx > 0 && m.dateIdx <= len(dates) {
		sel.Dates = []string{dates[m.dateIdx-1]}
	}
	return sel
}

// dispatch renders ev against the image currently on screen.
func (m Model) dispatch(ev dashboard.Event) Model {
	m.view = m.engine.Render(dashboard.Request{
		Selection: m.Selection(),
		Event:     ev,
		Current:   m.view.Slide.URL(),
	})
	return m
}

func (m Model) cycleWorkspace() Model {
	m.workspaceIdx = (m.workspaceIdx + 1) % (len(m.engine.Workspaces()) + 1)
	m.dateIdx = 0
	return m.dispatch(dashboard.EventFilterChanged)
}

func (m Model) cycleDate() Model {
	dates := m.engine.Dates(m.Selection().Workspaces)
	m.dateIdx = (m.dateIdx + 1) % (len(dates) + 1)
	return m.dispatch(dashboard.EventFilterChanged)
}

// Run starts the browser on in and out and blocks until the user quits or
// ctx is cancelled.
func Run(ctx context.Context, engine *dashboard.Engine, in io.Reader, out io.Writer) error {
	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(out), tea.WithAltScreen()}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	_, err := tea.NewProgram(New(engine), opts...).Run()
	return err
}
