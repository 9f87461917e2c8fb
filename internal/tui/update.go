package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bryan-cox/taskboard/internal/dashboard"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			return m.dispatch(dashboard.EventNext), nil
		case key.Matches(msg, m.keys.Prev):
			return m.dispatch(dashboard.EventPrev), nil
		case key.Matches(msg, m.keys.Workspace):
			return m.cycleWorkspace(), nil
		case key.Matches(msg, m.keys.Date):
			return m.cycleDate(), nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}

	return m, nil
}
