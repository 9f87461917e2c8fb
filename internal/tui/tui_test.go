package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryan-cox/taskboard/internal/dashboard"
	"github.com/bryan-cox/taskboard/internal/model"
)

func rating(v float64) *float64 { return &v }

func testEngine() *dashboard.Engine {
	return dashboard.New(model.Dataset{
		"A": {
			"2024-01-01": {
				"k1": {Task: "Sweep", Status: model.StatusComplete, Rating: rating(4), ImageURL: "a1", CompletedBy: "Ana"},
				"k2": {Task: "Mop", Status: model.StatusIncomplete, ImageURL: "a2"},
			},
			"2024-01-02": {
				"k3": {Task: "Dust", Status: model.StatusApproved, ImageURL: "a3"},
			},
		},
		"B": {
			"2024-02-01": {
				"k": {Task: "Windows", Status: model.StatusIncomplete},
			},
		},
	})
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func TestNewShowsFirstImage(t *testing.T) {
	m := New(testEngine())

	v := m.Rendered()
	assert.Equal(t, "a1", v.Slide.URL())
	assert.Equal(t, 4, v.KPIs.Total)
	assert.Equal(t, model.Selection{}, m.Selection())
	assert.Nil(t, m.Init())
}

func TestNavigation(t *testing.T) {
	m := New(testEngine())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "a2", m.Rendered().Slide.URL())

	m = press(t, m, runeKey('l'), runeKey('l'))
	assert.Equal(t, "a1", m.Rendered().Slide.URL(), "next wraps around")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, "a3", m.Rendered().Slide.URL(), "prev wraps around")

	m = press(t, m, runeKey('h'))
	assert.Equal(t, "a2", m.Rendered().Slide.URL())
}

func TestCycleWorkspace(t *testing.T) {
	m := New(testEngine())
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})

	m = press(t, m, runeKey('w'))
	assert.Equal(t, []string{"A"}, m.Selection().Workspaces)
	assert.Equal(t, "a1", m.Rendered().Slide.URL(), "filter change resets to the first image")
	assert.Equal(t, 3, m.Rendered().KPIs.Total)

	m = press(t, m, runeKey('w'))
	assert.Equal(t, []string{"B"}, m.Selection().Workspaces)
	assert.Nil(t, m.Rendered().Slide.ImageURL)
	assert.Equal(t, "Task: ", m.Rendered().Slide.TaskLabel)

	m = press(t, m, runeKey('w'))
	assert.Empty(t, m.Selection().Workspaces, "cycles back to all")
}

func TestCycleDate(t *testing.T) {
	m := New(testEngine())
	m = press(t, m, runeKey('w'))

	m = press(t, m, runeKey('d'))
	assert.Equal(t, model.Selection{Workspaces: []string{"A"}, Dates: []string{"2024-01-01"}}, m.Selection())
	assert.Equal(t, 2, m.Rendered().KPIs.Total)

	m = press(t, m, runeKey('d'))
	assert.Equal(t, []string{"2024-01-02"}, m.Selection().Dates)
	assert.Equal(t, "a3", m.Rendered().Slide.URL())

	m = press(t, m, runeKey('d'))
	assert.Empty(t, m.Selection().Dates)

	// Changing workspace clears the date filter.
	m = press(t, m, runeKey('d'), runeKey('w'))
	assert.Empty(t, m.Selection().Dates)
	assert.Equal(t, []string{"B"}, m.Selection().Workspaces)
}

func TestHelpAndQuit(t *testing.T) {
	m := New(testEngine())
	assert.False(t, m.help.ShowAll)

	m = press(t, m, runeKey('?'))
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "cycle workspace")

	next, cmd := m.Update(runeKey('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, next.View())
}

func TestView(t *testing.T) {
	m := New(testEngine())
	m = press(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	out := m.View()
	assert.Contains(t, out, "Task Dashboard")
	assert.Contains(t, out, "Workspace: all")
	assert.Contains(t, out, "Total Tasks")
	assert.Contains(t, out, "[1/3] a1")
	assert.Contains(t, out, "Task: Sweep")
	assert.Contains(t, out, "Completed By: Ana")
	assert.Contains(t, out, "Completed vs Incomplete Tasks")
	assert.Contains(t, out, "Average Star Ratings for Tasks")
	assert.Contains(t, out, "4.00")
}

func TestViewEmptyDataset(t *testing.T) {
	out := New(dashboard.New(nil)).View()
	assert.Contains(t, out, "No images")
	assert.Contains(t, out, "No ratings")
}
