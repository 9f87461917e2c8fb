package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const ratingBarWidth = 20

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Task Dashboard"))
	b.WriteString("\n")
	b.WriteString(m.filtersView())
	b.WriteString("\n\n")
	b.WriteString(m.kpiView())
	b.WriteString("\n")
	b.WriteString(m.slideView())
	b.WriteString("\n")
	b.WriteString(m.statusView())
	b.WriteString("\n")
	b.WriteString(m.ratingsView())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) filtersView() string {
	sel := m.Selection()
	ws, date := "all", "all"
	if len(sel.Workspaces) > 0 {
		ws = sel.Workspaces[0]
	}
	if len(sel.Dates) > 0 {
		date = sel.Dates[0]
	}
	return filterStyle.Render(fmt.Sprintf("Workspace: %s   Date: %s", ws, date))
}

func (m Model) kpiView() string {
	k := m.view.KPIs
	card := func(label string, value int) string {
		return cardStyle.Render(label + "\n" + cardValueStyle.Render(fmt.Sprint(value)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Tasks", k.Total),
		card("Completed Tasks", k.Completed),
		card("Incomplete Tasks", k.Incomplete),
		card("Approved Tasks", k.Approved),
	)
}

func (m Model) slideView() string {
	s := m.view.Slide
	var b strings.Builder
	if s.ImageURL == nil {
		b.WriteString(mutedStyle.Render("No images"))
	} else {
		fmt.Fprintf(&b, "[%d/%d] %s", s.Position, s.Count, s.URL())
	}
	b.WriteString("\n")
	b.WriteString(s.TaskLabel)
	b.WriteString("\n")
	b.WriteString(s.CompletedByLabel)
	return b.String()
}

func (m Model) statusView() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Completed vs Incomplete Tasks"))
	for i, s := range m.view.StatusDistribution {
		style := completedStyle
		if i > 0 {
			style = incompleteStyle
		}
		b.WriteString("\n")
		b.WriteString(style.Render(fmt.Sprintf("%s: %d", s.Label, s.Count)))
	}
	return b.String()
}

func (m Model) ratingsView() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Average Star Ratings for Tasks"))
	if len(m.view.AverageRatings) == 0 {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("No ratings"))
		return b.String()
	}
	for _, r := range m.view.AverageRatings {
		filled := int(r.Average / 5 * ratingBarWidth)
		filled = min(max(filled, 0), ratingBarWidth)
		name := r.Task
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(&b, "\n%-16s %s %.2f", name, barStyle.Render(strings.Repeat("█", filled)), r.Average)
	}
	return b.String()
}
