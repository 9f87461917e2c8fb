// Package report renders a dashboard view as plain text or as an HTML
// fragment suitable for pasting into a chat or email.
package report

import (
	"github.com/bryan-cox/taskboard/internal/model"
)

// PlacedTask is a record together with where it was logged.
type PlacedTask struct {
	Workspace string
	Date      string
	Key       string
	model.TaskRecord
}

// Categories holds the records of a filtered view that need attention.
// Completed and approved records are only counted by the KPIs.
type Categories struct {
	Outstanding []PlacedTask
	// Unknown holds records with a missing or unrecognised status.
	Unknown []PlacedTask
}

// Categorize collects outstanding and unknown-status records of view,
// keeping traversal order within each one.
func Categorize(view model.Dataset) Categories {
	var c Categories
	view.Walk(func(ws, date, key string, rec model.TaskRecord) {
		placed := PlacedTask{Workspace: ws, Date: date, Key: key, TaskRecord: rec}
		switch rec.Status {
		case model.StatusApproved, model.StatusComplete:
		case model.StatusIncomplete:
			c.Outstanding = append(c.Outstanding, placed)
		default:
			c.Unknown = append(c.Unknown, placed)
		}
	})
	return c
}

// OutstandingByWorkspace groups outstanding tasks by workspace, preserving
// order.
func (c Categories) OutstandingByWorkspace() ([]string, map[string][]PlacedTask) {
	var order []string
	groups := make(map[string][]PlacedTask)
	for _, t := range c.Outstanding {
		if _, ok := groups[t.Workspace]; !ok {
			order = append(order, t.Workspace)
		}
		groups[t.Workspace] = append(groups[t.Workspace], t)
	}
	return order, groups
}
