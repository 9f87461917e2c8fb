// Package dashboard folds a task dataset into the views shown by the
// dashboard: the filtered subset, KPI counts, average ratings and the image
// carousel. Every function here is pure; nothing is cached between calls.
package dashboard

import (
	"maps"
	"slices"

	"github.com/bryan-cox/taskboard/internal/model"
)

// Filter returns the part of the dataset induced by the selection. A record
// is kept iff its workspace is selected (or no workspace is) and its date is
// selected (or no date is). Unknown names in the selection are ignored.
//
// The result shares date groups with d; neither is modified.
func Filter(d model.Dataset, sel model.Selection) model.Dataset {
	workspaces := toSet(sel.Workspaces)
	dates := toSet(sel.Dates)

	filtered := make(model.Dataset)
	for name, workspace := range d {
		if len(workspaces) > 0 && !workspaces[name] {
			continue
		}
		kept := make(model.Workspace)
		for date, group := range workspace {
			if len(dates) > 0 && !dates[date] {
				continue
			}
			kept[date] = group
		}
		// With a date filter active, a workspace without a matching date
		// contributes nothing and is left out entirely.
		if len(dates) > 0 && len(kept) == 0 {
			continue
		}
		filtered[name] = kept
	}
	return filtered
}

// AvailableDates returns the sorted, de-duplicated date keys across the given
// workspaces, or across all workspaces when none are given.
func AvailableDates(d model.Dataset, workspaces []string) []string {
	names := workspaces
	if len(names) == 0 {
		names = d.WorkspaceNames()
	}

	seen := make(map[string]bool)
	for _, name := range names {
		for date := range d[name] {
			seen[date] = true
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
