// Package model defines the core data structures for TaskBoard.
package model

import (
	"maps"
	"slices"
)

// Task status tags. Records may carry other values; those only count toward
// the total.
const (
	StatusComplete   = "complete"
	StatusIncomplete = "incomplete"
	StatusApproved   = "approved"
)

// TaskRecord is a single trackable unit of work.
type TaskRecord struct {
	Task        string   `json:"task" yaml:"task"`
	Status      string   `json:"status" yaml:"status"`
	Rating      *float64 `json:"rating,omitempty" yaml:"rating,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
	CompletedBy string   `json:"completedBy,omitempty" yaml:"completedBy,omitempty"`
}

// Rated reports whether the record carries a rating strictly greater than zero.
// A zero or absent rating means "no rating".
func (r TaskRecord) Rated() bool {
	return r.Rating != nil && *r.Rating > 0
}

// HasImage reports whether the record contributes a carousel entry.
func (r TaskRecord) HasImage() bool {
	return r.ImageURL != ""
}

// DateGroup holds one day's records, keyed by task key.
type DateGroup map[string]TaskRecord

// Keys returns the task keys in traversal order.
func (g DateGroup) Keys() []string {
	return slices.Sorted(maps.Keys(g))
}

// Workspace maps date strings to date groups.
type Workspace map[string]DateGroup

// Dates returns the workspace's date keys in traversal order.
func (w Workspace) Dates() []string {
	return slices.Sorted(maps.Keys(w))
}

// Dataset is the top-level structure: workspace -> date -> task key -> record.
//
// Traversal order at every level is ascending key order. Date keys are
// YYYY-MM-DD and Firebase push keys sort chronologically, so this matches the
// order the records were written in.
type Dataset map[string]Workspace

// WorkspaceNames returns the workspace names in traversal order.
func (d Dataset) WorkspaceNames() []string {
	return slices.Sorted(maps.Keys(d))
}

// Walk calls fn for every record in workspace -> date -> task order.
func (d Dataset) Walk(fn func(workspace, date, key string, rec TaskRecord)) {
	for _, ws := range d.WorkspaceNames() {
		workspace := d[ws]
		for _, date := range workspace.Dates() {
			group := workspace[date]
			for _, key := range group.Keys() {
				fn(ws, date, key, group[key])
			}
		}
	}
}

// Len returns the number of task records.
func (d Dataset) Len() int {
	n := 0
	for _, workspace := range d {
		for _, group := range workspace {
			n += len(group)
		}
	}
	return n
}

// Selection is a filter selection. An empty component means "include all".
type Selection struct {
	Workspaces []string `json:"workspaces,omitempty"`
	Dates      []string `json:"dates,omitempty"`
}

// CarouselEntry is one image-bearing record as shown by the carousel.
type CarouselEntry struct {
	ImageURL    string `json:"imageUrl"`
	Task        string `json:"task"`
	CompletedBy string `json:"completedBy"`
}

// IsPlaceholder reports whether the entry is the empty-carousel placeholder.
func (e CarouselEntry) IsPlaceholder() bool {
	return e.ImageURL == ""
}
