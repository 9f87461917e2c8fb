package dashboard

import (
	"fmt"

	"github.com/bryan-cox/taskboard/internal/model"
)

// Display label formats for the carousel caption.
const (
	TaskLabelFormat        = "Task: %s"
	CompletedByLabelFormat = "Completed By: %s"
)

// Engine computes dashboard views over a dataset fixed at construction.
// It holds no other state and is safe for concurrent use.
type Engine struct {
	dataset model.Dataset
}

// New returns an engine over d. A nil dataset is treated as empty.
func New(d model.Dataset) *Engine {
	if d == nil {
		d = model.Dataset{}
	}
	return &Engine{dataset: d}
}

// Dataset returns the dataset the engine was built with. Callers must not
// modify it.
func (e *Engine) Dataset() model.Dataset {
	return e.dataset
}

// Workspaces returns the workspace filter options.
func (e *Engine) Workspaces() []string {
	return e.dataset.WorkspaceNames()
}

// Dates returns the date filter options for the selected workspaces.
func (e *Engine) Dates(workspaces []string) []string {
	return AvailableDates(e.dataset, workspaces)
}

// Request is one UI event: the current selection, what happened, and the
// image URL that was on screen before it happened.
type Request struct {
	Selection model.Selection
	Event     Event
	Current   string
}

// Slide is the carousel entry prepared for display.
type Slide struct {
	// ImageURL is nil for the empty-carousel placeholder.
	ImageURL         *string `json:"imageUrl"`
	Task             string  `json:"task"`
	CompletedBy      string  `json:"completedBy"`
	TaskLabel        string  `json:"taskLabel"`
	CompletedByLabel string  `json:"completedByLabel"`
	// Position is 1-based; 0 for the placeholder.
	Position int `json:"position"`
	Count    int `json:"count"`
}

// NewSlide formats entry for display. index is the entry's position in a
// carousel of count entries, or -1 for the placeholder.
func NewSlide(entry model.CarouselEntry, index, count int) Slide {
	s := Slide{
		Task:             entry.Task,
		CompletedBy:      entry.CompletedBy,
		TaskLabel:        fmt.Sprintf(TaskLabelFormat, entry.Task),
		CompletedByLabel: fmt.Sprintf(CompletedByLabelFormat, entry.CompletedBy),
		Count:            count,
	}
	if !entry.IsPlaceholder() {
		url := entry.ImageURL
		s.ImageURL = &url
		s.Position = index + 1
	}
	return s
}

// URL returns the slide's image URL, or "" for the placeholder.
func (s Slide) URL() string {
	if s.ImageURL == nil {
		return ""
	}
	return *s.ImageURL
}

// View is everything the dashboard displays for one event.
type View struct {
	Selection          model.Selection       `json:"selection"`
	Event              Event                 `json:"event"`
	KPIs               KPIs                  `json:"kpis"`
	StatusDistribution []StatusCount         `json:"statusDistribution"`
	AverageRatings     RatingAverages        `json:"averageRatings"`
	Carousel           []model.CarouselEntry `json:"carousel"`
	Slide              Slide                 `json:"slide"`
	WorkspaceOptions   []string              `json:"workspaceOptions"`
	DateOptions        []string              `json:"dateOptions"`
}

// Render runs a full recomputation for req: filter, KPIs, ratings, carousel,
// then one navigation step.
func (e *Engine) Render(req Request) View {
	view := Filter(e.dataset, req.Selection)
	kpis := ComputeKPIs(view)
	carousel := BuildCarousel(view)
	entry, index := Navigate(carousel, req.Current, req.Event)

	return View{
		Selection:          req.Selection,
		Event:              req.Event,
		KPIs:               kpis,
		StatusDistribution: kpis.StatusDistribution(),
		AverageRatings:     AverageRatings(view),
		Carousel:           carousel,
		Slide:              NewSlide(entry, index, len(carousel)),
		WorkspaceOptions:   e.Workspaces(),
		DateOptions:        e.Dates(req.Selection.Workspaces),
	}
}
