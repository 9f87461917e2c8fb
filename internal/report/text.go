package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/bryan-cox/taskboard/internal/dashboard"
	"github.com/bryan-cox/taskboard/internal/model"
)

// Section headers for text output.
const (
	TextHeaderTitle       = "Task Dashboard"
	TextHeaderKPIs        = "\nSummary"
	TextHeaderStatus      = "\nCompleted vs Incomplete Tasks"
	TextHeaderRatings     = "\nAverage Star Ratings for Tasks"
	TextHeaderImages      = "\nTask Images"
	TextHeaderOutstanding = "\nOutstanding Tasks"
	TextHeaderUnknown     = "\nUnrecognised Status"
)

const allLabel = "all"

// Text writes the full report for view. cats should be computed from the
// same filtered dataset the view was rendered from.
func Text(out io.Writer, view dashboard.View, cats Categories) {
	PrintSelection(out, view.Selection)
	PrintKPIs(out, view.KPIs)
	PrintStatusDistribution(out, view.StatusDistribution)
	PrintAverageRatings(out, view.AverageRatings)
	PrintCarousel(out, view.Carousel)
	PrintOutstanding(out, cats)
	PrintUnknown(out, cats)
}

// PrintSelection prints the title and the active filters.
func PrintSelection(out io.Writer, sel model.Selection) {
	fmt.Fprintln(out, TextHeaderTitle)
	fmt.Fprintf(out, "    Workspaces: %s\n", joinOrAll(sel.Workspaces))
	fmt.Fprintf(out, "    Dates: %s\n", joinOrAll(sel.Dates))
}

// PrintKPIs prints the four KPI cards. Records with other statuses are
// mentioned only when present.
func PrintKPIs(out io.Writer, k dashboard.KPIs) {
	fmt.Fprintln(out, TextHeaderKPIs)
	fmt.Fprintf(out, "    • Total Tasks: %d\n", k.Total)
	fmt.Fprintf(out, "    • Completed Tasks: %d\n", k.Completed)
	fmt.Fprintf(out, "    • Incomplete Tasks: %d\n", k.Incomplete)
	fmt.Fprintf(out, "    • Approved Tasks: %d\n", k.Approved)
	if other := k.Other(); other > 0 {
		fmt.Fprintf(out, "        ◦ %d with another status\n", other)
	}
}

// PrintStatusDistribution prints each slice with its share of the total.
func PrintStatusDistribution(out io.Writer, dist []dashboard.StatusCount) {
	fmt.Fprintln(out, TextHeaderStatus)
	total := 0
	for _, s := range dist {
		total += s.Count
	}
	for _, s := range dist {
		if total == 0 {
			fmt.Fprintf(out, "    • %s: %d\n", s.Label, s.Count)
			continue
		}
		fmt.Fprintf(out, "    • %s: %d (%.0f%%)\n", s.Label, s.Count, 100*float64(s.Count)/float64(total))
	}
}

// PrintAverageRatings prints averages in discovery order with two decimals.
func PrintAverageRatings(out io.Writer, ratings dashboard.RatingAverages) {
	fmt.Fprintln(out, TextHeaderRatings)
	if len(ratings) == 0 {
		fmt.Fprintln(out, "    (no ratings)")
		return
	}
	for _, r := range ratings {
		fmt.Fprintf(out, "    • %s: %.2f (%d)\n", displayTask(r.Task), r.Average, r.Count)
	}
}

// PrintCarousel lists every image the carousel can show.
func PrintCarousel(out io.Writer, entries []model.CarouselEntry) {
	fmt.Fprintln(out, TextHeaderImages)
	if len(entries) == 0 {
		fmt.Fprintln(out, "    (no images)")
		return
	}
	for i, e := range entries {
		fmt.Fprintf(out, "    %d. %s\n", i+1, e.ImageURL)
		fmt.Fprintf(out, "        ◦ "+dashboard.TaskLabelFormat+"\n", displayTask(e.Task))
		fmt.Fprintf(out, "        ◦ "+dashboard.CompletedByLabelFormat+"\n", e.CompletedBy)
	}
}

// PrintOutstanding prints incomplete tasks grouped by workspace.
func PrintOutstanding(out io.Writer, cats Categories) {
	order, groups := cats.OutstandingByWorkspace()
	if len(order) == 0 {
		return
	}
	fmt.Fprintln(out, TextHeaderOutstanding)
	for _, ws := range order {
		fmt.Fprintf(out, "    • %s\n", ws)
		for _, t := range groups[ws] {
			fmt.Fprintf(out, "        ◦ %s (%s)\n", displayTask(t.Task), t.Date)
		}
	}
}

// PrintUnknown lists the records counted as "another status" in the KPIs.
func PrintUnknown(out io.Writer, cats Categories) {
	if len(cats.Unknown) == 0 {
		return
	}
	fmt.Fprintln(out, TextHeaderUnknown)
	for _, t := range cats.Unknown {
		fmt.Fprintf(out, "    • %s (%s, %s): %s\n", displayTask(t.Task), t.Workspace, t.Date, statusLabel(t.Status))
	}
}

func statusLabel(status string) string {
	if status == "" {
		return "no status"
	}
	return fmt.Sprintf("status %q", status)
}

func joinOrAll(values []string) string {
	if len(values) == 0 {
		return allLabel
	}
	return strings.Join(values, ", ")
}

func displayTask(name string) string {
	if name == "" {
		return "(unnamed)"
	}
	return name
}
