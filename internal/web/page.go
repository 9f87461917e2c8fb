package web

import (
	_ "embed"
	"fmt"
	"html/template"
	"math"
	"slices"

	"github.com/bryan-cox/taskboard/internal/dashboard"
)

//go:embed templates/index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

// Chart geometry, in SVG user units.
const (
	pieRadius   = 90.0
	pieCenter   = 100.0
	barMaxWidth = 300.0
	barHeight   = 24.0
	barGap      = 10.0
	maxStars    = 5.0
)

var sliceColors = []string{"#2e7d32", "#c62828"}

type option struct {
	Value    string
	Selected bool
}

type pieSlice struct {
	Label   string
	Count   int
	Percent string
	Color   string
	// Path is empty when the slice is the whole pie; Full is set instead.
	Path string
	Full bool
}

type bar struct {
	Label string
	Value string
	Y     float64
	TextY float64
	Width float64
}

type page struct {
	View       dashboard.View
	Workspaces []option
	Dates      []option
	Pie        []pieSlice
	Bars       []bar
	BarsHeight float64
}

func newPage(v dashboard.View) page {
	bars, height := ratingBars(v.AverageRatings)
	return page{
		View:       v,
		Workspaces: options(v.WorkspaceOptions, v.Selection.Workspaces),
		Dates:      options(v.DateOptions, v.Selection.Dates),
		Pie:        pieSlices(v.StatusDistribution),
		Bars:       bars,
		BarsHeight: height,
	}
}

func options(values, selected []string) []option {
	out := make([]option, 0, len(values))
	for _, v := range values {
		out = append(out, option{Value: v, Selected: slices.Contains(selected, v)})
	}
	return out
}

// pieSlices lays out the status distribution clockwise from twelve o'clock.
// Empty slices are omitted, so an empty view draws no pie.
func pieSlices(dist []dashboard.StatusCount) []pieSlice {
	total := 0
	for _, s := range dist {
		total += s.Count
	}
	if total == 0 {
		return nil
	}

	var out []pieSlice
	angle := 0.0
	for i, s := range dist {
		if s.Count == 0 {
			continue
		}
		frac := float64(s.Count) / float64(total)
		slice := pieSlice{
			Label:   s.Label,
			Count:   s.Count,
			Percent: fmt.Sprintf("%.1f%%", 100*frac),
			Color:   sliceColors[i%len(sliceColors)],
		}
		if s.Count == total {
			slice.Full = true
		} else {
			end := angle + 2*math.Pi*frac
			x1, y1 := polar(angle)
			x2, y2 := polar(end)
			large := 0
			if end-angle > math.Pi {
				large = 1
			}
			slice.Path = fmt.Sprintf("M %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f Z",
				pieCenter, pieCenter, x1, y1, pieRadius, pieRadius, large, x2, y2)
			angle = end
		}
		out = append(out, slice)
	}
	return out
}

func polar(angle float64) (float64, float64) {
	return pieCenter + pieRadius*math.Sin(angle), pieCenter - pieRadius*math.Cos(angle)
}

// ratingBars scales each average against a five-star maximum.
func ratingBars(ratings dashboard.RatingAverages) ([]bar, float64) {
	out := make([]bar, 0, len(ratings))
	for i, r := range ratings {
		y := float64(i) * (barHeight + barGap)
		label := r.Task
		if label == "" {
			label = "(unnamed)"
		}
		out = append(out, bar{
			Label: label,
			Value: fmt.Sprintf("%.2f", r.Average),
			Y:     y,
			TextY: y + barHeight*0.7,
			Width: barMaxWidth * math.Min(r.Average, maxStars) / maxStars,
		})
	}
	return out, float64(len(out)) * (barHeight + barGap)
}
