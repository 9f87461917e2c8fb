package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryan-cox/taskboard/internal/errors"
	"github.com/bryan-cox/taskboard/internal/model"
)

func entries(urls ...string) []model.CarouselEntry {
	out := make([]model.CarouselEntry, 0, len(urls))
	for _, u := range urls {
		out = append(out, model.CarouselEntry{ImageURL: u, Task: "task " + u, CompletedBy: "by " + u})
	}
	return out
}

func TestBuildCarousel(t *testing.T) {
	got := BuildCarousel(sampleDataset())

	assert.Equal(t, []model.CarouselEntry{
		{ImageURL: "https://img/1.jpg", Task: "Sweep", CompletedBy: "Ana"},
		{ImageURL: "https://img/2.jpg", Task: "Sweep", CompletedBy: "Ben"},
		{ImageURL: "https://img/3.jpg", Task: "Windows", CompletedBy: "Cy"},
	}, got)
}

func TestBuildCarouselMembership(t *testing.T) {
	d := sampleDataset()
	withImage := 0
	d.Walk(func(_, _, _ string, rec model.TaskRecord) {
		if rec.ImageURL != "" {
			withImage++
		}
	})

	got := BuildCarousel(d)
	assert.Len(t, got, withImage)
	for _, entry := range got {
		assert.NotEmpty(t, entry.ImageURL)
	}
}

func TestBuildCarouselNoImages(t *testing.T) {
	d := model.Dataset{"W": {"2024-01-01": {"a": {Task: "A"}}}}
	assert.Empty(t, BuildCarousel(d))
	assert.Empty(t, BuildCarousel(nil))
}

func TestNavigate(t *testing.T) {
	list := entries("a", "b", "c")

	tests := []struct {
		name      string
		current   string
		event     Event
		wantURL   string
		wantIndex int
	}{
		{name: "next wraps to first", current: "c", event: EventNext, wantURL: "a", wantIndex: 0},
		{name: "prev wraps to last", current: "a", event: EventPrev, wantURL: "c", wantIndex: 2},
		{name: "next steps forward", current: "a", event: EventNext, wantURL: "b", wantIndex: 1},
		{name: "prev steps back", current: "c", event: EventPrev, wantURL: "b", wantIndex: 1},
		{name: "unknown current counts as first on next", current: "zzz", event: EventNext, wantURL: "b", wantIndex: 1},
		{name: "unknown current counts as first on prev", current: "zzz", event: EventPrev, wantURL: "c", wantIndex: 2},
		{name: "empty current counts as first", current: "", event: EventNext, wantURL: "b", wantIndex: 1},
		{name: "filter change resets even if current survives", current: "b", event: EventFilterChanged, wantURL: "a", wantIndex: 0},
		{name: "initial render shows first", current: "c", event: EventNone, wantURL: "a", wantIndex: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, index := Navigate(list, tt.current, tt.event)
			assert.Equal(t, tt.wantURL, got.ImageURL)
			assert.Equal(t, tt.wantIndex, index)
		})
	}
}

func TestNavigateSingleEntry(t *testing.T) {
	list := entries("only")
	for _, ev := range []Event{EventNone, EventNext, EventPrev, EventFilterChanged} {
		got, index := Navigate(list, "only", ev)
		assert.Equal(t, "only", got.ImageURL, ev.String())
		assert.Equal(t, 0, index)
	}
}

func TestNavigateEmptyCarousel(t *testing.T) {
	for _, ev := range []Event{EventNone, EventNext, EventPrev, EventFilterChanged} {
		got, index := Navigate(nil, "u1", ev)
		assert.Equal(t, model.CarouselEntry{}, got, ev.String())
		assert.True(t, got.IsPlaceholder())
		assert.Equal(t, -1, index)
	}
}

func TestNavigateDuplicateURLsUseFirstMatch(t *testing.T) {
	list := []model.CarouselEntry{
		{ImageURL: "dup", Task: "first"},
		{ImageURL: "x", Task: "middle"},
		{ImageURL: "dup", Task: "second"},
	}

	// Standing on the second "dup", Next still resolves from the first one.
	got, index := Navigate(list, "dup", EventNext)
	assert.Equal(t, "middle", got.Task)
	assert.Equal(t, 1, index)
}

func TestNavigateFullCycle(t *testing.T) {
	list := entries("a", "b", "c", "d")
	current := ""
	var seen []string
	for range 8 {
		entry, _ := Navigate(list, current, EventNext)
		current = entry.ImageURL
		seen = append(seen, current)
	}
	assert.Equal(t, []string{"b", "c", "d", "a", "b", "c", "d", "a"}, seen)

	seen = nil
	for range 4 {
		entry, _ := Navigate(list, current, EventPrev)
		current = entry.ImageURL
		seen = append(seen, current)
	}
	assert.Equal(t, []string{"d", "c", "b", "a"}, seen)
}

func TestParseEvent(t *testing.T) {
	tests := map[string]Event{
		"":               EventNone,
		"none":           EventNone,
		"next":           EventNext,
		"NEXT":           EventNext,
		" prev ":         EventPrev,
		"previous":       EventPrev,
		"filter":         EventFilterChanged,
		"filter-changed": EventFilterChanged,
	}
	for in, want := range tests {
		got, err := ParseEvent(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseEvent("sideways")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidEvent))
}

func TestEventText(t *testing.T) {
	for _, ev := range []Event{EventNone, EventNext, EventPrev, EventFilterChanged} {
		text, err := ev.MarshalText()
		require.NoError(t, err)

		var back Event
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, ev, back)
	}
	assert.Equal(t, "Event(42)", Event(42).String())
}
