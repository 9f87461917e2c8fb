package dashboard

import (
	"fmt"
	"strings"

	"github.com/bryan-cox/taskboard/internal/errors"
	"github.com/bryan-cox/taskboard/internal/model"
)

// Event is a UI event that drives the carousel.
type Event int

// Carousel events.
const (
	EventNone Event = iota
	EventNext
	EventPrev
	EventFilterChanged
)

var eventNames = map[Event]string{
	EventNone:          "none",
	EventNext:          "next",
	EventPrev:          "prev",
	EventFilterChanged: "filter",
}

func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

// MarshalText implements encoding.TextMarshaler.
func (e Event) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Event) UnmarshalText(text []byte) error {
	parsed, err := ParseEvent(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// ParseEvent parses an event name. The empty string is EventNone.
func ParseEvent(s string) (Event, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return EventNone, nil
	case "next":
		return EventNext, nil
	case "prev", "previous":
		return EventPrev, nil
	case "filter", "filter-changed", "filterchanged":
		return EventFilterChanged, nil
	}
	return EventNone, errors.Wrapf(errors.ErrInvalidEvent, "event %q", s)
}

// Placeholder is the entry shown when the carousel is empty.
func Placeholder() model.CarouselEntry {
	return model.CarouselEntry{}
}

// BuildCarousel lists the image-bearing records of a view in workspace ->
// date -> task order.
func BuildCarousel(view model.Dataset) []model.CarouselEntry {
	var entries []model.CarouselEntry
	view.Walk(func(_, _, _ string, rec model.TaskRecord) {
		if !rec.HasImage() {
			return
		}
		entries = append(entries, model.CarouselEntry{
			ImageURL:    rec.ImageURL,
			Task:        rec.Task,
			CompletedBy: rec.CompletedBy,
		})
	})
	return entries
}

// IndexOf returns the index of the first entry showing imageURL, or -1.
// Entries sharing an image URL are indistinguishable; the first one wins.
func IndexOf(entries []model.CarouselEntry, imageURL string) int {
	if imageURL == "" {
		return -1
	}
	for i, entry := range entries {
		if entry.ImageURL == imageURL {
			return i
		}
	}
	return -1
}

// Navigate returns the entry to display after ev, given the freshly built
// carousel and the image URL shown before the event, along with its index.
//
// The current position is recovered by looking current up in entries and
// defaults to 0 when it is not there. Next and Prev wrap around. None and
// FilterChanged always show the first entry. An empty carousel yields the
// placeholder and index -1 for every event.
func Navigate(entries []model.CarouselEntry, current string, ev Event) (model.CarouselEntry, int) {
	n := len(entries)
	if n == 0 {
		return Placeholder(), -1
	}

	i := IndexOf(entries, current)
	if i < 0 {
		i = 0
	}

	var next int
	switch ev {
	case EventNext:
		next = (i + 1) % n
	case EventPrev:
		next = (i - 1 + n) % n
	default:
		next = 0
	}
	return entries[next], next
}
