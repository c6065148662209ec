package services

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"eventcalendar/internal/datetime"
	"eventcalendar/internal/domain"
)

// SearchEvents keeps the events whose title, description or location contains
// term, ignoring case. An empty term keeps every event.
func SearchEvents(events []*domain.Event, term string) []*domain.Event {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]*domain.Event, 0, len(events))
	for _, e := range events {
		if term == "" ||
			strings.Contains(strings.ToLower(e.Title), term) ||
			strings.Contains(strings.ToLower(e.Description), term) ||
			strings.Contains(strings.ToLower(e.Location), term) {
			out = append(out, e)
		}
	}
	return out
}

// FilterByView keeps the events inside the week or month containing current.
// Unknown views keep every event.
func FilterByView(events []*domain.Event, view domain.CalendarView, current datetime.Date, weekStart time.Weekday) []*domain.Event {
	out := make([]*domain.Event, 0, len(events))
	for _, e := range events {
		switch view {
		case domain.ViewWeek:
			if !datetime.InSameWeek(e.Date, current, weekStart) {
				continue
			}
		case domain.ViewMonth:
			if !datetime.InSameMonth(e.Date, current) {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

// EventsForDay returns the events on day.
func EventsForDay(events []*domain.Event, day datetime.Date) []*domain.Event {
	out := make([]*domain.Event, 0)
	for _, e := range events {
		if e.Date == day {
			out = append(out, e)
		}
	}
	return out
}

func sortByStart(events []*domain.Event) {
	slices.SortStableFunc(events, func(a, b *domain.Event) int {
		if c := a.Date.Time().Compare(b.Date.Time()); c != 0 {
			return c
		}
		return cmp.Compare(a.StartTime.Minutes(), b.StartTime.Minutes())
	})
}
