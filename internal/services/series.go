package services

import "eventcalendar/internal/domain"

// FindRelatedRecurringEvents returns every event of all that structurally
// belongs to target's series, target included. A lone instance has no series
// to act on, so fewer than two matches yield an empty slice, as does a
// non-recurring target.
func FindRelatedRecurringEvents(target *domain.Event, all []*domain.Event) []*domain.Event {
	if !target.IsRecurring() {
		return []*domain.Event{}
	}
	series := make([]*domain.Event, 0)
	for _, e := range all {
		if e.SameSeries(target) {
			series = append(series, e)
		}
	}
	if len(series) <= 1 {
		return []*domain.Event{}
	}
	return series
}

func findEventByID(events []*domain.Event, id string) *domain.Event {
	if id == "" {
		return nil
	}
	for _, e := range events {
		if e.ID == id {
			return e
		}
	}
	return nil
}
