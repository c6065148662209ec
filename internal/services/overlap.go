package services

import "eventcalendar/internal/domain"

// FindOverlappingEvents returns the events of existing that share the
// candidate's date and intersect its time range, in input order. When the
// candidate is an edit its previous version (same ID) is never reported.
func FindOverlappingEvents(candidate *domain.Event, existing []*domain.Event) []*domain.Event {
	out := make([]*domain.Event, 0)
	for _, e := range existing {
		if candidate.ID != "" && e.ID == candidate.ID {
			continue
		}
		if candidate.Overlaps(e) {
			out = append(out, e)
		}
	}
	return out
}
