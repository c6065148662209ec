package domain

// PaginationParams holds offset-based pagination parameters for list queries.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the item offset for the current page (0-based).
// Formula: (Page - 1) * PageSize.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Paginate returns the page of events selected by p. A non-positive page size
// returns every event.
func Paginate(events []*Event, p PaginationParams) []*Event {
	if p.PageSize <= 0 {
		return events
	}
	start := p.Offset()
	if start >= len(events) {
		return []*Event{}
	}
	end := start + p.PageSize
	if end > len(events) {
		end = len(events)
	}
	return events[start:end]
}
