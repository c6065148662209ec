package domain

import (
	"context"
	"io"
	"time"

	"eventcalendar/internal/datetime"
)

// CalendarView selects the window applied to event lists.
type CalendarView string

const (
	ViewWeek  CalendarView = "week"
	ViewMonth CalendarView = "month"
)

// SearchQuery filters events by a free-text term within a calendar window.
type SearchQuery struct {
	Term       string
	View       CalendarView
	Current    datetime.Date
	Pagination PaginationParams
}

// SubmitEventInput is a form submission. An Event with an ID is an edit.
// SingleOnly carries the single/series decision for edits of recurring
// events; Force saves despite overlaps.
type SubmitEventInput struct {
	Event      *Event
	Force      bool
	SingleOnly *bool
}

// SubmitResult reports what a submission did. When Overlaps is non-empty
// nothing was saved and the caller must confirm with Force.
type SubmitResult struct {
	Events   []*Event `json:"events"`
	Overlaps []*Event `json:"overlaps,omitempty"`
}

// Saved reports whether the submission was persisted.
func (r *SubmitResult) Saved() bool {
	return len(r.Overlaps) == 0
}

// MoveResult reports the outcome of dropping an event on another day.
type MoveResult struct {
	Moved   bool          `json:"moved"`
	Pending PendingAction `json:"pending,omitempty"`
}

// DayCell is one day of a calendar grid.
type DayCell struct {
	Date    datetime.Date `json:"date"`
	Holiday string        `json:"holiday,omitempty"`
	Events  []*Event      `json:"events"`
}

// WeekView is the seven-day calendar layout.
type WeekView struct {
	Title string     `json:"title"`
	Days  []*DayCell `json:"days"`
}

// MonthView is the month grid; nil cells are padding outside the month.
type MonthView struct {
	Title string       `json:"title"`
	Weeks [][]*DayCell `json:"weeks"`
}

// EventService defines the calendar operations driven by the UI.
type EventService interface {
	ListEvents(ctx context.Context) ([]*Event, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	FindOverlaps(ctx context.Context, candidate *Event) ([]*Event, error)
	SubmitEvent(ctx context.Context, in SubmitEventInput) (*SubmitResult, error)
	CreateRepeatEvent(ctx context.Context, draft *Event) ([]*Event, error)
	EditRecurring(ctx context.Context, updated *Event, singleOnly bool) error
	DeleteEvent(ctx context.Context, id string) error
	DeleteRecurring(ctx context.Context, id string, singleOnly bool) error
	MoveEvent(ctx context.Context, id string, target datetime.Date, singleOnly *bool) (*MoveResult, error)
	Search(ctx context.Context, q SearchQuery) (events []*Event, total int, err error)
	Notifications(ctx context.Context, now time.Time) ([]Notification, error)
}

// CalendarService renders calendar layouts and converts events to and from iCalendar.
type CalendarService interface {
	Week(ctx context.Context, day datetime.Date) (*WeekView, error)
	Month(ctx context.Context, day datetime.Date) (*MonthView, error)
	ExportICS(ctx context.Context) ([]byte, error)
	ImportICS(ctx context.Context, r io.Reader) ([]*Event, error)
}
