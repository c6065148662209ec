package domain

import (
	"context"
	"encoding/json"
	"strings"

	"eventcalendar/internal/datetime"
)

// RepeatType is the recurrence frequency of an event.
type RepeatType string

const (
	RepeatNone    RepeatType = "none"
	RepeatDaily   RepeatType = "daily"
	RepeatWeekly  RepeatType = "weekly"
	RepeatMonthly RepeatType = "monthly"
	RepeatYearly  RepeatType = "yearly"
)

// Valid reports whether t is one of the known repeat types.
func (t RepeatType) Valid() bool {
	switch t {
	case RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly, RepeatYearly:
		return true
	}
	return false
}

// RepeatRule is the recurrence metadata attached to every Event.
// ID is the series token shared by all instances of one generation batch; it
// may be empty for instances created without server-side series linkage.
type RepeatRule struct {
	Type     RepeatType     `json:"type"`
	Interval int            `json:"interval"`
	EndDate  *datetime.Date `json:"end_date,omitempty"`
	ID       string         `json:"id,omitempty"`
}

// NoRepeat is the rule of a standalone event.
func NoRepeat() RepeatRule {
	return RepeatRule{Type: RepeatNone, Interval: 0}
}

// Event is a calendar entry on a single day.
// swagger:model Event
type Event struct {
	ID               string             `json:"id,omitempty"`
	Title            string             `json:"title"`
	Date             datetime.Date      `json:"date"`
	StartTime        datetime.TimeOfDay `json:"start_time"`
	EndTime          datetime.TimeOfDay `json:"end_time"`
	Description      string             `json:"description"`
	Location         string             `json:"location"`
	Category         string             `json:"category"`
	NotificationTime int                `json:"notification_time"`
	Repeat           RepeatRule         `json:"repeat"`
}

// UnmarshalJSON decodes an Event; a missing repeat or repeat.type means
// RepeatNone.
func (e *Event) UnmarshalJSON(b []byte) error {
	type plain Event
	dec := plain{Repeat: NoRepeat()}
	if err := json.Unmarshal(b, &dec); err != nil {
		return err
	}
	*e = Event(dec)
	e.Normalize()
	return nil
}

// Normalize fills defaults left out by callers: an empty repeat type
// becomes RepeatNone.
func (e *Event) Normalize() {
	if e.Repeat.Type == "" {
		e.Repeat.Type = RepeatNone
	}
}

// NewEvent returns a non-recurring Event. ID is set by the repository on create.
func NewEvent(title string, date datetime.Date, start, end datetime.TimeOfDay) *Event {
	return &Event{
		Title:     title,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Repeat:    NoRepeat(),
	}
}

// IsRecurring reports whether e belongs to a recurrence definition.
func (e *Event) IsRecurring() bool {
	return e.Repeat.Type != RepeatNone && e.Repeat.Type != "" && e.Repeat.Interval > 0
}

// SameSeries reports whether e and other structurally belong to the same
// series: both recurring with equal type and interval, and identical shared
// content fields. The series token is deliberately not consulted.
func (e *Event) SameSeries(other *Event) bool {
	if !e.IsRecurring() || !other.IsRecurring() {
		return false
	}
	return e.Repeat.Type == other.Repeat.Type &&
		e.Repeat.Interval == other.Repeat.Interval &&
		e.Title == other.Title &&
		e.StartTime == other.StartTime &&
		e.EndTime == other.EndTime &&
		e.Description == other.Description &&
		e.Location == other.Location &&
		e.Category == other.Category
}

// Overlaps reports whether e and other share a date and their half-open
// [start, end) intervals intersect. Touching endpoints do not overlap.
func (e *Event) Overlaps(other *Event) bool {
	if e.Date != other.Date {
		return false
	}
	return e.StartTime.Before(other.EndTime) && e.EndTime.After(other.StartTime)
}

// Clone returns a deep copy of e.
func (e *Event) Clone() *Event {
	c := *e
	if e.Repeat.EndDate != nil {
		end := *e.Repeat.EndDate
		c.Repeat.EndDate = &end
	}
	return &c
}

// Detached returns a copy of e with its recurrence stripped.
func (e *Event) Detached() *Event {
	c := e.Clone()
	c.Repeat = NoRepeat()
	return c
}

// Validate implements the request validation contract. Returns nil when e is valid.
func (e *Event) Validate() []string {
	var errs []string
	if strings.TrimSpace(e.Title) == "" {
		errs = append(errs, "title is required")
	}
	if e.Date.IsZero() {
		errs = append(errs, "date is required")
	}
	if e.StartTime.Minutes() == 0 && e.EndTime.Minutes() == 0 {
		errs = append(errs, "start_time and end_time are required")
	} else if !e.StartTime.Before(e.EndTime) {
		errs = append(errs, "end_time must be after start_time")
	}
	if e.NotificationTime < 0 {
		errs = append(errs, "notification_time must not be negative")
	}
	if t := e.Repeat.Type; t != "" && !t.Valid() {
		errs = append(errs, "repeat.type must be one of none, daily, weekly, monthly, yearly")
	} else if t != "" && t != RepeatNone {
		if e.Repeat.Interval < 1 {
			errs = append(errs, "repeat.interval must be at least 1")
		}
		if e.Repeat.EndDate != nil && !e.Date.IsZero() && e.Repeat.EndDate.Before(e.Date) {
			errs = append(errs, "repeat.end_date must not be before date")
		}
	}
	return errs
}

// SeriesUpdate holds the metadata shared by every instance of a series that
// a series-wide edit may change without moving dates.
type SeriesUpdate struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	Location         string `json:"location"`
	Category         string `json:"category"`
	NotificationTime int    `json:"notification_time"`
}

// SeriesUpdateFrom extracts the shared metadata of e.
func SeriesUpdateFrom(e *Event) SeriesUpdate {
	return SeriesUpdate{
		Title:            e.Title,
		Description:      e.Description,
		Location:         e.Location,
		Category:         e.Category,
		NotificationTime: e.NotificationTime,
	}
}

// ApplyTo overwrites the shared metadata of e.
func (u SeriesUpdate) ApplyTo(e *Event) {
	e.Title = u.Title
	e.Description = u.Description
	e.Location = u.Location
	e.Category = u.Category
	e.NotificationTime = u.NotificationTime
}

// EventRepository is the persistence surface the calendar core calls into.
// A nil error means the call succeeded.
type EventRepository interface {
	ListEvents(ctx context.Context) ([]*Event, error)
	CreateEvent(ctx context.Context, event *Event) (*Event, error)
	UpdateEvent(ctx context.Context, id string, event *Event) error
	DeleteEvent(ctx context.Context, id string) error
	CreateEventsBatch(ctx context.Context, events []*Event) error
	UpdateEventsBatch(ctx context.Context, events []*Event) error
	UpdateSeriesBySeriesID(ctx context.Context, seriesID string, fields SeriesUpdate) error
	DeleteSeriesBySeriesID(ctx context.Context, seriesID string) error
}
