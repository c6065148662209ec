package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"eventcalendar/internal/datetime"
	"eventcalendar/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	mu      sync.Mutex
	events  []*domain.Event
	nextID  int
	calls   []string
	failIDs map[string]error // UpdateEvent/DeleteEvent return this error for the id
	err     error            // if set, batch and series calls return this error
}

func newFakeEventRepo(events ...*domain.Event) *fakeEventRepo {
	f := &fakeEventRepo{nextID: 1, failIDs: make(map[string]error)}
	for _, e := range events {
		f.events = append(f.events, e.Clone())
	}
	return f
}

func (f *fakeEventRepo) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *fakeEventRepo) index(id string) int {
	for i, e := range f.events {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (f *fakeEventRepo) assignID(e *domain.Event) {
	if e.ID == "" {
		e.ID = fmt.Sprintf("ev-%d", f.nextID)
		f.nextID++
	}
}

func (f *fakeEventRepo) get(id string) *domain.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i := f.index(id); i >= 0 {
		return f.events[i]
	}
	return nil
}

func (f *fakeEventRepo) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Event, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Clone())
	}
	return out, nil
}

func (f *fakeEventRepo) CreateEvent(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("create")
	if f.err != nil {
		return nil, f.err
	}
	c := e.Clone()
	f.assignID(c)
	f.events = append(f.events, c)
	return c.Clone(), nil
}

func (f *fakeEventRepo) UpdateEvent(ctx context.Context, id string, e *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("update:" + id)
	if err := f.failIDs[id]; err != nil {
		return err
	}
	i := f.index(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	c := e.Clone()
	c.ID = id
	f.events[i] = c
	return nil
}

func (f *fakeEventRepo) DeleteEvent(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("delete:" + id)
	if err := f.failIDs[id]; err != nil {
		return err
	}
	i := f.index(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	f.events = append(f.events[:i], f.events[i+1:]...)
	return nil
}

func (f *fakeEventRepo) CreateEventsBatch(ctx context.Context, events []*domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("create_batch")
	if f.err != nil {
		return f.err
	}
	for _, e := range events {
		f.assignID(e)
		f.events = append(f.events, e.Clone())
	}
	return nil
}

func (f *fakeEventRepo) UpdateEventsBatch(ctx context.Context, events []*domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("update_batch")
	if f.err != nil {
		return f.err
	}
	for _, e := range events {
		i := f.index(e.ID)
		if i < 0 {
			return domain.ErrNotFound
		}
		f.events[i] = e.Clone()
	}
	return nil
}

func (f *fakeEventRepo) UpdateSeriesBySeriesID(ctx context.Context, seriesID string, fields domain.SeriesUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("update_series:" + seriesID)
	if f.err != nil {
		return f.err
	}
	for _, e := range f.events {
		if e.Repeat.ID == seriesID {
			fields.ApplyTo(e)
		}
	}
	return nil
}

func (f *fakeEventRepo) DeleteSeriesBySeriesID(ctx context.Context, seriesID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("delete_series:" + seriesID)
	if f.err != nil {
		return f.err
	}
	kept := f.events[:0]
	for _, e := range f.events {
		if e.Repeat.ID != seriesID {
			kept = append(kept, e)
		}
	}
	f.events = kept
	return nil
}

func makeEvent(id, title, date, start, end string) *domain.Event {
	e := domain.NewEvent(title, datetime.MustParseDate(date), datetime.MustParseTimeOfDay(start), datetime.MustParseTimeOfDay(end))
	e.ID = id
	return e
}

// weeklySeries builds one weekly instance per date. IDs are "<prefix>-<n>".
func weeklySeries(prefix, seriesID string, dates ...string) []*domain.Event {
	out := make([]*domain.Event, 0, len(dates))
	for i, d := range dates {
		e := makeEvent(fmt.Sprintf("%s-%d", prefix, i+1), "Standup", d, "09:00", "09:30")
		e.Description = "daily sync"
		e.Location = "Room 1"
		e.Category = "work"
		e.NotificationTime = 10
		e.Repeat = domain.RepeatRule{Type: domain.RepeatWeekly, Interval: 1, ID: seriesID}
		out = append(out, e)
	}
	return out
}

func ids(events []*domain.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}
