package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"eventcalendar/internal/datetime"
	"eventcalendar/internal/delivery/http/helpers"
	"eventcalendar/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// decodeEnvelope decodes the response envelope and, when dest is non-nil,
// the data field into dest.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, dest any) helpers.APIResponse {
	t.Helper()
	var raw struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&raw), "response must be valid JSON envelope")
	if dest != nil && len(raw.Data) > 0 && string(raw.Data) != "null" {
		require.NoError(t, json.Unmarshal(raw.Data, dest))
	}
	return helpers.APIResponse{Data: raw.Data, Error: raw.Error}
}

func sampleEvent(id string) *domain.Event {
	e := domain.NewEvent("Standup",
		datetime.MustParseDate("2025-11-03"),
		datetime.MustParseTimeOfDay("09:00"),
		datetime.MustParseTimeOfDay("09:30"))
	e.ID = id
	return e
}

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	err error

	events        []*domain.Event
	submitResult  *domain.SubmitResult
	moveResult    *domain.MoveResult
	searchTotal   int
	notifications []domain.Notification

	lastSubmit     domain.SubmitEventInput
	lastCandidate  *domain.Event
	lastEdit       *domain.Event
	lastSingleOnly bool
	lastDeleteID   string
	lastMoveID     string
	lastMoveTarget datetime.Date
	lastMoveSingle *bool
	lastSearch     domain.SearchQuery
	lastNow        time.Time
}

func (f *fakeEventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	return f.events, f.err
}

func (f *fakeEventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, e := range f.events {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventService) FindOverlaps(ctx context.Context, candidate *domain.Event) ([]*domain.Event, error) {
	f.lastCandidate = candidate
	return f.events, f.err
}

func (f *fakeEventService) SubmitEvent(ctx context.Context, in domain.SubmitEventInput) (*domain.SubmitResult, error) {
	f.lastSubmit = in
	if f.err != nil {
		return nil, f.err
	}
	if f.submitResult != nil {
		return f.submitResult, nil
	}
	saved := in.Event.Clone()
	if saved.ID == "" {
		saved.ID = "ev-created"
	}
	return &domain.SubmitResult{Events: []*domain.Event{saved}}, nil
}

func (f *fakeEventService) CreateRepeatEvent(ctx context.Context, draft *domain.Event) ([]*domain.Event, error) {
	return nil, f.err
}

func (f *fakeEventService) EditRecurring(ctx context.Context, updated *domain.Event, singleOnly bool) error {
	f.lastEdit = updated
	f.lastSingleOnly = singleOnly
	return f.err
}

func (f *fakeEventService) DeleteEvent(ctx context.Context, id string) error {
	f.lastDeleteID = id
	return f.err
}

func (f *fakeEventService) DeleteRecurring(ctx context.Context, id string, singleOnly bool) error {
	f.lastDeleteID = id
	f.lastSingleOnly = singleOnly
	return f.err
}

func (f *fakeEventService) MoveEvent(ctx context.Context, id string, target datetime.Date, singleOnly *bool) (*domain.MoveResult, error) {
	f.lastMoveID = id
	f.lastMoveTarget = target
	f.lastMoveSingle = singleOnly
	if f.err != nil {
		return nil, f.err
	}
	if f.moveResult != nil {
		return f.moveResult, nil
	}
	return &domain.MoveResult{Moved: true}, nil
}

func (f *fakeEventService) Search(ctx context.Context, q domain.SearchQuery) ([]*domain.Event, int, error) {
	f.lastSearch = q
	return f.events, f.searchTotal, f.err
}

func (f *fakeEventService) Notifications(ctx context.Context, now time.Time) ([]domain.Notification, error) {
	f.lastNow = now
	return f.notifications, f.err
}

// fakeCalendarService implements domain.CalendarService for handler tests.
type fakeCalendarService struct {
	err      error
	ics      []byte
	imported []*domain.Event

	lastDay    datetime.Date
	lastImport string
}

func (f *fakeCalendarService) Week(ctx context.Context, day datetime.Date) (*domain.WeekView, error) {
	f.lastDay = day
	if f.err != nil {
		return nil, f.err
	}
	return &domain.WeekView{Title: "week", Days: []*domain.DayCell{{Date: day, Events: []*domain.Event{}}}}, nil
}

func (f *fakeCalendarService) Month(ctx context.Context, day datetime.Date) (*domain.MonthView, error) {
	f.lastDay = day
	if f.err != nil {
		return nil, f.err
	}
	return &domain.MonthView{Title: "month"}, nil
}

func (f *fakeCalendarService) ExportICS(ctx context.Context) ([]byte, error) {
	return f.ics, f.err
}

func (f *fakeCalendarService) ImportICS(ctx context.Context, r io.Reader) ([]*domain.Event, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f.lastImport = string(b)
	return f.imported, f.err
}

// fakeRepo implements domain.EventRepository for store handler tests.
type fakeRepo struct {
	err    error
	events []*domain.Event

	lastID     string
	lastEvent  *domain.Event
	lastBatch  []*domain.Event
	lastSeries string
	lastFields domain.SeriesUpdate
}

func (f *fakeRepo) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	return f.events, f.err
}

func (f *fakeRepo) CreateEvent(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	f.lastEvent = e
	if f.err != nil {
		return nil, f.err
	}
	c := e.Clone()
	c.ID = "ev-new"
	return c, nil
}

func (f *fakeRepo) UpdateEvent(ctx context.Context, id string, e *domain.Event) error {
	f.lastID = id
	f.lastEvent = e
	return f.err
}

func (f *fakeRepo) DeleteEvent(ctx context.Context, id string) error {
	f.lastID = id
	return f.err
}

func (f *fakeRepo) CreateEventsBatch(ctx context.Context, events []*domain.Event) error {
	f.lastBatch = events
	if f.err != nil {
		return f.err
	}
	for i, e := range events {
		e.ID = "batch-" + string(rune('a'+i))
	}
	return nil
}

func (f *fakeRepo) UpdateEventsBatch(ctx context.Context, events []*domain.Event) error {
	f.lastBatch = events
	return f.err
}

func (f *fakeRepo) UpdateSeriesBySeriesID(ctx context.Context, seriesID string, fields domain.SeriesUpdate) error {
	f.lastSeries = seriesID
	f.lastFields = fields
	return f.err
}

func (f *fakeRepo) DeleteSeriesBySeriesID(ctx context.Context, seriesID string) error {
	f.lastSeries = seriesID
	return f.err
}
