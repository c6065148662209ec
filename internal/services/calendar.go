package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"eventcalendar/internal/datetime"
	"eventcalendar/internal/domain"
)

const (
	icsProductID     = "-//eventcalendar//EN"
	icsFloatingTime  = "20060102T150405"
	icsUTCTime       = "20060102T150405Z"
	icsDate          = "20060102"
	propSeriesID     = ical.ComponentProperty("X-SERIES-ID")
	propRepeatType   = ical.ComponentProperty("X-REPEAT-TYPE")
	propRepeatEvery  = ical.ComponentProperty("X-REPEAT-INTERVAL")
	propRepeatUntil  = ical.ComponentProperty("X-REPEAT-END-DATE")
	propNotification = ical.ComponentProperty("X-NOTIFICATION-MINUTES")
)

type calendarService struct {
	events    domain.EventService
	repo      domain.EventRepository
	holidays  map[string]string
	weekStart time.Weekday
	loc       *time.Location
	logger    *slog.Logger
	newID     func() string
}

// NewCalendarService builds calendar layouts on top of events. holidays maps
// YYYY-MM-DD to a holiday name; loc is the zone imported UTC and TZID times
// are converted into.
func NewCalendarService(events domain.EventService, repo domain.EventRepository, holidays map[string]string, weekStart time.Weekday, loc *time.Location, logger *slog.Logger) domain.CalendarService {
	if holidays == nil {
		holidays = map[string]string{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &calendarService{
		events:    events,
		repo:      repo,
		holidays:  holidays,
		weekStart: weekStart,
		loc:       loc,
		logger:    logger,
		newID:     uuid.NewString,
	}
}

func (s *calendarService) cell(events []*domain.Event, day datetime.Date) *domain.DayCell {
	dayEvents := EventsForDay(events, day)
	sortByStart(dayEvents)
	return &domain.DayCell{
		Date:    day,
		Holiday: s.holidays[day.String()],
		Events:  dayEvents,
	}
}

func (s *calendarService) Week(ctx context.Context, day datetime.Date) (*domain.WeekView, error) {
	events, err := s.events.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	view := &domain.WeekView{Title: datetime.FormatWeek(day, s.weekStart)}
	for _, d := range datetime.WeekDates(day, s.weekStart) {
		view.Days = append(view.Days, s.cell(events, d))
	}
	return view, nil
}

func (s *calendarService) Month(ctx context.Context, day datetime.Date) (*domain.MonthView, error) {
	events, err := s.events.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	view := &domain.MonthView{Title: datetime.FormatMonth(day)}
	for _, week := range datetime.MonthWeeks(day, s.weekStart) {
		row := make([]*domain.DayCell, len(week))
		for i, n := range week {
			if n == 0 {
				continue
			}
			row[i] = s.cell(events, datetime.NewDate(day.Year, day.Month, n))
		}
		view.Weeks = append(view.Weeks, row)
	}
	return view, nil
}

// ExportICS renders every event as a VEVENT with floating (zone-less) times.
// Recurrence metadata travels in X- properties because instances are
// already materialized.
func (s *calendarService) ExportICS(ctx context.Context) ([]byte, error) {
	events, err := s.events.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(icsProductID)

	stamp := time.Now().UTC()
	for _, e := range events {
		ve := cal.AddEvent(e.ID)
		ve.SetDtStampTime(stamp)
		ve.SetSummary(e.Title)
		ve.SetProperty(ical.ComponentPropertyDtStart, e.Date.At(e.StartTime, time.UTC).Format(icsFloatingTime))
		ve.SetProperty(ical.ComponentPropertyDtEnd, e.Date.At(e.EndTime, time.UTC).Format(icsFloatingTime))
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.Location != "" {
			ve.SetLocation(e.Location)
		}
		if e.Category != "" {
			ve.SetProperty(ical.ComponentPropertyCategories, e.Category)
		}
		if e.NotificationTime > 0 {
			ve.SetProperty(propNotification, strconv.Itoa(e.NotificationTime))
			alarm := ve.AddAlarm()
			alarm.SetAction(ical.ActionDisplay)
			alarm.SetTrigger(fmt.Sprintf("-PT%dM", e.NotificationTime))
		}
		if e.IsRecurring() {
			ve.SetProperty(propRepeatType, string(e.Repeat.Type))
			ve.SetProperty(propRepeatEvery, strconv.Itoa(e.Repeat.Interval))
			if e.Repeat.EndDate != nil {
				ve.SetProperty(propRepeatUntil, e.Repeat.EndDate.String())
			}
			if e.Repeat.ID != "" {
				ve.SetProperty(propSeriesID, e.Repeat.ID)
			}
		}
	}
	return []byte(cal.Serialize()), nil
}

// ImportICS parses a calendar and stores its events in one batch. VEVENTs
// that cannot be represented as same-day events are skipped, as are VEVENTs
// whose UID is already a stored event id. Series tokens already used by
// stored events are replaced with fresh ones so imported copies form their
// own series.
func (s *calendarService) ImportICS(ctx context.Context, r io.Reader) ([]*domain.Event, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("%w: parse calendar: %v", domain.ErrInvalidEvent, err)
	}
	existing, err := s.events.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	storedIDs := make(map[string]struct{}, len(existing))
	usedSeries := make(map[string]struct{})
	for _, e := range existing {
		storedIDs[e.ID] = struct{}{}
		if e.Repeat.ID != "" {
			usedSeries[e.Repeat.ID] = struct{}{}
		}
	}

	renamed := make(map[string]string)
	imported := make([]*domain.Event, 0)
	for _, ve := range cal.Events() {
		if _, dup := storedIDs[ve.Id()]; dup {
			s.logger.DebugContext(ctx, "skipping vevent already stored", "uid", ve.Id())
			continue
		}
		e, err := eventFromVEvent(ve, s.loc)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping vevent", "uid", ve.Id(), "err", err)
			continue
		}
		if _, taken := usedSeries[e.Repeat.ID]; taken {
			fresh, ok := renamed[e.Repeat.ID]
			if !ok {
				fresh = s.newID()
				renamed[e.Repeat.ID] = fresh
			}
			e.Repeat.ID = fresh
		}
		imported = append(imported, e)
	}
	if len(imported) == 0 {
		return imported, nil
	}
	if err := s.repo.CreateEventsBatch(ctx, imported); err != nil {
		return nil, fmt.Errorf("store imported events: %w", err)
	}
	s.logger.InfoContext(ctx, "calendar imported", "count", len(imported))
	return imported, nil
}

func propValue(ve *ical.VEvent, p ical.ComponentProperty) string {
	if prop := ve.GetProperty(p); prop != nil {
		return prop.Value
	}
	return ""
}

// icsTime reads a DTSTART/DTEND value as wall-clock time in loc. UTC values
// and values with a TZID are converted; floating values and dates are
// taken as they are.
func icsTime(ve *ical.VEvent, p ical.ComponentProperty, loc *time.Location) (time.Time, error) {
	prop := ve.GetProperty(p)
	if prop == nil {
		return time.Time{}, errMissingProperty
	}
	if t, err := time.Parse(icsUTCTime, prop.Value); err == nil {
		return t.In(loc), nil
	}
	if tzid := prop.ICalParameters[string(ical.ParameterTzid)]; len(tzid) > 0 {
		zone, err := time.LoadLocation(tzid[0])
		if err != nil {
			return time.Time{}, fmt.Errorf("unknown TZID %q: %w", tzid[0], err)
		}
		t, err := time.ParseInLocation(icsFloatingTime, prop.Value, zone)
		if err != nil {
			return time.Time{}, fmt.Errorf("unsupported date-time %q", prop.Value)
		}
		return t.In(loc), nil
	}
	for _, layout := range []string{icsFloatingTime, icsDate} {
		if t, err := time.ParseInLocation(layout, prop.Value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date-time %q", prop.Value)
}

var errMissingProperty = errors.New("missing")

func eventFromVEvent(ve *ical.VEvent, loc *time.Location) (*domain.Event, error) {
	start, err := icsTime(ve, ical.ComponentPropertyDtStart, loc)
	if err != nil {
		return nil, fmt.Errorf("dtstart: %w", err)
	}
	end, err := icsTime(ve, ical.ComponentPropertyDtEnd, loc)
	switch {
	case errors.Is(err, errMissingProperty):
		end = start.Add(time.Hour)
	case err != nil:
		return nil, fmt.Errorf("dtend: %w", err)
	}

	e := domain.NewEvent(
		propValue(ve, ical.ComponentPropertySummary),
		datetime.DateOf(start),
		datetime.TimeOfDay{Hour: start.Hour(), Minute: start.Minute()},
		datetime.TimeOfDay{Hour: end.Hour(), Minute: end.Minute()},
	)
	if datetime.DateOf(end) != e.Date {
		// All-day and multi-day entries are clipped to the first day.
		e.EndTime = datetime.TimeOfDay{Hour: 23, Minute: 59}
	}
	e.Description = propValue(ve, ical.ComponentPropertyDescription)
	e.Location = propValue(ve, ical.ComponentPropertyLocation)
	e.Category = strings.Split(propValue(ve, ical.ComponentPropertyCategories), ",")[0]
	if n, err := strconv.Atoi(propValue(ve, propNotification)); err == nil {
		e.NotificationTime = n
	}
	if t := domain.RepeatType(propValue(ve, propRepeatType)); t != "" && t.Valid() {
		e.Repeat.Type = t
		e.Repeat.Interval, _ = strconv.Atoi(propValue(ve, propRepeatEvery))
		e.Repeat.ID = propValue(ve, propSeriesID)
		if until, err := datetime.ParseDate(propValue(ve, propRepeatUntil)); err == nil {
			e.Repeat.EndDate = &until
		}
	}
	if errs := e.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return e, nil
}
