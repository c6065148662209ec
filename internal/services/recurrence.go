package services

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"eventcalendar/internal/datetime"
	"eventcalendar/internal/domain"
)

const (
	defaultHorizonDays    = 365
	defaultMaxOccurrences = 1000
)

// RecurrencePolicy bounds the expansion of open-ended series.
type RecurrencePolicy struct {
	// CapDate is the last date an open-ended series may reach. When zero the
	// cap is HorizonDays after today.
	CapDate datetime.Date
	// HorizonDays is used when CapDate is zero. Defaults to 365.
	HorizonDays int
	// MaxOccurrences truncates any single expansion. Defaults to 1000.
	MaxOccurrences int
}

// CapFor returns the hard stop date for an open-ended series expanded on today.
func (p RecurrencePolicy) CapFor(today datetime.Date) datetime.Date {
	if !p.CapDate.IsZero() {
		return p.CapDate
	}
	days := p.HorizonDays
	if days <= 0 {
		days = defaultHorizonDays
	}
	return today.AddDays(days)
}

func (p RecurrencePolicy) maxOccurrences() int {
	if p.MaxOccurrences <= 0 {
		return defaultMaxOccurrences
	}
	return p.MaxOccurrences
}

// RecurrenceExpander materializes a recurring draft into concrete instances.
type RecurrenceExpander struct {
	policy RecurrencePolicy
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

func NewRecurrenceExpander(policy RecurrencePolicy, logger *slog.Logger) *RecurrenceExpander {
	return &RecurrenceExpander{
		policy: policy,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

func frequency(t domain.RepeatType) (rrule.Frequency, error) {
	switch t {
	case domain.RepeatDaily:
		return rrule.DAILY, nil
	case domain.RepeatWeekly:
		return rrule.WEEKLY, nil
	case domain.RepeatMonthly:
		return rrule.MONTHLY, nil
	case domain.RepeatYearly:
		return rrule.YEARLY, nil
	default:
		return 0, fmt.Errorf("%w: type %q does not repeat", domain.ErrInvalidRepeat, t)
	}
}

// Dates returns the occurrence dates of rule starting at start, inclusive of
// an occurrence landing exactly on the end date. Monthly occurrences on a
// day the target month lacks (e.g. the 31st) and yearly Feb 29 occurrences
// in common years are skipped, never clamped.
func (x *RecurrenceExpander) Dates(rule domain.RepeatRule, start datetime.Date) ([]datetime.Date, error) {
	freq, err := frequency(rule.Type)
	if err != nil {
		return nil, err
	}
	if rule.Interval < 1 {
		return nil, fmt.Errorf("%w: interval must be at least 1", domain.ErrInvalidRepeat)
	}
	until := x.policy.CapFor(datetime.DateOf(x.now()))
	if rule.EndDate != nil {
		until = *rule.EndDate
	}
	if until.Before(start) {
		return nil, fmt.Errorf("%w: series ends %s before it starts %s", domain.ErrInvalidRepeat, until, start)
	}

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:     freq,
		Interval: rule.Interval,
		Dtstart:  start.Time(),
		Until:    until.Time(),
	})
	if err != nil {
		return nil, fmt.Errorf("build rrule: %w", err)
	}

	limit := x.policy.maxOccurrences()
	out := make([]datetime.Date, 0)
	next := r.Iterator()
	for t, ok := next(); ok; t, ok = next() {
		if len(out) == limit {
			x.logger.Warn("recurrence truncated at occurrence cap",
				"start", start.String(), "type", rule.Type, "cap", limit)
			break
		}
		out = append(out, datetime.DateOf(t))
	}
	return out, nil
}

// Expand copies draft onto every occurrence date. Each instance gets a fresh
// ID; all share one series ID generated per call.
func (x *RecurrenceExpander) Expand(draft *domain.Event) ([]*domain.Event, error) {
	dates, err := x.Dates(draft.Repeat, draft.Date)
	if err != nil {
		return nil, err
	}
	seriesID := x.newID()
	events := make([]*domain.Event, 0, len(dates))
	for _, d := range dates {
		e := draft.Clone()
		e.ID = x.newID()
		e.Date = d
		e.Repeat.ID = seriesID
		events = append(events, e)
	}
	return events, nil
}
