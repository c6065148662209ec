package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"eventcalendar/internal/domain"
	"eventcalendar/internal/metrics"
)

// ReminderScheduler periodically looks for events entering their
// notification window and emails a reminder once per event.
type ReminderScheduler struct {
	events    EventLister
	email     domain.EmailService
	recipient string
	logger    *slog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
	loc       *time.Location

	mu       sync.Mutex
	notified map[string]struct{}
	cron     *cron.Cron
}

func NewReminderScheduler(events EventLister, email domain.EmailService, recipient string, logger *slog.Logger, m *metrics.Metrics) *ReminderScheduler {
	return &ReminderScheduler{
		events:    events,
		email:     email,
		recipient: recipient,
		logger:    logger,
		metrics:   m,
		now:       time.Now,
		notified:  make(map[string]struct{}),
	}
}

// SetLocation sets the zone event dates and times are read in. Defaults to
// the process local zone.
func (s *ReminderScheduler) SetLocation(loc *time.Location) {
	s.loc = loc
}

// Start runs Tick on the given cron schedule (e.g. "@every 1m") until Stop.
func (s *ReminderScheduler) Start(ctx context.Context, schedule string) error {
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		if _, err := s.Tick(ctx); err != nil {
			s.logger.ErrorContext(ctx, "reminder tick failed", "err", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", schedule, err)
	}
	s.cron = c
	c.Start()
	s.logger.Info("reminder scheduler started", "schedule", schedule)
	return nil
}

// Stop halts the schedule and waits for a running tick to finish.
func (s *ReminderScheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.logger.Info("reminder scheduler stopped")
}

// Tick sends every due reminder and returns how many were delivered. Failed
// deliveries are retried on the next tick.
func (s *ReminderScheduler) Tick(ctx context.Context) (int, error) {
	events, err := s.events.ListEvents(ctx)
	if err != nil {
		return 0, fmt.Errorf("list events: %w", err)
	}
	byID := make(map[string]*domain.Event, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.loc != nil {
		now = now.In(s.loc)
	}
	s.forgetPast(byID, now)

	sent := 0
	for _, n := range DueNotifications(events, now, s.notified) {
		e := byID[n.EventID]
		err := s.email.SendReminder(ctx, &domain.ReminderEmailData{
			Email:        s.recipient,
			Title:        e.Title,
			Date:         e.Date.String(),
			StartTime:    e.StartTime.String(),
			Location:     e.Location,
			MinutesUntil: n.MinutesUntil,
			Message:      n.Message,
		})
		s.metrics.ObserveReminder(err)
		if err != nil {
			s.logger.ErrorContext(ctx, "reminder delivery failed", "event_id", n.EventID, "err", err)
			continue
		}
		s.notified[n.EventID] = struct{}{}
		sent++
	}
	return sent, nil
}

// forgetPast drops notified ids whose event is gone or has started; neither
// can become due again.
func (s *ReminderScheduler) forgetPast(byID map[string]*domain.Event, now time.Time) {
	for id := range s.notified {
		e, ok := byID[id]
		if !ok || !e.Date.At(e.StartTime, now.Location()).After(now) {
			delete(s.notified, id)
		}
	}
}
