package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventcalendar/internal/datetime"
	"eventcalendar/internal/domain"
	"eventcalendar/internal/metrics"
)

type eventService struct {
	repo           domain.EventRepository
	ops            *RecurringOperations
	expander       *RecurrenceExpander
	metrics        *metrics.Metrics
	logger         *slog.Logger
	weekStart      time.Weekday
	contextTimeout time.Duration
}

func NewEventService(repo domain.EventRepository,
	ops *RecurringOperations,
	expander *RecurrenceExpander,
	m *metrics.Metrics,
	logger *slog.Logger,
	weekStart time.Weekday,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		repo:           repo,
		ops:            ops,
		expander:       expander,
		metrics:        m,
		logger:         logger,
		weekStart:      weekStart,
		contextTimeout: timeout,
	}
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	events, err := s.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	e := findEventByID(events, id)
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (s *eventService) FindOverlaps(ctx context.Context, candidate *domain.Event) ([]*domain.Event, error) {
	events, err := s.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	return FindOverlappingEvents(candidate, events), nil
}

func invalid(errs []string) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidEvent, strings.Join(errs, "; "))
}

// SubmitEvent saves a form submission. Edits are overlap-checked before
// anything else; recurring creates skip the overlap check entirely.
func (s *eventService) SubmitEvent(ctx context.Context, in domain.SubmitEventInput) (*domain.SubmitResult, error) {
	if in.Event == nil {
		return nil, fmt.Errorf("%w: event is required", domain.ErrInvalidEvent)
	}
	draft := in.Event.Clone()
	draft.Normalize()
	if errs := draft.Validate(); len(errs) > 0 {
		return nil, invalid(errs)
	}

	events, err := s.ListEvents(ctx)
	if err != nil {
		return nil, err
	}

	if draft.ID != "" {
		return s.submitEdit(ctx, events, draft, in)
	}

	if draft.IsRecurring() {
		created, err := s.CreateRepeatEvent(ctx, draft)
		if err != nil {
			return nil, err
		}
		return &domain.SubmitResult{Events: created}, nil
	}

	if !in.Force {
		if overlaps := FindOverlappingEvents(draft, events); len(overlaps) > 0 {
			return &domain.SubmitResult{Events: []*domain.Event{}, Overlaps: overlaps}, nil
		}
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	created, err := s.repo.CreateEvent(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return &domain.SubmitResult{Events: []*domain.Event{created}}, nil
}

func (s *eventService) submitEdit(ctx context.Context, events []*domain.Event, draft *domain.Event, in domain.SubmitEventInput) (*domain.SubmitResult, error) {
	stored := findEventByID(events, draft.ID)
	if stored != nil {
		// The form never edits recurrence; the stored rule drives series detection.
		draft.Repeat = stored.Repeat
	}
	if !in.Force {
		if overlaps := FindOverlappingEvents(draft, events); len(overlaps) > 0 {
			return &domain.SubmitResult{Events: []*domain.Event{}, Overlaps: overlaps}, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if stored != nil && stored.IsRecurring() && in.SingleOnly != nil {
		if err := s.ops.HandleRecurringEdit(ctx, events, draft, *in.SingleOnly); err != nil {
			return nil, err
		}
		return &domain.SubmitResult{Events: []*domain.Event{draft}}, nil
	}
	if err := s.repo.UpdateEvent(ctx, draft.ID, draft); err != nil {
		return nil, fmt.Errorf("update event %s: %w", draft.ID, err)
	}
	return &domain.SubmitResult{Events: []*domain.Event{draft}}, nil
}

// CreateRepeatEvent expands draft and persists the instances in one batch.
func (s *eventService) CreateRepeatEvent(ctx context.Context, draft *domain.Event) ([]*domain.Event, error) {
	draft = draft.Clone()
	draft.Normalize()
	if errs := draft.Validate(); len(errs) > 0 {
		return nil, invalid(errs)
	}
	instances, err := s.expander.Expand(draft)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveExpansion(len(instances))

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	if err := s.repo.CreateEventsBatch(ctx, instances); err != nil {
		return nil, fmt.Errorf("create %d recurring events: %w", len(instances), err)
	}
	s.logger.InfoContext(ctx, "recurring events created",
		"series_id", instances[0].Repeat.ID, "count", len(instances), "type", draft.Repeat.Type)
	return instances, nil
}

func (s *eventService) EditRecurring(ctx context.Context, updated *domain.Event, singleOnly bool) error {
	events, err := s.ListEvents(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.ops.HandleRecurringEdit(ctx, events, updated, singleOnly)
}

func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.repo.DeleteEvent(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event %s: %w", id, err)
	}
	return nil
}

func (s *eventService) DeleteRecurring(ctx context.Context, id string, singleOnly bool) error {
	events, err := s.ListEvents(ctx)
	if err != nil {
		return err
	}
	target := findEventByID(events, id)
	if target == nil {
		return domain.ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.ops.HandleRecurringDelete(ctx, events, target, singleOnly)
}

// MoveEvent handles dropping an event on another day. Recurring events need
// a single/series decision; without one the pending edit is returned and
// nothing is saved.
func (s *eventService) MoveEvent(ctx context.Context, id string, target datetime.Date, singleOnly *bool) (*domain.MoveResult, error) {
	events, err := s.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	e := findEventByID(events, id)
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if e.Date == target {
		return &domain.MoveResult{Moved: false}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if e.IsRecurring() {
		if singleOnly == nil {
			return &domain.MoveResult{
				Pending: domain.AwaitingEditDecision{Event: e, MoveTarget: &target},
			}, nil
		}
		moved := e.Clone()
		moved.Date = target
		if err := s.ops.HandleRecurringEdit(ctx, events, moved, *singleOnly); err != nil {
			return nil, err
		}
		return &domain.MoveResult{Moved: true}, nil
	}

	moved := e.Clone()
	moved.Date = target
	if err := s.repo.UpdateEvent(ctx, moved.ID, moved); err != nil {
		return nil, fmt.Errorf("move event %s: %w", moved.ID, err)
	}
	return &domain.MoveResult{Moved: true}, nil
}

func (s *eventService) Search(ctx context.Context, q domain.SearchQuery) ([]*domain.Event, int, error) {
	events, err := s.ListEvents(ctx)
	if err != nil {
		return nil, 0, err
	}
	filtered := SearchEvents(events, q.Term)
	if !q.Current.IsZero() {
		filtered = FilterByView(filtered, q.View, q.Current, s.weekStart)
	}
	sortByStart(filtered)
	return domain.Paginate(filtered, q.Pagination), len(filtered), nil
}

func (s *eventService) Notifications(ctx context.Context, now time.Time) ([]domain.Notification, error) {
	events, err := s.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	return DueNotifications(events, now, nil), nil
}
