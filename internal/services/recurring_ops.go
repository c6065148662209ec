package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"

	"eventcalendar/internal/domain"
	"eventcalendar/internal/metrics"
)

// Scopes reported for recurring operations.
const (
	scopeStale  = "stale"
	scopeSingle = "single"
	scopeSeries = "series"
	scopeShift  = "shift"
	scopeEach   = "each"
)

// RefreshFunc asks the caller to reload its events from the source of truth.
type RefreshFunc func(ctx context.Context)

// RecurringOperations applies a single-vs-series decision for edits and
// deletes of recurring events, translating it into repository calls. The
// events slices it receives are read-only snapshots; every mutation goes
// through the repository and is followed by a refresh request.
type RecurringOperations struct {
	repo    domain.EventRepository
	logger  *slog.Logger
	metrics *metrics.Metrics
	refresh RefreshFunc
}

func NewRecurringOperations(repo domain.EventRepository, logger *slog.Logger, m *metrics.Metrics, refresh RefreshFunc) *RecurringOperations {
	return &RecurringOperations{
		repo:    repo,
		logger:  logger,
		metrics: m,
		refresh: refresh,
	}
}

// HandleRecurringEdit persists updated according to the user's decision.
// With singleOnly, or when the stored original has no siblings, the instance
// is detached from its series. Otherwise the whole series is updated: a
// changed date shifts every sibling by the same number of days in one batch,
// an unchanged date updates only the shared metadata.
func (o *RecurringOperations) HandleRecurringEdit(ctx context.Context, events []*domain.Event, updated *domain.Event, singleOnly bool) (err error) {
	scope := scopeSingle
	defer func() { o.finish(ctx, "edit", scope, err) }()

	original := findEventByID(events, updated.ID)
	if original == nil {
		scope = scopeStale
		o.logger.WarnContext(ctx, "edited event not in snapshot, updating directly", "event_id", updated.ID)
		if err := o.repo.UpdateEvent(ctx, updated.ID, updated); err != nil {
			return fmt.Errorf("update event %s: %w", updated.ID, err)
		}
		return nil
	}

	related := FindRelatedRecurringEvents(original, events)
	if len(related) == 0 || singleOnly {
		single := updated.Detached()
		if err := o.repo.UpdateEvent(ctx, single.ID, single); err != nil {
			return fmt.Errorf("update event %s: %w", single.ID, err)
		}
		return nil
	}

	fields := domain.SeriesUpdateFrom(updated)
	if delta := original.Date.DaysUntil(updated.Date); delta != 0 {
		scope = scopeShift
		moved := make([]*domain.Event, 0, len(related))
		for _, e := range related {
			c := e.Clone()
			fields.ApplyTo(c)
			c.Date = e.Date.AddDays(delta)
			moved = append(moved, c)
		}
		if err := o.repo.UpdateEventsBatch(ctx, moved); err != nil {
			return fmt.Errorf("shift series by %d days: %w", delta, err)
		}
		return nil
	}

	scope = scopeSeries
	if seriesID := original.Repeat.ID; seriesID != "" {
		if err := o.repo.UpdateSeriesBySeriesID(ctx, seriesID, fields); err != nil {
			return fmt.Errorf("update series %s: %w", seriesID, err)
		}
		return nil
	}

	scope = scopeEach
	return o.each(ctx, "update", related, func(ctx context.Context, e *domain.Event) error {
		c := e.Clone()
		fields.ApplyTo(c)
		return o.repo.UpdateEvent(ctx, c.ID, c)
	})
}

// HandleRecurringDelete deletes target alone or together with its series.
func (o *RecurringOperations) HandleRecurringDelete(ctx context.Context, events []*domain.Event, target *domain.Event, singleOnly bool) (err error) {
	scope := scopeSingle
	defer func() { o.finish(ctx, "delete", scope, err) }()

	related := FindRelatedRecurringEvents(target, events)
	if len(related) == 0 || singleOnly {
		if err := o.repo.DeleteEvent(ctx, target.ID); err != nil {
			return fmt.Errorf("delete event %s: %w", target.ID, err)
		}
		return nil
	}

	scope = scopeSeries
	if seriesID := target.Repeat.ID; seriesID != "" {
		if err := o.repo.DeleteSeriesBySeriesID(ctx, seriesID); err != nil {
			return fmt.Errorf("delete series %s: %w", seriesID, err)
		}
		return nil
	}

	scope = scopeEach
	return o.each(ctx, "delete", related, func(ctx context.Context, e *domain.Event) error {
		return o.repo.DeleteEvent(ctx, e.ID)
	})
}

// each runs fn for every event concurrently and waits for all of them. The
// result is nil only if every call succeeded; otherwise it is a
// *multierror.Error listing each failed event.
func (o *RecurringOperations) each(ctx context.Context, op string, events []*domain.Event, fn func(context.Context, *domain.Event) error) error {
	var g multierror.Group
	for _, e := range events {
		g.Go(func() error {
			if err := fn(ctx, e); err != nil {
				o.logger.ErrorContext(ctx, "series item failed", "op", op, "event_id", e.ID, "err", err)
				return fmt.Errorf("%s event %s: %w", op, e.ID, err)
			}
			return nil
		})
	}
	return g.Wait().ErrorOrNil()
}

func (o *RecurringOperations) finish(ctx context.Context, op, scope string, err error) {
	o.metrics.ObserveSeriesOperation(op, scope, err)
	if err != nil {
		o.logger.ErrorContext(ctx, "recurring operation failed", "op", op, "scope", scope, "err", err)
	}
	if o.refresh != nil {
		o.refresh(ctx)
	}
}
