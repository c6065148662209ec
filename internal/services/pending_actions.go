package services

import (
	"context"
	"fmt"

	"eventcalendar/internal/datetime"
	"eventcalendar/internal/domain"
)

// EventLister supplies the current event snapshot.
type EventLister interface {
	ListEvents(ctx context.Context) ([]*domain.Event, error)
}

// ConfirmOutcome tells the caller what a confirmed decision did.
type ConfirmOutcome string

const (
	OutcomeEditModeSelected ConfirmOutcome = "edit_mode_selected"
	OutcomeMoved            ConfirmOutcome = "moved"
	OutcomeDeleted          ConfirmOutcome = "deleted"
)

// PendingActions holds at most one operation on a recurring event awaiting
// the user's single/series decision. It is not safe for concurrent use; one
// instance backs one interactive session.
type PendingActions struct {
	ops      *RecurringOperations
	source   EventLister
	pending  domain.PendingAction
	editMode *bool
}

func NewPendingActions(ops *RecurringOperations, source EventLister) *PendingActions {
	return &PendingActions{
		ops:     ops,
		source:  source,
		pending: domain.NoPendingAction{},
	}
}

// Pending returns the operation waiting for a decision.
func (p *PendingActions) Pending() domain.PendingAction {
	return p.pending
}

// RequestEdit queues an edit of e. It returns false when e is not recurring
// and can be edited without asking.
func (p *PendingActions) RequestEdit(e *domain.Event) bool {
	if !e.IsRecurring() {
		return false
	}
	p.pending = domain.AwaitingEditDecision{Event: e}
	return true
}

// RequestMove queues moving e to target. It returns false when e is not
// recurring and can be moved without asking.
func (p *PendingActions) RequestMove(e *domain.Event, target datetime.Date) bool {
	if !e.IsRecurring() {
		return false
	}
	p.pending = domain.AwaitingEditDecision{Event: e, MoveTarget: &target}
	return true
}

// RequestDelete queues a delete of e. It returns false when e is not
// recurring and can be deleted without asking.
func (p *PendingActions) RequestDelete(e *domain.Event) bool {
	if !e.IsRecurring() {
		return false
	}
	p.pending = domain.AwaitingDeleteDecision{Event: e}
	return true
}

// Cancel drops the pending operation.
func (p *PendingActions) Cancel() {
	p.pending = domain.NoPendingAction{}
}

// TakeEditMode returns the decision recorded by confirming a plain edit and
// clears it. ok is false when no decision was recorded.
func (p *PendingActions) TakeEditMode() (singleOnly bool, ok bool) {
	if p.editMode == nil {
		return false, false
	}
	singleOnly = *p.editMode
	p.editMode = nil
	return singleOnly, true
}

// Confirm applies singleOnly to the pending operation and clears the slot.
// A plain edit only records the decision for the form that follows; moves
// and deletes run immediately.
func (p *PendingActions) Confirm(ctx context.Context, singleOnly bool) (ConfirmOutcome, error) {
	pending := p.pending
	p.pending = domain.NoPendingAction{}

	switch action := pending.(type) {
	case domain.AwaitingEditDecision:
		if action.MoveTarget == nil {
			p.editMode = &singleOnly
			return OutcomeEditModeSelected, nil
		}
		events, err := p.source.ListEvents(ctx)
		if err != nil {
			return "", fmt.Errorf("list events: %w", err)
		}
		moved := action.Event.Clone()
		moved.Date = *action.MoveTarget
		if err := p.ops.HandleRecurringEdit(ctx, events, moved, singleOnly); err != nil {
			return "", err
		}
		return OutcomeMoved, nil
	case domain.AwaitingDeleteDecision:
		events, err := p.source.ListEvents(ctx)
		if err != nil {
			return "", fmt.Errorf("list events: %w", err)
		}
		if err := p.ops.HandleRecurringDelete(ctx, events, action.Event, singleOnly); err != nil {
			return "", err
		}
		return OutcomeDeleted, nil
	default:
		return "", domain.ErrNoPendingAction
	}
}
