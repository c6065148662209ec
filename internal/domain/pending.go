package domain

import "eventcalendar/internal/datetime"

// PendingAction is the single slot of an operation on a recurring event that
// waits for the user to choose between "this instance" and "the whole series".
// It is one of NoPendingAction, AwaitingEditDecision or AwaitingDeleteDecision.
type PendingAction interface {
	pendingAction()
	Kind() string
}

// NoPendingAction means nothing is waiting for a decision.
type NoPendingAction struct{}

// AwaitingEditDecision holds an edit of a recurring event. MoveTarget is set
// when the edit came from dropping the event on another day.
type AwaitingEditDecision struct {
	Event      *Event         `json:"event"`
	MoveTarget *datetime.Date `json:"move_target,omitempty"`
}

// AwaitingDeleteDecision holds a delete of a recurring event.
type AwaitingDeleteDecision struct {
	Event *Event `json:"event"`
}

func (NoPendingAction) pendingAction()        {}
func (AwaitingEditDecision) pendingAction()   {}
func (AwaitingDeleteDecision) pendingAction() {}

func (NoPendingAction) Kind() string        { return "none" }
func (AwaitingEditDecision) Kind() string   { return "edit" }
func (AwaitingDeleteDecision) Kind() string { return "delete" }
