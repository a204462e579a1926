package model

import (
	"github.com/m-mizutani/goerr/v2"
)

var ErrInvalidAction = goerr.New("invalid pending action")

// ActionKind tags the variant held by a PendingAction.
type ActionKind string

const (
	ActionCreateEvent ActionKind = "create_event"
	ActionCreateTask  ActionKind = "create_task"
	ActionPayBill     ActionKind = "pay_bill"
	ActionCreateGoal  ActionKind = "create_goal"
	ActionToggleTask  ActionKind = "toggle_task"
)

// PendingAction is the single in-flight action awaiting explicit user
// approval. Exactly one draft pointer matching Kind must be set;
// ActionToggleTask reuses the Task draft, holding the target record with its
// completed flag already flipped. Source is nil for UI-originated actions.
type PendingAction struct {
	Kind    ActionKind
	Event   *CalendarEvent
	Task    *RecurringTask
	Payment *PaymentRecord
	Goal    *Goal
	Source  *Intent
}

// Validate checks that the kind and draft payload agree.
func (a *PendingAction) Validate() error {
	var ok bool
	switch a.Kind {
	case ActionCreateEvent:
		ok = a.Event != nil && a.Task == nil && a.Payment == nil && a.Goal == nil
	case ActionCreateTask, ActionToggleTask:
		ok = a.Task != nil && a.Event == nil && a.Payment == nil && a.Goal == nil
	case ActionPayBill:
		ok = a.Payment != nil && a.Event == nil && a.Task == nil && a.Goal == nil
	case ActionCreateGoal:
		ok = a.Goal != nil && a.Event == nil && a.Task == nil && a.Payment == nil
	}
	if !ok {
		return goerr.Wrap(ErrInvalidAction, "kind/draft mismatch", goerr.V("kind", a.Kind))
	}
	return nil
}
