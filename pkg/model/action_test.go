package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/concierge/pkg/model"
)

func TestPendingActionValidate(t *testing.T) {
	event := &model.CalendarEvent{Title: "Dentist", Date: "2030-03-10", Time: "09:00"}
	task := &model.RecurringTask{Title: "Stretch", Recurrence: model.RecurrenceDaily}

	testCases := map[string]struct {
		action  model.PendingAction
		wantErr bool
	}{
		"event with event draft": {
			action: model.PendingAction{Kind: model.ActionCreateEvent, Event: event},
		},
		"toggle reuses task draft": {
			action: model.PendingAction{Kind: model.ActionToggleTask, Task: task},
		},
		"missing draft": {
			action:  model.PendingAction{Kind: model.ActionCreateEvent},
			wantErr: true,
		},
		"wrong draft for kind": {
			action:  model.PendingAction{Kind: model.ActionPayBill, Event: event},
			wantErr: true,
		},
		"two drafts set": {
			action:  model.PendingAction{Kind: model.ActionCreateEvent, Event: event, Task: task},
			wantErr: true,
		},
		"unknown kind": {
			action:  model.PendingAction{Kind: "refuel_rocket", Event: event},
			wantErr: true,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			err := tc.action.Validate()
			if tc.wantErr {
				gt.Error(t, err)
			} else {
				gt.NoError(t, err)
			}
		})
	}
}

func TestRecurrenceValidate(t *testing.T) {
	for _, r := range []model.Recurrence{model.RecurrenceDaily, model.RecurrenceWeekly, model.RecurrenceMonthly} {
		gt.NoError(t, r.Validate())
	}
	gt.Error(t, model.Recurrence("hourly").Validate())
}

func TestGoalStatusValidate(t *testing.T) {
	gt.NoError(t, model.GoalOnHold.Validate())
	gt.Error(t, model.GoalStatus("paused").Validate())

	gt.NoError(t, model.ValidateProgress(0))
	gt.NoError(t, model.ValidateProgress(100))
	gt.Error(t, model.ValidateProgress(-1))
	gt.Error(t, model.ValidateProgress(101))
}
