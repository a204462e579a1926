package assistant_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/concierge/pkg/model"
	"github.com/m-mizutani/concierge/pkg/usecase/assistant"
)

func TestConfirmationPrompt(t *testing.T) {
	testCases := map[string]struct {
		action *model.PendingAction
		expect string
	}{
		"event": {
			action: &model.PendingAction{
				Kind:  model.ActionCreateEvent,
				Event: &model.CalendarEvent{Title: "Dentist", Date: "2030-03-10", Time: "09:00"},
			},
			expect: `Schedule event "Dentist" for Sunday, March 10, 2030 at 09:00?`,
		},
		"task without due date": {
			action: &model.PendingAction{
				Kind: model.ActionCreateTask,
				Task: &model.RecurringTask{Title: "Stretch", Recurrence: model.RecurrenceDaily},
			},
			expect: `Create recurring task "Stretch" to repeat daily?`,
		},
		"task with due date": {
			action: &model.PendingAction{
				Kind: model.ActionCreateTask,
				Task: &model.RecurringTask{Title: "Report", Recurrence: model.RecurrenceMonthly, DueDate: "2030-05-01"},
			},
			expect: `Create recurring task "Report" to repeat monthly with due date 2030-05-01?`,
		},
		"payment": {
			action: &model.PendingAction{
				Kind:    model.ActionPayBill,
				Payment: &model.PaymentRecord{Biller: "Acme Power", Amount: 42.5, DueDate: "2030-04-01"},
			},
			expect: "Initiate payment of $42.50 to Acme Power with due date 2030-04-01?",
		},
		"goal without description": {
			action: &model.PendingAction{
				Kind: model.ActionCreateGoal,
				Goal: &model.Goal{Title: "Run a marathon", TargetDate: "2030-10-01"},
			},
			expect: `Set goal: "Run a marathon" with target date 2030-10-01?`,
		},
		"goal with description": {
			action: &model.PendingAction{
				Kind: model.ActionCreateGoal,
				Goal: &model.Goal{Title: "Run a marathon", Description: "finish under 4 hours", TargetDate: "2030-10-01"},
			},
			expect: `Set goal: "Run a marathon" ('finish under 4 hours') with target date 2030-10-01?`,
		},
		"toggle to completed": {
			action: &model.PendingAction{
				Kind: model.ActionToggleTask,
				Task: &model.RecurringTask{Title: "Water plants", Completed: true},
			},
			expect: `Are you sure you want to mark "Water plants" as completed?`,
		},
		"toggle to not completed": {
			action: &model.PendingAction{
				Kind: model.ActionToggleTask,
				Task: &model.RecurringTask{Title: "Water plants", Completed: false},
			},
			expect: `Are you sure you want to mark "Water plants" as not completed?`,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			gt.V(t, assistant.ConfirmationPrompt(tc.action)).Equal(tc.expect)
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	gt.V(t, assistant.FormatCurrency(42.5)).Equal("$42.50")
	gt.V(t, assistant.FormatCurrency(1200)).Equal("$1200.00")
}
