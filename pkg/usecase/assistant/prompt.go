package assistant

import (
	"fmt"

	"github.com/m-mizutani/concierge/pkg/model"
)

// eventAtLayout renders an event's date and time for confirmation prompts.
const eventAtLayout = "Monday, January 2, 2006 at 15:04"

// ConfirmationPrompt renders the human-readable confirmation question for a
// pending action. The text is derived only from the kind and draft.
func ConfirmationPrompt(action *model.PendingAction) string {
	switch action.Kind {
	case model.ActionCreateEvent:
		return fmt.Sprintf("Schedule event %q for %s?", action.Event.Title, formatEventAt(action.Event))

	case model.ActionCreateTask:
		prompt := fmt.Sprintf("Create recurring task %q to repeat %s", action.Task.Title, action.Task.Recurrence)
		if action.Task.DueDate != "" {
			prompt += fmt.Sprintf(" with due date %s", action.Task.DueDate)
		}
		return prompt + "?"

	case model.ActionPayBill:
		return fmt.Sprintf("Initiate payment of %s to %s with due date %s?",
			FormatCurrency(action.Payment.Amount), action.Payment.Biller, action.Payment.DueDate)

	case model.ActionCreateGoal:
		prompt := fmt.Sprintf("Set goal: %q", action.Goal.Title)
		if action.Goal.Description != "" {
			prompt += fmt.Sprintf(" ('%s')", action.Goal.Description)
		}
		return prompt + fmt.Sprintf(" with target date %s?", action.Goal.TargetDate)

	case model.ActionToggleTask:
		state := "not completed"
		if action.Task.Completed {
			state = "completed"
		}
		return fmt.Sprintf("Are you sure you want to mark %q as %s?", action.Task.Title, state)

	default:
		return ""
	}
}

// FormatCurrency renders a positive decimal amount as currency.
func FormatCurrency(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

func formatEventAt(ev *model.CalendarEvent) string {
	at, err := ev.At()
	if err != nil {
		return ev.Date + " " + ev.Time
	}
	return at.Format(eventAtLayout)
}
