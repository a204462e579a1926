package reminder

import (
	"fmt"
	"time"

	"github.com/m-mizutani/concierge/pkg/model"
)

// Scan is a pure function over the task and goal collections producing
// due-soon and overdue reminder texts. Completed tasks and completed or
// cancelled goals are excluded. Output order is stable: tasks first, then
// goals, each in input order.
func Scan(tasks []*model.RecurringTask, goals []*model.Goal, now time.Time, thresholdDays int) []string {
	var notices []string

	for _, task := range tasks {
		if task == nil || task.Completed || task.DueDate == "" {
			continue
		}
		due, err := time.Parse(model.DateLayout, task.DueDate)
		if err != nil {
			continue
		}
		days := daysUntil(now, due)

		switch {
		case days >= 0 && days <= thresholdDays:
			notices = append(notices, dueText("task", task.Title, days, task.DueDate))
		case days < 0 && (task.LastExecution.IsZero() || task.LastExecution.Before(due)):
			notices = append(notices, fmt.Sprintf("Reminder: task %q is overdue (was due %s).", task.Title, task.DueDate))
		}
	}

	for _, goal := range goals {
		if goal == nil || goal.Status == model.GoalCompleted || goal.Status == model.GoalCancelled {
			continue
		}
		target, err := time.Parse(model.DateLayout, goal.TargetDate)
		if err != nil {
			continue
		}
		days := daysUntil(now, target)

		switch {
		case days >= 0 && days <= thresholdDays:
			notices = append(notices, dueText("goal", goal.Title, days, goal.TargetDate))
		case days < 0:
			notices = append(notices, fmt.Sprintf("Reminder: goal %q is past its target date (%s).", goal.Title, goal.TargetDate))
		}
	}

	return notices
}

// Dedup drops notices whose exact text already appears in the conversation
// log, and collapses duplicates within the batch itself.
func Dedup(log []model.Message, notices []string) []string {
	seen := make(map[string]bool, len(log))
	for _, msg := range log {
		seen[msg.Content] = true
	}

	var fresh []string
	for _, notice := range notices {
		if seen[notice] {
			continue
		}
		seen[notice] = true
		fresh = append(fresh, notice)
	}
	return fresh
}

func dueText(kind, title string, days int, date string) string {
	switch days {
	case 0:
		return fmt.Sprintf("Reminder: %s %q is due today (%s).", kind, title, date)
	case 1:
		return fmt.Sprintf("Reminder: %s %q is due tomorrow (%s).", kind, title, date)
	default:
		return fmt.Sprintf("Reminder: %s %q is due in %d days (%s).", kind, title, days, date)
	}
}

// daysUntil counts whole calendar days from now's date to the target date.
func daysUntil(now, target time.Time) int {
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	targetDay := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)
	return int(targetDay.Sub(nowDay).Hours() / 24)
}
