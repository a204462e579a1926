package reminder_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/concierge/pkg/model"
	"github.com/m-mizutani/concierge/pkg/usecase/reminder"
)

var scanNow = time.Date(2030, 6, 10, 14, 30, 0, 0, time.UTC)

func TestScanTasks(t *testing.T) {
	tasks := []*model.RecurringTask{
		{Title: "Due today", Recurrence: model.RecurrenceWeekly, DueDate: "2030-06-10"},
		{Title: "Due tomorrow", Recurrence: model.RecurrenceWeekly, DueDate: "2030-06-11"},
		{Title: "Due soon", Recurrence: model.RecurrenceWeekly, DueDate: "2030-06-15"},
		{Title: "Far out", Recurrence: model.RecurrenceWeekly, DueDate: "2030-07-10"},
		{Title: "Done", Recurrence: model.RecurrenceWeekly, DueDate: "2030-06-10", Completed: true},
		{Title: "No due date", Recurrence: model.RecurrenceDaily},
		{Title: "Overdue", Recurrence: model.RecurrenceWeekly, DueDate: "2030-06-01"},
	}

	notices := reminder.Scan(tasks, nil, scanNow, 7)
	gt.A(t, notices).Length(4)
	gt.V(t, notices[0]).Equal(`Reminder: task "Due today" is due today (2030-06-10).`)
	gt.V(t, notices[1]).Equal(`Reminder: task "Due tomorrow" is due tomorrow (2030-06-11).`)
	gt.V(t, notices[2]).Equal(`Reminder: task "Due soon" is due in 5 days (2030-06-15).`)
	gt.V(t, notices[3]).Equal(`Reminder: task "Overdue" is overdue (was due 2030-06-01).`)
}

func TestScanOverdueTaskHonorsLastExecution(t *testing.T) {
	due := "2030-06-01"
	executedAfter := &model.RecurringTask{
		Title:         "Already handled",
		Recurrence:    model.RecurrenceWeekly,
		DueDate:       due,
		LastExecution: time.Date(2030, 6, 5, 9, 0, 0, 0, time.UTC),
	}
	executedBefore := &model.RecurringTask{
		Title:         "Stale",
		Recurrence:    model.RecurrenceWeekly,
		DueDate:       due,
		LastExecution: time.Date(2030, 5, 20, 9, 0, 0, 0, time.UTC),
	}
	neverExecuted := &model.RecurringTask{
		Title:      "Untouched",
		Recurrence: model.RecurrenceWeekly,
		DueDate:    due,
	}

	notices := reminder.Scan([]*model.RecurringTask{executedAfter, executedBefore, neverExecuted}, nil, scanNow, 7)
	gt.A(t, notices).Length(2)
	gt.S(t, notices[0]).Contains("Stale")
	gt.S(t, notices[1]).Contains("Untouched")
}

func TestScanGoals(t *testing.T) {
	goals := []*model.Goal{
		{Title: "Near target", TargetDate: "2030-06-12", Status: model.GoalInProgress},
		{Title: "Past target", TargetDate: "2030-05-01", Status: model.GoalInProgress},
		{Title: "Finished", TargetDate: "2030-06-12", Status: model.GoalCompleted},
		{Title: "Abandoned", TargetDate: "2030-06-12", Status: model.GoalCancelled},
		{Title: "On hold", TargetDate: "2030-06-12", Status: model.GoalOnHold},
		{Title: "Distant", TargetDate: "2031-01-01", Status: model.GoalInProgress},
	}

	notices := reminder.Scan(nil, goals, scanNow, 7)
	gt.A(t, notices).Length(3)
	gt.V(t, notices[0]).Equal(`Reminder: goal "Near target" is due in 2 days (2030-06-12).`)
	gt.V(t, notices[1]).Equal(`Reminder: goal "Past target" is past its target date (2030-05-01).`)
	gt.V(t, notices[2]).Equal(`Reminder: goal "On hold" is due in 2 days (2030-06-12).`)
}

func TestScanSkipsUnparsableDates(t *testing.T) {
	tasks := []*model.RecurringTask{
		{Title: "Garbled", Recurrence: model.RecurrenceDaily, DueDate: "soonish"},
	}
	goals := []*model.Goal{
		{Title: "Someday", TargetDate: "whenever", Status: model.GoalInProgress},
	}
	gt.A(t, reminder.Scan(tasks, goals, scanNow, 7)).Length(0)
}

func TestDedup(t *testing.T) {
	log := []model.Message{
		model.NewAssistantMessage(`Reminder: task "Water plants" is due today (2030-06-10).`),
		model.NewUserMessage("thanks"),
	}
	notices := []string{
		`Reminder: task "Water plants" is due today (2030-06-10).`,
		`Reminder: goal "Run a marathon" is due in 2 days (2030-06-12).`,
		`Reminder: goal "Run a marathon" is due in 2 days (2030-06-12).`,
	}

	fresh := reminder.Dedup(log, notices)
	gt.A(t, fresh).Length(1)
	gt.V(t, fresh[0]).Equal(`Reminder: goal "Run a marathon" is due in 2 days (2030-06-12).`)

	// A second pass over the updated log yields nothing.
	log = append(log, model.NewAssistantMessage(fresh[0]))
	gt.A(t, reminder.Dedup(log, notices)).Length(0)
}
