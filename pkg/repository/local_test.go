package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/concierge/pkg/model"
	"github.com/m-mizutani/concierge/pkg/repository"
)

func TestLocalRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, err := repository.NewLocal(t.TempDir())
	gt.NoError(t, err)

	events := []*model.CalendarEvent{
		{ID: model.NewEventID(), Title: "Dentist", Date: "2030-03-10", Time: "09:00"},
		{ID: model.NewEventID(), Title: "Standup", Date: "2030-03-08", Time: "10:00"},
	}
	gt.NoError(t, repo.SaveEvents(ctx, events))

	got, err := repo.LoadEvents(ctx)
	gt.NoError(t, err)
	gt.A(t, got).Length(2)
	// Load sorts ascending by date and time.
	gt.V(t, got[0].Title).Equal("Standup")
	gt.V(t, got[1].Title).Equal("Dentist")
}

func TestLocalMissingFilesAreEmpty(t *testing.T) {
	ctx := context.Background()
	repo, err := repository.NewLocal(t.TempDir())
	gt.NoError(t, err)

	events, err := repo.LoadEvents(ctx)
	gt.NoError(t, err)
	gt.A(t, events).Length(0)

	tasks, err := repo.LoadTasks(ctx)
	gt.NoError(t, err)
	gt.A(t, tasks).Length(0)

	payments, err := repo.LoadPayments(ctx)
	gt.NoError(t, err)
	gt.A(t, payments).Length(0)

	goals, err := repo.LoadGoals(ctx)
	gt.NoError(t, err)
	gt.A(t, goals).Length(0)
}

func TestLocalFiltersPastEvents(t *testing.T) {
	ctx := context.Background()
	repo, err := repository.NewLocal(t.TempDir())
	gt.NoError(t, err)

	gt.NoError(t, repo.SaveEvents(ctx, []*model.CalendarEvent{
		{ID: "old", Title: "Expired", Date: "2020-01-01", Time: "09:00"},
		{ID: "new", Title: "Upcoming", Date: "2030-01-01", Time: "09:00"},
	}))

	events, err := repo.LoadEvents(ctx)
	gt.NoError(t, err)
	gt.A(t, events).Length(1)
	gt.V(t, events[0].Title).Equal("Upcoming")
}

func TestLocalNormalizesStoredGoals(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo, err := repository.NewLocal(dir)
	gt.NoError(t, err)

	// A hand-edited file may omit status and creation date.
	raw := `[{"id":"g1","title":"Read more","targetDate":"2030-12-01","progress":-3}]`
	gt.NoError(t, os.WriteFile(filepath.Join(dir, "goals.json"), []byte(raw), 0o644))

	goals, err := repo.LoadGoals(ctx)
	gt.NoError(t, err)
	gt.A(t, goals).Length(1)
	gt.V(t, goals[0].Status).Equal(model.GoalNotStarted)
	gt.V(t, goals[0].Progress).Equal(0)
	gt.False(t, goals[0].CreatedAt.IsZero())
}

func TestLocalSaveOverwritesSlot(t *testing.T) {
	ctx := context.Background()
	repo, err := repository.NewLocal(t.TempDir())
	gt.NoError(t, err)

	first := &model.RecurringTask{ID: "1", Title: "First", Recurrence: model.RecurrenceDaily}
	second := &model.RecurringTask{ID: "2", Title: "Second", Recurrence: model.RecurrenceWeekly}

	gt.NoError(t, repo.SaveTasks(ctx, []*model.RecurringTask{first, second}))
	gt.NoError(t, repo.SaveTasks(ctx, []*model.RecurringTask{second}))

	tasks, err := repo.LoadTasks(ctx)
	gt.NoError(t, err)
	gt.A(t, tasks).Length(1)
	gt.V(t, tasks[0].ID).Equal(model.TaskID("2"))
}

func TestLocalPaymentsSortedNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo, err := repository.NewLocal(t.TempDir())
	gt.NoError(t, err)

	older := &model.PaymentRecord{ID: "p1", Biller: "Acme", Amount: 10,
		PaidAt: time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)}
	newer := &model.PaymentRecord{ID: "p2", Biller: "Acme", Amount: 20,
		PaidAt: time.Date(2030, 2, 1, 12, 0, 0, 0, time.UTC)}
	gt.NoError(t, repo.SavePayments(ctx, []*model.PaymentRecord{older, newer}))

	payments, err := repo.LoadPayments(ctx)
	gt.NoError(t, err)
	gt.A(t, payments).Length(2)
	gt.V(t, payments[0].ID).Equal(model.PaymentID("p2"))
	gt.V(t, payments[1].ID).Equal(model.PaymentID("p1"))
}
