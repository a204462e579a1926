package repository

import (
	"context"

	"github.com/m-mizutani/concierge/pkg/model"
)

// Repository is the durable store for the four entity collections. Each
// collection occupies an independent slot holding the whole ordered sequence;
// every save overwrites the slot. Load applies the model normalization pass,
// so callers always see fully-typed, sorted records.
type Repository interface {
	LoadEvents(ctx context.Context) ([]*model.CalendarEvent, error)
	SaveEvents(ctx context.Context, events []*model.CalendarEvent) error

	LoadTasks(ctx context.Context) ([]*model.RecurringTask, error)
	SaveTasks(ctx context.Context, tasks []*model.RecurringTask) error

	LoadPayments(ctx context.Context) ([]*model.PaymentRecord, error)
	SavePayments(ctx context.Context, payments []*model.PaymentRecord) error

	LoadGoals(ctx context.Context) ([]*model.Goal, error)
	SaveGoals(ctx context.Context, goals []*model.Goal) error
}

// Slot names shared by the file and Firestore backends.
const (
	slotEvents   = "events"
	slotTasks    = "tasks"
	slotPayments = "payments"
	slotGoals    = "goals"
)
