package repository

import (
	"context"
	"time"

	"github.com/m-mizutani/concierge/pkg/model"
)

// Memory is an in-memory Repository, mainly for tests.
type Memory struct {
	events   []*model.CalendarEvent
	tasks    []*model.RecurringTask
	payments []*model.PaymentRecord
	goals    []*model.Goal
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) LoadEvents(ctx context.Context) ([]*model.CalendarEvent, error) {
	return model.NormalizeEvents(copySlice(m.events), time.Now()), nil
}

func (m *Memory) SaveEvents(ctx context.Context, events []*model.CalendarEvent) error {
	m.events = copySlice(events)
	return nil
}

func (m *Memory) LoadTasks(ctx context.Context) ([]*model.RecurringTask, error) {
	return model.NormalizeTasks(copySlice(m.tasks)), nil
}

func (m *Memory) SaveTasks(ctx context.Context, tasks []*model.RecurringTask) error {
	m.tasks = copySlice(tasks)
	return nil
}

func (m *Memory) LoadPayments(ctx context.Context) ([]*model.PaymentRecord, error) {
	return model.NormalizePayments(copySlice(m.payments)), nil
}

func (m *Memory) SavePayments(ctx context.Context, payments []*model.PaymentRecord) error {
	m.payments = copySlice(payments)
	return nil
}

func (m *Memory) LoadGoals(ctx context.Context) ([]*model.Goal, error) {
	return model.NormalizeGoals(copySlice(m.goals), time.Now()), nil
}

func (m *Memory) SaveGoals(ctx context.Context, goals []*model.Goal) error {
	m.goals = copySlice(goals)
	return nil
}

func copySlice[T any](src []T) []T {
	dst := make([]T, len(src))
	copy(dst, src)
	return dst
}
