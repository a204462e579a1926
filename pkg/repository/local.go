package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/concierge/pkg/model"
)

// Local is a file-backed Repository. Each slot is one JSON file under the
// data directory holding the whole collection; every save rewrites the file.
type Local struct {
	dir string
}

// NewLocal creates a file-backed repository rooted at dir, creating the
// directory if needed.
func NewLocal(dir string) (*Local, error) {
	if dir == "" {
		return nil, goerr.New("data directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, goerr.Wrap(err, "failed to create data directory", goerr.V("dir", dir))
	}
	return &Local{dir: dir}, nil
}

func (l *Local) path(slot string) string {
	return filepath.Join(l.dir, slot+".json")
}

func loadSlot[T any](l *Local, slot string) ([]T, error) {
	data, err := os.ReadFile(l.path(slot))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to read slot", goerr.V("slot", slot))
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, goerr.Wrap(err, "failed to parse slot", goerr.V("slot", slot))
	}
	return records, nil
}

func saveSlot[T any](l *Local, slot string, records []T) error {
	data, err := json.Marshal(records)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal slot", goerr.V("slot", slot))
	}
	if err := os.WriteFile(l.path(slot), data, 0o644); err != nil {
		return goerr.Wrap(err, "failed to write slot", goerr.V("slot", slot))
	}
	return nil
}

func (l *Local) LoadEvents(ctx context.Context) ([]*model.CalendarEvent, error) {
	events, err := loadSlot[*model.CalendarEvent](l, slotEvents)
	if err != nil {
		return nil, err
	}
	return model.NormalizeEvents(events, time.Now()), nil
}

func (l *Local) SaveEvents(ctx context.Context, events []*model.CalendarEvent) error {
	return saveSlot(l, slotEvents, events)
}

func (l *Local) LoadTasks(ctx context.Context) ([]*model.RecurringTask, error) {
	tasks, err := loadSlot[*model.RecurringTask](l, slotTasks)
	if err != nil {
		return nil, err
	}
	return model.NormalizeTasks(tasks), nil
}

func (l *Local) SaveTasks(ctx context.Context, tasks []*model.RecurringTask) error {
	return saveSlot(l, slotTasks, tasks)
}

func (l *Local) LoadPayments(ctx context.Context) ([]*model.PaymentRecord, error) {
	payments, err := loadSlot[*model.PaymentRecord](l, slotPayments)
	if err != nil {
		return nil, err
	}
	return model.NormalizePayments(payments), nil
}

func (l *Local) SavePayments(ctx context.Context, payments []*model.PaymentRecord) error {
	return saveSlot(l, slotPayments, payments)
}

func (l *Local) LoadGoals(ctx context.Context) ([]*model.Goal, error) {
	goals, err := loadSlot[*model.Goal](l, slotGoals)
	if err != nil {
		return nil, err
	}
	return model.NormalizeGoals(goals, time.Now()), nil
}

func (l *Local) SaveGoals(ctx context.Context, goals []*model.Goal) error {
	return saveSlot(l, slotGoals, goals)
}
