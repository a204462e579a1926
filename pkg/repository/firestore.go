package repository

import (
	"context"
	"encoding/json"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/m-mizutani/concierge/pkg/model"
)

// Firestore keeps each collection slot as a single document in one Firestore
// collection, with the records serialized as a JSON blob. A whole-document
// overwrite per save preserves the same semantics as the file backend.
type Firestore struct {
	client     *firestore.Client
	collection string
}

// slotDoc is the stored shape of one slot.
type slotDoc struct {
	Data      string    `firestore:"data"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

// NewFirestore creates a Firestore-backed repository.
func NewFirestore(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project", projectID), goerr.V("database", databaseID))
	}

	return &Firestore{
		client:     client,
		collection: "concierge",
	}, nil
}

// Close releases the underlying client.
func (f *Firestore) Close() error {
	return f.client.Close()
}

func fsLoadSlot[T any](ctx context.Context, f *Firestore, slot string) ([]T, error) {
	snap, err := f.client.Collection(f.collection).Doc(slot).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get slot document", goerr.V("slot", slot))
	}

	var doc slotDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode slot document", goerr.V("slot", slot))
	}

	var records []T
	if err := json.Unmarshal([]byte(doc.Data), &records); err != nil {
		return nil, goerr.Wrap(err, "failed to parse slot data", goerr.V("slot", slot))
	}
	return records, nil
}

func fsSaveSlot[T any](ctx context.Context, f *Firestore, slot string, records []T) error {
	data, err := json.Marshal(records)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal slot data", goerr.V("slot", slot))
	}

	doc := slotDoc{
		Data:      string(data),
		UpdatedAt: time.Now(),
	}
	if _, err := f.client.Collection(f.collection).Doc(slot).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to set slot document", goerr.V("slot", slot))
	}
	return nil
}

func (f *Firestore) LoadEvents(ctx context.Context) ([]*model.CalendarEvent, error) {
	events, err := fsLoadSlot[*model.CalendarEvent](ctx, f, slotEvents)
	if err != nil {
		return nil, err
	}
	return model.NormalizeEvents(events, time.Now()), nil
}

func (f *Firestore) SaveEvents(ctx context.Context, events []*model.CalendarEvent) error {
	return fsSaveSlot(ctx, f, slotEvents, events)
}

func (f *Firestore) LoadTasks(ctx context.Context) ([]*model.RecurringTask, error) {
	tasks, err := fsLoadSlot[*model.RecurringTask](ctx, f, slotTasks)
	if err != nil {
		return nil, err
	}
	return model.NormalizeTasks(tasks), nil
}

func (f *Firestore) SaveTasks(ctx context.Context, tasks []*model.RecurringTask) error {
	return fsSaveSlot(ctx, f, slotTasks, tasks)
}

func (f *Firestore) LoadPayments(ctx context.Context) ([]*model.PaymentRecord, error) {
	payments, err := fsLoadSlot[*model.PaymentRecord](ctx, f, slotPayments)
	if err != nil {
		return nil, err
	}
	return model.NormalizePayments(payments), nil
}

func (f *Firestore) SavePayments(ctx context.Context, payments []*model.PaymentRecord) error {
	return fsSaveSlot(ctx, f, slotPayments, payments)
}

func (f *Firestore) LoadGoals(ctx context.Context) ([]*model.Goal, error) {
	goals, err := fsLoadSlot[*model.Goal](ctx, f, slotGoals)
	if err != nil {
		return nil, err
	}
	return model.NormalizeGoals(goals, time.Now()), nil
}

func (f *Firestore) SaveGoals(ctx context.Context, goals []*model.Goal) error {
	return fsSaveSlot(ctx, f, slotGoals, goals)
}
