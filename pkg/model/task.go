package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

var ErrInvalidRecurrence = goerr.New("invalid recurrence")

type TaskID string

// NewTaskID generates a new unique TaskID
func NewTaskID() TaskID {
	return TaskID(uuid.New().String())
}

// Recurrence is how often a recurring task repeats.
type Recurrence string

const (
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// Validate checks if the recurrence is valid
func (r Recurrence) Validate() error {
	switch r {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return nil
	default:
		return goerr.Wrap(ErrInvalidRecurrence, "unknown recurrence", goerr.V("recurrence", r))
	}
}

// RecurringTask is a repeating to-do item. Completion is toggled through the
// confirmation pipeline; other fields are edited directly.
type RecurringTask struct {
	ID            TaskID     `json:"id"`
	Title         string     `json:"title"`
	Recurrence    Recurrence `json:"recurrence"`
	LastExecution time.Time  `json:"lastExecution"` // zero means never executed
	DueDate       string     `json:"dueDate,omitempty"`
	Completed     bool       `json:"completed"`
}

// NormalizeTasks fills fields that older stored records may lack. A missing
// completed flag unmarshals to false already; the pass exists so every record
// downstream is fully typed and nil entries are gone.
func NormalizeTasks(tasks []*RecurringTask) []*RecurringTask {
	kept := make([]*RecurringTask, 0, len(tasks))
	for _, t := range tasks {
		if t == nil {
			continue
		}
		kept = append(kept, t)
	}
	return kept
}
