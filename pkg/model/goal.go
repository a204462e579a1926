package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrInvalidGoalStatus = goerr.New("invalid goal status")
	ErrInvalidProgress   = goerr.New("progress must be between 0 and 100")
)

type GoalID string

// NewGoalID generates a new unique GoalID
func NewGoalID() GoalID {
	return GoalID(uuid.New().String())
}

// GoalStatus is the lifecycle state of a goal.
type GoalStatus string

const (
	GoalNotStarted GoalStatus = "not_started"
	GoalInProgress GoalStatus = "in_progress"
	GoalCompleted  GoalStatus = "completed"
	GoalOnHold     GoalStatus = "on_hold"
	GoalCancelled  GoalStatus = "cancelled"
)

// Validate checks if the status is valid
func (s GoalStatus) Validate() error {
	switch s {
	case GoalNotStarted, GoalInProgress, GoalCompleted, GoalOnHold, GoalCancelled:
		return nil
	default:
		return goerr.Wrap(ErrInvalidGoalStatus, "unknown status", goerr.V("status", s))
	}
}

// Goal is a long-running objective. Created through the confirmation pipeline
// with progress 0 and status not_started; status and progress are updated
// directly afterwards.
type Goal struct {
	ID          GoalID     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	TargetDate  string     `json:"targetDate"` // YYYY-MM-DD
	Progress    int        `json:"progress"`   // 0-100
	Status      GoalStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// ValidateProgress checks the 0-100 range.
func ValidateProgress(progress int) error {
	if progress < 0 || progress > 100 {
		return goerr.Wrap(ErrInvalidProgress, "out of range", goerr.V("progress", progress))
	}
	return nil
}

// NormalizeGoals fills defaults older stored records may lack (status
// not_started, creation date today) and sorts ascending by target date.
func NormalizeGoals(goals []*Goal, now time.Time) []*Goal {
	kept := make([]*Goal, 0, len(goals))
	for _, g := range goals {
		if g == nil {
			continue
		}
		if g.Status == "" {
			g.Status = GoalNotStarted
		}
		if g.Progress < 0 {
			g.Progress = 0
		}
		if g.CreatedAt.IsZero() {
			g.CreatedAt = now
		}
		kept = append(kept, g)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].TargetDate < kept[j].TargetDate
	})
	return kept
}
