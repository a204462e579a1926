package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// Wire formats used by the oracle for calendar arguments.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type EventID string

// NewEventID generates a new unique EventID
func NewEventID() EventID {
	return EventID(uuid.New().String())
}

// CalendarEvent is a one-shot scheduled event. Immutable after creation.
type CalendarEvent struct {
	ID    EventID `json:"id"`
	Title string  `json:"title"`
	Date  string  `json:"date"` // YYYY-MM-DD
	Time  string  `json:"time"` // HH:MM, 24h
}

// At returns the event's date and time as a single timestamp.
func (e *CalendarEvent) At() (time.Time, error) {
	ts, err := time.Parse(DateLayout+" "+TimeLayout, e.Date+" "+e.Time)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "invalid event date/time",
			goerr.V("date", e.Date), goerr.V("time", e.Time))
	}
	return ts, nil
}

// NormalizeEvents drops events whose date-time has already passed and sorts
// the rest ascending by date-time. Events with unparsable timestamps are kept
// at the end so that bad data is visible rather than silently discarded.
func NormalizeEvents(events []*CalendarEvent, now time.Time) []*CalendarEvent {
	kept := make([]*CalendarEvent, 0, len(events))
	for _, ev := range events {
		if ev == nil {
			continue
		}
		if at, err := ev.At(); err == nil && at.Before(now) {
			continue
		}
		kept = append(kept, ev)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		a, errA := kept[i].At()
		b, errB := kept[j].At()
		if errA != nil || errB != nil {
			return errB != nil && errA == nil
		}
		return a.Before(b)
	})
	return kept
}
