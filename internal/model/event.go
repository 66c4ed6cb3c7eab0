package model

import (
	"fmt"
	"time"
)

// EventStatus represents the completion status of a task for one period.
type EventStatus string

const (
	// EventStatusOpen indicates the task has not been completed this period.
	// Absence of an event behaves the same as an explicit open event.
	EventStatusOpen EventStatus = "open"
	// EventStatusDone indicates the task was completed this period.
	EventStatusDone EventStatus = "done"
)

// Toggle returns the opposite status. Strict two-state toggle: open becomes
// done, anything else becomes open.
func (s EventStatus) Toggle() EventStatus {
	if s == EventStatusOpen {
		return EventStatusDone
	}
	return EventStatusOpen
}

// CompletionEvent records the status of a (task, user, period) triple. At most
// one event exists per triple, writes merge on conflict.
type CompletionEvent struct {
	TaskID    string
	UserID    string
	Period    Period
	Status    EventStatus
	UpdatedAt time.Time
}

// Validate validates the completion event.
func (e CompletionEvent) Validate() error {
	if e.TaskID == "" {
		return fmt.Errorf("task id is required: %w", ErrNotValid)
	}
	if e.UserID == "" {
		return fmt.Errorf("user id is required: %w", ErrNotValid)
	}
	if err := e.Period.Validate(); err != nil {
		return fmt.Errorf("invalid period: %w", err)
	}

	switch e.Status {
	case EventStatusOpen, EventStatusDone:
	default:
		return fmt.Errorf("unknown status %q: %w", e.Status, ErrNotValid)
	}

	return nil
}

// LatestDone returns the most recent period with a done event, comparing
// (year, week) lexicographically. Open events don't count as completions.
// Returns nil when the task was never completed.
func LatestDone(events []CompletionEvent) *Period {
	var latest *Period
	for _, ev := range events {
		if ev.Status != EventStatusDone {
			continue
		}
		if latest == nil || latest.Before(ev.Period) {
			p := ev.Period
			latest = &p
		}
	}
	return latest
}
