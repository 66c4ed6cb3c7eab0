package model

import (
	"fmt"
	"time"
)

// Task represents a recurring verification task (testcase). Once referenced by
// completion events it is only changed through explicit admin edits.
type Task struct {
	ID      string
	Title   string
	Tooltip string
	// IntervalWeeks is the recurrence interval, in periods (weeks). A task
	// becomes due again once this many weeks have passed since the last
	// completed period.
	IntervalWeeks int
	// Area is an optional grouping tag (e.g. "backend", "payments").
	Area      string
	CreatedAt time.Time
}

// Validate validates the task.
func (t Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("id is required: %w", ErrNotValid)
	}
	if t.Title == "" {
		return fmt.Errorf("title is required: %w", ErrNotValid)
	}
	if t.IntervalWeeks <= 0 {
		return fmt.Errorf("interval must be positive, got %d: %w", t.IntervalWeeks, ErrNotValid)
	}
	return nil
}

// DueAt reports whether the task is due at the target period given the most
// recent period it was completed in, nil meaning never completed.
//
// A task that was never completed is always due. Non-positive intervals should
// be rejected at creation, but if one slips through the task is treated as
// always due instead of never due.
func (t Task) DueAt(lastDone *Period, target Period) bool {
	if lastDone == nil {
		return true
	}
	if t.IntervalWeeks <= 0 {
		return true
	}
	return lastDone.DistanceTo(target) >= t.IntervalWeeks
}

// Assignment links a task to a user. Only assigned pairs are candidates for
// the due set.
type Assignment struct {
	TaskID string
	UserID string
}
