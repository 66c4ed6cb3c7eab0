package model_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/HubOfCJ/testcase-manager/internal/model"
)

func TestTaskValidate(t *testing.T) {
	validTask := func() model.Task {
		return model.Task{
			ID:            "task-1",
			Title:         "Check backup restore",
			Tooltip:       "Restore last night's backup into staging.",
			IntervalWeeks: 4,
			Area:          "ops",
		}
	}

	tests := map[string]struct {
		task   func() model.Task
		expErr bool
	}{
		"valid task": {
			task: validTask,
		},
		"missing id should fail": {
			task:   func() model.Task { tk := validTask(); tk.ID = ""; return tk },
			expErr: true,
		},
		"missing title should fail": {
			task:   func() model.Task { tk := validTask(); tk.Title = ""; return tk },
			expErr: true,
		},
		"zero interval should fail": {
			task:   func() model.Task { tk := validTask(); tk.IntervalWeeks = 0; return tk },
			expErr: true,
		},
		"negative interval should fail": {
			task:   func() model.Task { tk := validTask(); tk.IntervalWeeks = -2; return tk },
			expErr: true,
		},
		"tooltip and area are optional": {
			task: func() model.Task { tk := validTask(); tk.Tooltip = ""; tk.Area = ""; return tk },
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			err := test.task().Validate()
			if test.expErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, model.ErrNotValid))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTaskDueAt(t *testing.T) {
	lastDone := func(week, year int) *model.Period {
		return &model.Period{Week: week, Year: year}
	}

	tests := map[string]struct {
		interval int
		lastDone *model.Period
		target   model.Period
		expDue   bool
	}{
		"a task never completed is always due": {
			interval: 7,
			lastDone: nil,
			target:   model.Period{Week: 30, Year: 2024},
			expDue:   true,
		},
		"due exactly when the interval has elapsed": {
			interval: 2,
			lastDone: lastDone(10, 2024),
			target:   model.Period{Week: 12, Year: 2024},
			expDue:   true,
		},
		"not due one week before the interval elapses": {
			interval: 2,
			lastDone: lastDone(10, 2024),
			target:   model.Period{Week: 11, Year: 2024},
			expDue:   false,
		},
		"due well past the interval": {
			interval: 2,
			lastDone: lastDone(10, 2024),
			target:   model.Period{Week: 20, Year: 2024},
			expDue:   true,
		},
		"not due in the same period it was completed": {
			interval: 1,
			lastDone: lastDone(10, 2024),
			target:   model.Period{Week: 10, Year: 2024},
			expDue:   false,
		},
		"interval gating works across a year boundary": {
			interval: 4,
			lastDone: lastDone(50, 2024),
			target:   model.Period{Week: 2, Year: 2025},
			expDue:   true,
		},
		"not yet due across a year boundary": {
			interval: 5,
			lastDone: lastDone(50, 2024),
			target:   model.Period{Week: 2, Year: 2025},
			expDue:   false,
		},
		"non-positive interval defends as always due": {
			interval: 0,
			lastDone: lastDone(10, 2024),
			target:   model.Period{Week: 10, Year: 2024},
			expDue:   true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			task := model.Task{ID: "t1", Title: "t", IntervalWeeks: test.interval}
			assert.Equal(t, test.expDue, task.DueAt(test.lastDone, test.target))
		})
	}
}
