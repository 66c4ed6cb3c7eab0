package model_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/HubOfCJ/testcase-manager/internal/model"
)

func TestEventStatusToggle(t *testing.T) {
	assert.Equal(t, model.EventStatusDone, model.EventStatusOpen.Toggle())
	assert.Equal(t, model.EventStatusOpen, model.EventStatusDone.Toggle())
	// Double toggle returns to the original status.
	assert.Equal(t, model.EventStatusOpen, model.EventStatusOpen.Toggle().Toggle())
}

func TestCompletionEventValidate(t *testing.T) {
	validEvent := func() model.CompletionEvent {
		return model.CompletionEvent{
			TaskID: "task-1",
			UserID: "user-1",
			Period: model.Period{Week: 10, Year: 2024},
			Status: model.EventStatusDone,
		}
	}

	tests := map[string]struct {
		event  func() model.CompletionEvent
		expErr bool
	}{
		"valid event": {
			event: validEvent,
		},
		"missing task id should fail": {
			event:  func() model.CompletionEvent { ev := validEvent(); ev.TaskID = ""; return ev },
			expErr: true,
		},
		"missing user id should fail": {
			event:  func() model.CompletionEvent { ev := validEvent(); ev.UserID = ""; return ev },
			expErr: true,
		},
		"invalid period should fail": {
			event:  func() model.CompletionEvent { ev := validEvent(); ev.Period.Week = 0; return ev },
			expErr: true,
		},
		"unknown status should fail": {
			event:  func() model.CompletionEvent { ev := validEvent(); ev.Status = "maybe"; return ev },
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			err := test.event().Validate()
			if test.expErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, model.ErrNotValid))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLatestDone(t *testing.T) {
	event := func(week, year int, status model.EventStatus) model.CompletionEvent {
		return model.CompletionEvent{
			TaskID: "task-1",
			UserID: "user-1",
			Period: model.Period{Week: week, Year: year},
			Status: status,
		}
	}

	tests := map[string]struct {
		events    []model.CompletionEvent
		expPeriod *model.Period
	}{
		"no events means never completed": {
			events:    nil,
			expPeriod: nil,
		},
		"only open events don't count as completions": {
			events: []model.CompletionEvent{
				event(10, 2024, model.EventStatusOpen),
				event(12, 2024, model.EventStatusOpen),
			},
			expPeriod: nil,
		},
		"single done event wins": {
			events: []model.CompletionEvent{
				event(10, 2024, model.EventStatusDone),
			},
			expPeriod: &model.Period{Week: 10, Year: 2024},
		},
		"latest done event wins over older ones": {
			events: []model.CompletionEvent{
				event(10, 2024, model.EventStatusDone),
				event(14, 2024, model.EventStatusDone),
				event(12, 2024, model.EventStatusDone),
			},
			expPeriod: &model.Period{Week: 14, Year: 2024},
		},
		"year outranks week in the comparison": {
			events: []model.CompletionEvent{
				event(52, 2023, model.EventStatusDone),
				event(2, 2024, model.EventStatusDone),
			},
			expPeriod: &model.Period{Week: 2, Year: 2024},
		},
		"open events are ignored even when newer": {
			events: []model.CompletionEvent{
				event(10, 2024, model.EventStatusDone),
				event(15, 2024, model.EventStatusOpen),
			},
			expPeriod: &model.Period{Week: 10, Year: 2024},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expPeriod, model.LatestDone(test.events))
		})
	}
}
