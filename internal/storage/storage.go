package storage

import (
	"context"

	"github.com/HubOfCJ/testcase-manager/internal/model"
)

// UserRepository is the interface for the user directory.
type UserRepository interface {
	CreateUser(ctx context.Context, u model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

// AssignmentFilter filters assignment listings. Zero values mean no filter.
type AssignmentFilter struct {
	TaskID string
	UserID string
}

// TaskRepository is the interface for the task catalog and its assignments.
type TaskRepository interface {
	CreateTask(ctx context.Context, t model.Task) error
	GetTask(ctx context.Context, id string) (*model.Task, error)
	ListTasks(ctx context.Context) ([]model.Task, error)
	CreateAssignments(ctx context.Context, taskID string, userIDs []string) error
	ListAssignments(ctx context.Context, filter AssignmentFilter) ([]model.Assignment, error)
}

// EventFilter filters completion event listings. Zero values mean no filter.
type EventFilter struct {
	TaskID string
	UserID string
	Period *model.Period
}

// EventRepository is the interface for completion event persistence.
//
// UpsertEvent must merge on the (task, user, week, year) key: concurrent
// upserts for the same triple serialize to a single row, last write wins.
type EventRepository interface {
	ListEvents(ctx context.Context, filter EventFilter) ([]model.CompletionEvent, error)
	UpsertEvent(ctx context.Context, e model.CompletionEvent) error
}
