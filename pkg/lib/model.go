package lib

import (
	"errors"
	"time"

	"github.com/HubOfCJ/testcase-manager/internal/model"
)

var (
	// ErrNotFound is returned when a resource does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when a resource with the same identity already exists.
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrNotValid is returned when the input is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrNotAllowed is returned when the acting user may not perform the operation.
	ErrNotAllowed = errors.New("not allowed")
)

// Role represents the permission level of a user.
type Role string

const (
	// RoleAdmin can manage the catalog and toggle their own statuses.
	RoleAdmin Role = "admin"
	// RoleTester can toggle their own statuses.
	RoleTester Role = "tester"
	// RoleObserver can only read, all writes are rejected.
	RoleObserver Role = "observer"
)

// EventStatus represents the completion state of a task for a user and period.
type EventStatus string

const (
	// EventStatusOpen indicates the task has not been completed for the period.
	EventStatusOpen EventStatus = "open"
	// EventStatusDone indicates the task has been completed for the period.
	EventStatusDone EventStatus = "done"
)

// Period identifies an ISO week.
type Period struct {
	// Week is the ISO week number (1..53).
	Week int
	// Year is the ISO week-numbering year.
	Year int
}

// CurrentPeriod returns the period for the current wall-clock time.
func CurrentPeriod() Period {
	return fromInternalPeriod(model.PeriodOf(time.Now()))
}

// AddWeeks returns the period n weeks after p. Negative n moves backwards.
func (p Period) AddWeeks(n int) Period {
	return fromInternalPeriod(toInternalPeriod(p).AddWeeks(n))
}

// String returns the period in "2026-W06" form.
func (p Period) String() string {
	return toInternalPeriod(p).String()
}

// User represents a registered user returned by the SDK.
type User struct {
	// ID is the unique identifier (ULID) assigned at creation.
	ID string
	// Username is the display name.
	Username string
	// Email is the login identity, unique across users.
	Email string
	// Role is the permission level.
	Role Role
	// CreatedAt is when the user was created.
	CreatedAt time.Time
}

// Task represents a recurring task in the catalog.
type Task struct {
	// ID is the unique identifier (ULID) assigned at creation.
	ID string
	// Title is the short task description.
	Title string
	// Tooltip is a longer description shown alongside the task.
	Tooltip string
	// IntervalWeeks is the recurrence interval in weeks. Always positive.
	IntervalWeeks int
	// Area is an optional grouping tag.
	Area string
	// CreatedAt is when the task was created.
	CreatedAt time.Time
}

// DueItem is one entry of the due list: a task a user should act on in a period.
type DueItem struct {
	// Task is the due task.
	Task Task
	// User is the user the task is due for.
	User User
	// Period is the evaluated period.
	Period Period
	// Status is the completion state for the exact evaluated period.
	Status EventStatus
}

// CreateUserOpts configures user creation.
//
// Username and Email are required. Role defaults to [RoleTester] when empty.
type CreateUserOpts struct {
	Username string
	Email    string
	Role     Role
}

// CreateTaskOpts configures task creation.
//
// Title and a positive IntervalWeeks are required. Assignees are user emails
// and must all resolve to existing users.
type CreateTaskOpts struct {
	Title         string
	Tooltip       string
	IntervalWeeks int
	Area          string
	Assignees     []string
}

// ListUsersOpts configures user listing.
//
// Pass nil to [Client.ListUsers] to list all users.
type ListUsersOpts struct {
	// Role filters users by role. Nil means all roles.
	Role *Role
}

// ListTasksOpts configures task listing.
//
// Pass nil to [Client.ListTasks] to list all tasks.
type ListTasksOpts struct {
	// Area filters tasks by area tag. Empty means all areas.
	Area string
}

// DueListOpts configures due list computation.
//
// Pass nil to [Client.DueList] for the full due list of the current week.
type DueListOpts struct {
	// Period is the target period. Nil means the current week.
	Period *Period
	// UserEmail restricts the due list to a single user. Empty means all users.
	UserEmail string
}

// ToggleOpts configures a status toggle.
//
// ActorEmail and TaskID are required. UserEmail defaults to the actor, and any
// other value than the actor's own email is rejected with [ErrNotAllowed].
type ToggleOpts struct {
	ActorEmail string
	TaskID     string
	UserEmail  string
	// Period is the period to toggle. Nil means the current week.
	Period *Period
}

// UserSpec describes a user in a catalog seed.
type UserSpec struct {
	Username string
	Email    string
	// Role defaults to [RoleTester] when empty.
	Role Role
}

// TaskSpec describes a task in a catalog seed.
type TaskSpec struct {
	Title         string
	Tooltip       string
	IntervalWeeks int
	Area          string
	// Assignees are user emails, resolved against already-created users.
	Assignees []string
}

// Catalog is a batch of users and tasks to seed the tracker with.
type Catalog struct {
	Users []UserSpec
	Tasks []TaskSpec
}

// ImportResult summarizes what a catalog import created.
type ImportResult struct {
	// UsersCreated is the number of new users.
	UsersCreated int
	// UsersSkipped is the number of users that already existed.
	UsersSkipped int
	// TasksCreated is the number of new tasks.
	TasksCreated int
}

// --- Internal conversion helpers ---

func toInternalPeriod(p Period) model.Period {
	return model.Period{Week: p.Week, Year: p.Year}
}

func fromInternalPeriod(p model.Period) Period {
	return Period{Week: p.Week, Year: p.Year}
}

func fromInternalUser(u model.User) User {
	return User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      Role(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func fromInternalUserList(us []model.User) []User {
	result := make([]User, len(us))
	for i, u := range us {
		result[i] = fromInternalUser(u)
	}
	return result
}

func fromInternalTask(t model.Task) Task {
	return Task{
		ID:            t.ID,
		Title:         t.Title,
		Tooltip:       t.Tooltip,
		IntervalWeeks: t.IntervalWeeks,
		Area:          t.Area,
		CreatedAt:     t.CreatedAt,
	}
}

func fromInternalTaskList(ts []model.Task) []Task {
	result := make([]Task, len(ts))
	for i, t := range ts {
		result[i] = fromInternalTask(t)
	}
	return result
}

func fromInternalDueList(items []model.DueItem) []DueItem {
	result := make([]DueItem, len(items))
	for i, item := range items {
		result[i] = DueItem{
			Task:   fromInternalTask(item.Task),
			User:   fromInternalUser(item.User),
			Period: fromInternalPeriod(item.Period),
			Status: EventStatus(item.Status),
		}
	}
	return result
}

func toInternalCatalog(c Catalog) model.Catalog {
	catalog := model.Catalog{}

	for _, u := range c.Users {
		role := u.Role
		if role == "" {
			role = RoleTester
		}
		catalog.Users = append(catalog.Users, model.UserSpec{
			Username: u.Username,
			Email:    u.Email,
			Role:     model.Role(role),
		})
	}

	for _, t := range c.Tasks {
		catalog.Tasks = append(catalog.Tasks, model.TaskSpec{
			Title:         t.Title,
			Tooltip:       t.Tooltip,
			IntervalWeeks: t.IntervalWeeks,
			Area:          t.Area,
			Assignees:     t.Assignees,
		})
	}

	return catalog
}

func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case isInternalError(err, model.ErrNotFound):
		return joinErrors(err, ErrNotFound)
	case isInternalError(err, model.ErrAlreadyExists):
		return joinErrors(err, ErrAlreadyExists)
	case isInternalError(err, model.ErrNotValid):
		return joinErrors(err, ErrNotValid)
	case isInternalError(err, model.ErrNotAllowed):
		return joinErrors(err, ErrNotAllowed)
	default:
		return err
	}
}

func isInternalError(err, target error) bool {
	for {
		if err == target {
			return true
		}
		unwrapped := unwrapSingle(err)
		if unwrapped == nil {
			return false
		}
		err = unwrapped
	}
}

func unwrapSingle(err error) error {
	u, ok := err.(interface{ Unwrap() error })
	if !ok {
		return nil
	}
	return u.Unwrap()
}

func joinErrors(original, sentinel error) error {
	return &mappedError{original: original, sentinel: sentinel}
}

type mappedError struct {
	original error
	sentinel error
}

func (e *mappedError) Error() string { return e.original.Error() }

func (e *mappedError) Is(target error) bool {
	return target == e.sentinel
}

func (e *mappedError) Unwrap() error { return e.original }
