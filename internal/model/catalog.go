package model

import "fmt"

// UserSpec describes a user to be created, before an ID is minted.
type UserSpec struct {
	Username string
	Email    string
	Role     Role
}

// TaskSpec describes a task to be created, with the emails of the users it
// should be assigned to.
type TaskSpec struct {
	Title         string
	Tooltip       string
	IntervalWeeks int
	Area          string
	Assignees     []string
}

// Catalog is a batch of users and tasks to seed the stores with.
type Catalog struct {
	Users []UserSpec
	Tasks []TaskSpec
}

// Validate validates the catalog.
func (c Catalog) Validate() error {
	for i, u := range c.Users {
		if u.Username == "" || u.Email == "" {
			return fmt.Errorf("user %d: username and email are required: %w", i, ErrNotValid)
		}
		switch u.Role {
		case RoleAdmin, RoleTester, RoleObserver:
		default:
			return fmt.Errorf("user %d: unknown role %q: %w", i, u.Role, ErrNotValid)
		}
	}

	for i, t := range c.Tasks {
		if t.Title == "" {
			return fmt.Errorf("task %d: title is required: %w", i, ErrNotValid)
		}
		if t.IntervalWeeks <= 0 {
			return fmt.Errorf("task %d: interval must be positive, got %d: %w", i, t.IntervalWeeks, ErrNotValid)
		}
	}

	return nil
}
