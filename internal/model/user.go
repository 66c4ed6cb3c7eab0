package model

import (
	"fmt"
	"strings"
	"time"
)

// Role represents the permission level of a user.
type Role string

const (
	// RoleAdmin can author tasks and assignments besides acting as a tester.
	RoleAdmin Role = "admin"
	// RoleTester can view due tasks and toggle their own completion status.
	RoleTester Role = "tester"
	// RoleObserver has read-only access, toggling status is rejected.
	RoleObserver Role = "observer"
)

// User represents a member of the verification team. Email is the stable
// lookup key, ID is the storage key.
type User struct {
	ID        string
	Username  string
	Email     string
	Role      Role
	CreatedAt time.Time
}

// Validate validates the user.
func (u User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("id is required: %w", ErrNotValid)
	}
	if u.Username == "" {
		return fmt.Errorf("username is required: %w", ErrNotValid)
	}
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return fmt.Errorf("valid email is required: %w", ErrNotValid)
	}

	switch u.Role {
	case RoleAdmin, RoleTester, RoleObserver:
	default:
		return fmt.Errorf("unknown role %q: %w", u.Role, ErrNotValid)
	}

	return nil
}
