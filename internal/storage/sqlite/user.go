package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/HubOfCJ/testcase-manager/internal/model"
)

// CreateUser creates a new user in the repository.
func (r *Repository) CreateUser(ctx context.Context, u model.User) error {
	if err := u.Validate(); err != nil {
		return fmt.Errorf("invalid user: %w", err)
	}

	query := `
		INSERT INTO users (id, username, email, role, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, u.ID, u.Username, u.Email, u.Role, u.CreatedAt.Unix())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.") {
			return fmt.Errorf("user %s: %w", u.Email, model.ErrAlreadyExists)
		}
		return fmt.Errorf("could not insert user: %w", err)
	}

	r.logger.Debugf("Created user in repository: %s", u.ID)
	return nil
}

// GetUserByEmail retrieves a user by email.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, username, email, role, created_at
		FROM users
		WHERE email = ?
	`

	var u model.User
	var createdAt int64

	err := r.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Username, &u.Email, &u.Role, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", email, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query user: %w", err)
	}

	u.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &u, nil
}

// ListUsers returns all users in directory order (creation time, then id).
func (r *Repository) ListUsers(ctx context.Context) ([]model.User, error) {
	query := `
		SELECT id, username, email, role, created_at
		FROM users
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not query users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		var createdAt int64
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Role, &createdAt); err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		u.CreatedAt = time.Unix(createdAt, 0).UTC()
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return users, nil
}
