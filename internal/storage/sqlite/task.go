package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/HubOfCJ/testcase-manager/internal/model"
	"github.com/HubOfCJ/testcase-manager/internal/storage"
)

// CreateTask creates a new task in the catalog.
func (r *Repository) CreateTask(ctx context.Context, t model.Task) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}

	query := `
		INSERT INTO tasks (id, title, tooltip, interval_weeks, area, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, t.ID, t.Title, t.Tooltip, t.IntervalWeeks, t.Area, t.CreatedAt.Unix())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: tasks.") {
			return fmt.Errorf("task %s: %w", t.ID, model.ErrAlreadyExists)
		}
		return fmt.Errorf("could not insert task: %w", err)
	}

	r.logger.Debugf("Created task in repository: %s", t.ID)
	return nil
}

// GetTask retrieves a task by ID.
func (r *Repository) GetTask(ctx context.Context, id string) (*model.Task, error) {
	query := `
		SELECT id, title, tooltip, interval_weeks, area, created_at
		FROM tasks
		WHERE id = ?
	`

	var t model.Task
	var createdAt int64

	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Title, &t.Tooltip, &t.IntervalWeeks, &t.Area, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query task: %w", err)
	}

	t.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &t, nil
}

// ListTasks returns all tasks in catalog order (creation time, then id).
func (r *Repository) ListTasks(ctx context.Context) ([]model.Task, error) {
	query := `
		SELECT id, title, tooltip, interval_weeks, area, created_at
		FROM tasks
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		var createdAt int64
		if err := rows.Scan(&t.ID, &t.Title, &t.Tooltip, &t.IntervalWeeks, &t.Area, &createdAt); err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		t.CreatedAt = time.Unix(createdAt, 0).UTC()
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return tasks, nil
}

// CreateAssignments links a task to the given users in a single transaction.
func (r *Repository) CreateAssignments(ctx context.Context, taskID string, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // Rollback is safe to call after Commit

	query := `INSERT INTO assignments (task_id, user_id, created_at) VALUES (?, ?, ?)`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("could not prepare statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, userID := range userIDs {
		_, err := stmt.ExecContext(ctx, taskID, userID, now.Unix())
		if err != nil {
			if strings.Contains(err.Error(), "UNIQUE constraint failed: assignments.") {
				return fmt.Errorf("assignment (%s, %s): %w", taskID, userID, model.ErrAlreadyExists)
			}
			return fmt.Errorf("could not insert assignment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	r.logger.Debugf("Created %d assignments for task %s", len(userIDs), taskID)
	return nil
}

// ListAssignments returns assignments, optionally filtered by task or user.
func (r *Repository) ListAssignments(ctx context.Context, filter storage.AssignmentFilter) ([]model.Assignment, error) {
	query := `SELECT task_id, user_id FROM assignments`
	var conds []string
	var args []any

	if filter.TaskID != "" {
		conds = append(conds, "task_id = ?")
		args = append(args, filter.TaskID)
	}
	if filter.UserID != "" {
		conds = append(conds, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at ASC, task_id ASC, user_id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []model.Assignment
	for rows.Next() {
		var a model.Assignment
		if err := rows.Scan(&a.TaskID, &a.UserID); err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return assignments, nil
}
