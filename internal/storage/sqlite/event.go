package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/HubOfCJ/testcase-manager/internal/model"
	"github.com/HubOfCJ/testcase-manager/internal/storage"
)

// UpsertEvent inserts or overwrites the completion event for its
// (task, user, week, year) key. Concurrent upserts on the same key serialize
// to a single row, last write wins.
func (r *Repository) UpsertEvent(ctx context.Context, e model.CompletionEvent) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("invalid event: %w", err)
	}

	query := `
		INSERT INTO completion_events (task_id, user_id, week, year, status, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (task_id, user_id, week, year) DO UPDATE SET
			status = excluded.status,
			updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, query, e.TaskID, e.UserID, e.Period.Week, e.Period.Year, e.Status, e.UpdatedAt.Unix())
	if err != nil {
		return fmt.Errorf("could not upsert event: %w", err)
	}

	r.logger.Debugf("Upserted event (%s, %s, %s): %s", e.TaskID, e.UserID, e.Period, e.Status)
	return nil
}

// ListEvents returns completion events, optionally filtered by task, user
// and/or exact period.
func (r *Repository) ListEvents(ctx context.Context, filter storage.EventFilter) ([]model.CompletionEvent, error) {
	query := `SELECT task_id, user_id, week, year, status, updated_at FROM completion_events`
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
	if filter.Period != nil {
		conds = append(conds, "week = ?", "year = ?")
		args = append(args, filter.Period.Week, filter.Period.Year)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY year ASC, week ASC, task_id ASC, user_id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query events: %w", err)
	}
	defer rows.Close()

	var events []model.CompletionEvent
	for rows.Next() {
		var e model.CompletionEvent
		var updatedAt int64
		if err := rows.Scan(&e.TaskID, &e.UserID, &e.Period.Week, &e.Period.Year, &e.Status, &updatedAt); err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		e.UpdatedAt = time.Unix(updatedAt, 0).UTC()
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return events, nil
}
