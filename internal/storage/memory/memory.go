package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/HubOfCJ/testcase-manager/internal/log"
	"github.com/HubOfCJ/testcase-manager/internal/model"
	"github.com/HubOfCJ/testcase-manager/internal/storage"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

type eventKey struct {
	taskID string
	userID string
	period model.Period
}

// Repository is an in-memory implementation of the storage repositories.
// Useful for tests and ephemeral runs.
type Repository struct {
	users       []model.User
	tasks       []model.Task
	assignments []model.Assignment
	events      map[eventKey]model.CompletionEvent
	mu          sync.RWMutex
	logger      log.Logger
}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		events: make(map[eventKey]model.CompletionEvent),
		logger: cfg.Logger,
	}, nil
}

// CreateUser creates a new user in the repository.
func (r *Repository) CreateUser(ctx context.Context, u model.User) error {
	if err := u.Validate(); err != nil {
		return fmt.Errorf("invalid user: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.ID == u.ID || existing.Email == u.Email {
			return fmt.Errorf("user %s: %w", u.Email, model.ErrAlreadyExists)
		}
	}

	r.users = append(r.users, u)
	r.logger.Debugf("Created user in repository: %s", u.ID)

	return nil
}

// GetUserByEmail retrieves a user by email.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			userCopy := u
			return &userCopy, nil
		}
	}

	return nil, fmt.Errorf("user %s: %w", email, model.ErrNotFound)
}

// ListUsers returns all users in insertion order.
func (r *Repository) ListUsers(ctx context.Context) ([]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]model.User, len(r.users))
	copy(users, r.users)

	return users, nil
}

// CreateTask creates a new task in the catalog.
func (r *Repository) CreateTask(ctx context.Context, t model.Task) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.tasks {
		if existing.ID == t.ID {
			return fmt.Errorf("task %s: %w", t.ID, model.ErrAlreadyExists)
		}
	}

	r.tasks = append(r.tasks, t)
	r.logger.Debugf("Created task in repository: %s", t.ID)

	return nil
}

// GetTask retrieves a task by ID.
func (r *Repository) GetTask(ctx context.Context, id string) (*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.tasks {
		if t.ID == id {
			taskCopy := t
			return &taskCopy, nil
		}
	}

	return nil, fmt.Errorf("task %s: %w", id, model.ErrNotFound)
}

// ListTasks returns all tasks in catalog (insertion) order.
func (r *Repository) ListTasks(ctx context.Context) ([]model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]model.Task, len(r.tasks))
	copy(tasks, r.tasks)

	return tasks, nil
}

// CreateAssignments links a task to the given users.
func (r *Repository) CreateAssignments(ctx context.Context, taskID string, userIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, userID := range userIDs {
		for _, existing := range r.assignments {
			if existing.TaskID == taskID && existing.UserID == userID {
				return fmt.Errorf("assignment (%s, %s): %w", taskID, userID, model.ErrAlreadyExists)
			}
		}
	}

	for _, userID := range userIDs {
		r.assignments = append(r.assignments, model.Assignment{TaskID: taskID, UserID: userID})
	}
	r.logger.Debugf("Created %d assignments for task %s", len(userIDs), taskID)

	return nil
}

// ListAssignments returns assignments, optionally filtered by task or user.
func (r *Repository) ListAssignments(ctx context.Context, filter storage.AssignmentFilter) ([]model.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assignments := make([]model.Assignment, 0, len(r.assignments))
	for _, a := range r.assignments {
		if filter.TaskID != "" && a.TaskID != filter.TaskID {
			continue
		}
		if filter.UserID != "" && a.UserID != filter.UserID {
			continue
		}
		assignments = append(assignments, a)
	}

	return assignments, nil
}

// UpsertEvent inserts or overwrites the event for its (task, user, period) key.
func (r *Repository) UpsertEvent(ctx context.Context, e model.CompletionEvent) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("invalid event: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := eventKey{taskID: e.TaskID, userID: e.UserID, period: e.Period}
	r.events[key] = e
	r.logger.Debugf("Upserted event (%s, %s, %s): %s", e.TaskID, e.UserID, e.Period, e.Status)

	return nil
}

// ListEvents returns completion events, optionally filtered by task, user
// and/or exact period. Ordered by (year, week, task, user) for determinism.
func (r *Repository) ListEvents(ctx context.Context, filter storage.EventFilter) ([]model.CompletionEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]model.CompletionEvent, 0, len(r.events))
	for _, e := range r.events {
		if filter.TaskID != "" && e.TaskID != filter.TaskID {
			continue
		}
		if filter.UserID != "" && e.UserID != filter.UserID {
			continue
		}
		if filter.Period != nil && e.Period != *filter.Period {
			continue
		}
		events = append(events, e)
	}

	sort.Slice(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.Period != b.Period {
			return a.Period.Before(b.Period)
		}
		if a.TaskID != b.TaskID {
			return a.TaskID < b.TaskID
		}
		return a.UserID < b.UserID
	})

	return events, nil
}
