package toggle

import (
	"context"
	"fmt"
	"time"

	"github.com/HubOfCJ/testcase-manager/internal/log"
	"github.com/HubOfCJ/testcase-manager/internal/model"
	"github.com/HubOfCJ/testcase-manager/internal/storage"
)

// ServiceConfig is the configuration for the toggle service.
type ServiceConfig struct {
	UserRepository  storage.UserRepository
	TaskRepository  storage.TaskRepository
	EventRepository storage.EventRepository
	Logger          log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.UserRepository == nil {
		return fmt.Errorf("user repository is required")
	}
	if c.TaskRepository == nil {
		return fmt.Errorf("task repository is required")
	}
	if c.EventRepository == nil {
		return fmt.Errorf("event repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Service toggles the completion status of a (task, user, period) triple.
//
// Authorization lives here, not at call sites: observers are rejected, and a
// user may only toggle their own status. Each successful run issues exactly
// one upsert, the store's merge-on-conflict keeps the triple unique under
// concurrent callers.
type Service struct {
	userRepo  storage.UserRepository
	taskRepo  storage.TaskRepository
	eventRepo storage.EventRepository
	logger    log.Logger
}

// NewService creates a new toggle service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		userRepo:  cfg.UserRepository,
		taskRepo:  cfg.TaskRepository,
		eventRepo: cfg.EventRepository,
		logger:    cfg.Logger,
	}, nil
}

// Request represents the toggle request parameters.
type Request struct {
	// ActorEmail identifies the user performing the toggle.
	ActorEmail string
	// TaskID is the task whose status is toggled.
	TaskID string
	// UserEmail is the user the status belongs to. Empty means the actor
	// themselves, any other value than the actor's own email is rejected.
	UserEmail string
	// Period is the period to toggle.
	Period model.Period
}

// Run toggles the status for the triple and returns the new status.
func (s *Service) Run(ctx context.Context, req Request) (model.EventStatus, error) {
	if err := req.Period.Validate(); err != nil {
		return "", fmt.Errorf("invalid period: %w", err)
	}

	actor, err := s.userRepo.GetUserByEmail(ctx, req.ActorEmail)
	if err != nil {
		return "", fmt.Errorf("could not get acting user: %w", err)
	}

	if actor.Role == model.RoleObserver {
		return "", fmt.Errorf("observer %s cannot toggle status: %w", actor.Email, model.ErrNotAllowed)
	}
	if req.UserEmail != "" && req.UserEmail != actor.Email {
		return "", fmt.Errorf("user %s cannot toggle status of %s: %w", actor.Email, req.UserEmail, model.ErrNotAllowed)
	}

	task, err := s.taskRepo.GetTask(ctx, req.TaskID)
	if err != nil {
		return "", fmt.Errorf("could not get task: %w", err)
	}

	// Absence of an event for the triple behaves as open.
	current := model.EventStatusOpen
	events, err := s.eventRepo.ListEvents(ctx, storage.EventFilter{
		TaskID: task.ID,
		UserID: actor.ID,
		Period: &req.Period,
	})
	if err != nil {
		return "", fmt.Errorf("could not list events: %w", err)
	}
	if len(events) > 0 {
		current = events[0].Status
	}

	newStatus := current.Toggle()

	err = s.eventRepo.UpsertEvent(ctx, model.CompletionEvent{
		TaskID:    task.ID,
		UserID:    actor.ID,
		Period:    req.Period,
		Status:    newStatus,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("could not upsert event: %w", err)
	}

	s.logger.Infof("Toggled (%s, %s, %s): %s -> %s", task.ID, actor.Email, req.Period, current, newStatus)
	return newStatus, nil
}
