package taskcreate

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/HubOfCJ/testcase-manager/internal/log"
	"github.com/HubOfCJ/testcase-manager/internal/model"
	"github.com/HubOfCJ/testcase-manager/internal/storage"
)

// ServiceConfig is the configuration for the task create service.
type ServiceConfig struct {
	UserRepository storage.UserRepository
	TaskRepository storage.TaskRepository
	Logger         log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.UserRepository == nil {
		return fmt.Errorf("user repository is required")
	}
	if c.TaskRepository == nil {
		return fmt.Errorf("task repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Service creates tasks in the catalog and assigns them to users.
type Service struct {
	userRepo storage.UserRepository
	taskRepo storage.TaskRepository
	logger   log.Logger
}

// NewService creates a new task create service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		userRepo: cfg.UserRepository,
		taskRepo: cfg.TaskRepository,
		logger:   cfg.Logger,
	}, nil
}

// Request represents the task creation parameters.
type Request struct {
	Title         string
	Tooltip       string
	IntervalWeeks int
	Area          string
	// AssigneeEmails are the users the task is relevant for. All emails must
	// resolve to existing users, otherwise nothing is created.
	AssigneeEmails []string
}

// Run creates the task and its assignments, returning the created task.
func (s *Service) Run(ctx context.Context, req Request) (*model.Task, error) {
	task := model.Task{
		ID:            ulid.Make().String(),
		Title:         req.Title,
		Tooltip:       req.Tooltip,
		IntervalWeeks: req.IntervalWeeks,
		Area:          req.Area,
		CreatedAt:     time.Now().UTC(),
	}
	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("invalid task: %w", err)
	}

	// Resolve assignees before writing anything.
	userIDs := make([]string, 0, len(req.AssigneeEmails))
	for _, email := range req.AssigneeEmails {
		user, err := s.userRepo.GetUserByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("could not resolve assignee %s: %w", email, err)
		}
		userIDs = append(userIDs, user.ID)
	}

	if err := s.taskRepo.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("could not create task: %w", err)
	}

	if err := s.taskRepo.CreateAssignments(ctx, task.ID, userIDs); err != nil {
		return nil, fmt.Errorf("could not create assignments: %w", err)
	}

	s.logger.Infof("Created task %s (%s) with %d assignees", task.Title, task.ID, len(userIDs))
	return &task, nil
}
