package tasklist

import (
	"context"
	"fmt"

	"github.com/HubOfCJ/testcase-manager/internal/log"
	"github.com/HubOfCJ/testcase-manager/internal/model"
	"github.com/HubOfCJ/testcase-manager/internal/storage"
)

// ServiceConfig is the configuration for the task list service.
type ServiceConfig struct {
	TaskRepository storage.TaskRepository
	Logger         log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.TaskRepository == nil {
		return fmt.Errorf("task repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Service lists catalog tasks with optional filtering.
type Service struct {
	taskRepo storage.TaskRepository
	logger   log.Logger
}

// NewService creates a new task list service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		taskRepo: cfg.TaskRepository,
		logger:   cfg.Logger,
	}, nil
}

// Request represents the list request parameters.
type Request struct {
	// AreaFilter is an optional filter to only show tasks with this area tag.
	AreaFilter string
}

// Run lists all tasks in catalog order, optionally filtered by area.
func (s *Service) Run(ctx context.Context, req Request) ([]model.Task, error) {
	tasks, err := s.taskRepo.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list tasks: %w", err)
	}

	if req.AreaFilter != "" {
		filtered := make([]model.Task, 0, len(tasks))
		for _, t := range tasks {
			if t.Area == req.AreaFilter {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}

	s.logger.Debugf("found %d tasks", len(tasks))
	return tasks, nil
}
