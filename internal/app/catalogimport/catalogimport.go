package catalogimport

import (
	"context"
	"errors"
	"fmt"

	"github.com/HubOfCJ/testcase-manager/internal/app/taskcreate"
	"github.com/HubOfCJ/testcase-manager/internal/app/usercreate"
	"github.com/HubOfCJ/testcase-manager/internal/log"
	"github.com/HubOfCJ/testcase-manager/internal/model"
)

// ServiceConfig is the configuration for the catalog import service.
type ServiceConfig struct {
	UserCreateService *usercreate.Service
	TaskCreateService *taskcreate.Service
	Logger            log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.UserCreateService == nil {
		return fmt.Errorf("user create service is required")
	}
	if c.TaskCreateService == nil {
		return fmt.Errorf("task create service is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Service seeds the stores from a catalog batch (users first, then tasks with
// their assignments). Users that already exist are skipped so re-importing a
// seed with new tasks is safe.
type Service struct {
	userCreate *usercreate.Service
	taskCreate *taskcreate.Service
	logger     log.Logger
}

// NewService creates a new catalog import service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		userCreate: cfg.UserCreateService,
		taskCreate: cfg.TaskCreateService,
		logger:     cfg.Logger,
	}, nil
}

// Request represents the import request parameters.
type Request struct {
	Catalog model.Catalog
}

// Result summarizes what the import created.
type Result struct {
	UsersCreated int
	UsersSkipped int
	TasksCreated int
}

// Run imports the catalog and returns a summary.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	if err := req.Catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	result := &Result{}

	for _, u := range req.Catalog.Users {
		_, err := s.userCreate.Run(ctx, usercreate.Request{
			Username: u.Username,
			Email:    u.Email,
			Role:     u.Role,
		})
		if err != nil {
			if errors.Is(err, model.ErrAlreadyExists) {
				s.logger.Debugf("User %s already exists, skipping", u.Email)
				result.UsersSkipped++
				continue
			}
			return nil, fmt.Errorf("could not create user %s: %w", u.Email, err)
		}
		result.UsersCreated++
	}

	for _, t := range req.Catalog.Tasks {
		_, err := s.taskCreate.Run(ctx, taskcreate.Request{
			Title:          t.Title,
			Tooltip:        t.Tooltip,
			IntervalWeeks:  t.IntervalWeeks,
			Area:           t.Area,
			AssigneeEmails: t.Assignees,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create task %q: %w", t.Title, err)
		}
		result.TasksCreated++
	}

	s.logger.Infof("Imported catalog: %d users created, %d skipped, %d tasks created",
		result.UsersCreated, result.UsersSkipped, result.TasksCreated)
	return result, nil
}
