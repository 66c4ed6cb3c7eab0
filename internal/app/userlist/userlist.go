package userlist

import (
	"context"
	"fmt"

	"github.com/HubOfCJ/testcase-manager/internal/log"
	"github.com/HubOfCJ/testcase-manager/internal/model"
	"github.com/HubOfCJ/testcase-manager/internal/storage"
)

// ServiceConfig is the configuration for the user list service.
type ServiceConfig struct {
	UserRepository storage.UserRepository
	Logger         log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.UserRepository == nil {
		return fmt.Errorf("user repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Service lists directory users with optional filtering.
type Service struct {
	userRepo storage.UserRepository
	logger   log.Logger
}

// NewService creates a new user list service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		userRepo: cfg.UserRepository,
		logger:   cfg.Logger,
	}, nil
}

// Request represents the list request parameters.
type Request struct {
	// RoleFilter is an optional filter to only show users with this role.
	RoleFilter *model.Role
}

// Run lists all users in directory order, optionally filtered by role.
func (s *Service) Run(ctx context.Context, req Request) ([]model.User, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list users: %w", err)
	}

	if req.RoleFilter != nil {
		filtered := make([]model.User, 0, len(users))
		for _, u := range users {
			if u.Role == *req.RoleFilter {
				filtered = append(filtered, u)
			}
		}
		users = filtered
	}

	s.logger.Debugf("found %d users", len(users))
	return users, nil
}
