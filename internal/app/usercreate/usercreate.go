package usercreate

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/HubOfCJ/testcase-manager/internal/log"
	"github.com/HubOfCJ/testcase-manager/internal/model"
	"github.com/HubOfCJ/testcase-manager/internal/storage"
)

// ServiceConfig is the configuration for the user create service.
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

// Service creates users in the directory.
type Service struct {
	userRepo storage.UserRepository
	logger   log.Logger
}

// NewService creates a new user create service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		userRepo: cfg.UserRepository,
		logger:   cfg.Logger,
	}, nil
}

// Request represents the user creation parameters.
type Request struct {
	Username string
	Email    string
	Role     model.Role
}

// Run creates the user and returns it.
func (s *Service) Run(ctx context.Context, req Request) (*model.User, error) {
	user := model.User{
		ID:        ulid.Make().String(),
		Username:  req.Username,
		Email:     req.Email,
		Role:      req.Role,
		CreatedAt: time.Now().UTC(),
	}
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("invalid user: %w", err)
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("could not create user: %w", err)
	}

	s.logger.Infof("Created user %s (%s)", user.Email, user.ID)
	return &user, nil
}
