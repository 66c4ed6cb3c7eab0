package lib

import (
	"context"
	"fmt"

	"github.com/HubOfCJ/testcase-manager/internal/app/catalogimport"
	"github.com/HubOfCJ/testcase-manager/internal/app/taskcreate"
	"github.com/HubOfCJ/testcase-manager/internal/app/tasklist"
	"github.com/HubOfCJ/testcase-manager/internal/app/usercreate"
	"github.com/HubOfCJ/testcase-manager/internal/app/userlist"
	"github.com/HubOfCJ/testcase-manager/internal/model"
)

// CreateUser creates a new user.
//
// Returns [ErrAlreadyExists] if a user with the same email exists, or
// [ErrNotValid] if the options are invalid.
func (c *Client) CreateUser(ctx context.Context, opts CreateUserOpts) (*User, error) {
	role := opts.Role
	if role == "" {
		role = RoleTester
	}

	svc, err := usercreate.NewService(usercreate.ServiceConfig{
		UserRepository: c.repo,
		Logger:         c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	user, err := svc.Run(ctx, usercreate.Request{
		Username: opts.Username,
		Email:    opts.Email,
		Role:     model.Role(role),
	})
	if err != nil {
		return nil, mapError(err)
	}

	result := fromInternalUser(*user)
	return &result, nil
}

// ListUsers lists users with optional filtering. Pass nil opts for all users.
func (c *Client) ListUsers(ctx context.Context, opts *ListUsersOpts) ([]User, error) {
	svc, err := userlist.NewService(userlist.ServiceConfig{
		UserRepository: c.repo,
		Logger:         c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	var roleFilter *model.Role
	if opts != nil && opts.Role != nil {
		role := model.Role(*opts.Role)
		roleFilter = &role
	}

	users, err := svc.Run(ctx, userlist.Request{
		RoleFilter: roleFilter,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return fromInternalUserList(users), nil
}

// CreateTask creates a new recurring task and assigns it to the given users.
//
// Returns [ErrNotValid] for a missing title or non-positive interval, and
// [ErrNotFound] if an assignee email does not resolve to an existing user.
func (c *Client) CreateTask(ctx context.Context, opts CreateTaskOpts) (*Task, error) {
	svc, err := taskcreate.NewService(taskcreate.ServiceConfig{
		UserRepository: c.repo,
		TaskRepository: c.repo,
		Logger:         c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	task, err := svc.Run(ctx, taskcreate.Request{
		Title:          opts.Title,
		Tooltip:        opts.Tooltip,
		IntervalWeeks:  opts.IntervalWeeks,
		Area:           opts.Area,
		AssigneeEmails: opts.Assignees,
	})
	if err != nil {
		return nil, mapError(err)
	}

	result := fromInternalTask(*task)
	return &result, nil
}

// ListTasks lists catalog tasks with optional filtering. Pass nil opts for all tasks.
func (c *Client) ListTasks(ctx context.Context, opts *ListTasksOpts) ([]Task, error) {
	svc, err := tasklist.NewService(tasklist.ServiceConfig{
		TaskRepository: c.repo,
		Logger:         c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	area := ""
	if opts != nil {
		area = opts.Area
	}

	tasks, err := svc.Run(ctx, tasklist.Request{
		AreaFilter: area,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return fromInternalTaskList(tasks), nil
}

// ImportCatalog seeds the tracker from a catalog batch, users first and then
// tasks with their assignments. Users that already exist are skipped, so
// re-importing a seed with new tasks is safe.
func (c *Client) ImportCatalog(ctx context.Context, catalog Catalog) (*ImportResult, error) {
	userCreateSvc, err := usercreate.NewService(usercreate.ServiceConfig{
		UserRepository: c.repo,
		Logger:         c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	taskCreateSvc, err := taskcreate.NewService(taskcreate.ServiceConfig{
		UserRepository: c.repo,
		TaskRepository: c.repo,
		Logger:         c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	svc, err := catalogimport.NewService(catalogimport.ServiceConfig{
		UserCreateService: userCreateSvc,
		TaskCreateService: taskCreateSvc,
		Logger:            c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	result, err := svc.Run(ctx, catalogimport.Request{
		Catalog: toInternalCatalog(catalog),
	})
	if err != nil {
		return nil, mapError(err)
	}

	return &ImportResult{
		UsersCreated: result.UsersCreated,
		UsersSkipped: result.UsersSkipped,
		TasksCreated: result.TasksCreated,
	}, nil
}
