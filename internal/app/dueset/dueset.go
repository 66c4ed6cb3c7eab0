package dueset

import (
	"context"
	"fmt"

	"github.com/HubOfCJ/testcase-manager/internal/log"
	"github.com/HubOfCJ/testcase-manager/internal/model"
	"github.com/HubOfCJ/testcase-manager/internal/storage"
)

// ServiceConfig is the configuration for the due-set service.
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

// Service computes the set of (task, user) pairs due at a target period.
//
// The computation is read-only and deterministic: running it twice over
// unchanged stores yields the same sequence. Any store error fails the whole
// computation rather than producing a due set from partial data, a missing
// event fetch would otherwise be indistinguishable from "never done".
type Service struct {
	userRepo  storage.UserRepository
	taskRepo  storage.TaskRepository
	eventRepo storage.EventRepository
	logger    log.Logger
}

// NewService creates a new due-set service.
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

// Request represents the due-set request parameters.
type Request struct {
	// TargetPeriod is the period to evaluate. Use a future period to preview
	// upcoming obligations, the algorithm is the same.
	TargetPeriod model.Period

	// UserEmail optionally restricts the due set to a single user.
	UserEmail string
}

type pairKey struct {
	taskID string
	userID string
}

// Run computes the due set for the target period. The result is grouped by
// user in directory order, then by task in catalog order.
func (s *Service) Run(ctx context.Context, req Request) ([]model.DueItem, error) {
	if err := req.TargetPeriod.Validate(); err != nil {
		return nil, fmt.Errorf("invalid target period: %w", err)
	}

	s.logger.Debugf("computing due set for %s", req.TargetPeriod)

	users, err := s.listUsers(ctx, req.UserEmail)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list tasks: %w", err)
	}

	assignmentFilter := storage.AssignmentFilter{}
	eventFilter := storage.EventFilter{}
	if len(users) == 1 && req.UserEmail != "" {
		assignmentFilter.UserID = users[0].ID
		eventFilter.UserID = users[0].ID
	}

	assignments, err := s.taskRepo.ListAssignments(ctx, assignmentFilter)
	if err != nil {
		return nil, fmt.Errorf("could not list assignments: %w", err)
	}

	events, err := s.eventRepo.ListEvents(ctx, eventFilter)
	if err != nil {
		return nil, fmt.Errorf("could not list events: %w", err)
	}

	assigned := map[pairKey]bool{}
	for _, a := range assignments {
		assigned[pairKey{taskID: a.TaskID, userID: a.UserID}] = true
	}

	eventsByPair := map[pairKey][]model.CompletionEvent{}
	for _, ev := range events {
		key := pairKey{taskID: ev.TaskID, userID: ev.UserID}
		eventsByPair[key] = append(eventsByPair[key], ev)
	}

	// Assignments referencing tasks or users missing from the catalogs are
	// stale data, the users x tasks iteration skips them instead of failing.
	result := []model.DueItem{}
	for _, user := range users {
		for _, task := range tasks {
			key := pairKey{taskID: task.ID, userID: user.ID}
			if !assigned[key] {
				continue
			}

			// Only history strictly before the target period gates recurrence.
			// An event in the target period itself is the status being toggled,
			// it must not push the task out of its own due list.
			history := make([]model.CompletionEvent, 0, len(eventsByPair[key]))
			for _, ev := range eventsByPair[key] {
				if ev.Period.Before(req.TargetPeriod) {
					history = append(history, ev)
				}
			}

			lastDone := model.LatestDone(history)
			if !task.DueAt(lastDone, req.TargetPeriod) {
				continue
			}

			status := model.EventStatusOpen
			for _, ev := range eventsByPair[key] {
				if ev.Period == req.TargetPeriod {
					status = ev.Status
					break
				}
			}

			result = append(result, model.DueItem{
				Task:   task,
				User:   user,
				Period: req.TargetPeriod,
				Status: status,
			})
		}
	}

	s.logger.Debugf("due set for %s has %d entries", req.TargetPeriod, len(result))
	return result, nil
}

func (s *Service) listUsers(ctx context.Context, email string) ([]model.User, error) {
	if email != "" {
		user, err := s.userRepo.GetUserByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("could not get user: %w", err)
		}
		return []model.User{*user}, nil
	}

	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list users: %w", err)
	}
	return users, nil
}
