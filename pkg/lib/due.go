package lib

import (
	"context"
	"fmt"
	"time"

	"github.com/HubOfCJ/testcase-manager/internal/app/dueset"
	"github.com/HubOfCJ/testcase-manager/internal/app/toggle"
	"github.com/HubOfCJ/testcase-manager/internal/model"
)

// DueList computes the due list for a period. Pass nil opts for the full due
// list of the current week.
//
// The result is ordered by user and then by catalog order, and contains only
// tasks that are due in the target period for their assigned users.
func (c *Client) DueList(ctx context.Context, opts *DueListOpts) ([]DueItem, error) {
	svc, err := dueset.NewService(dueset.ServiceConfig{
		UserRepository:  c.repo,
		TaskRepository:  c.repo,
		EventRepository: c.repo,
		Logger:          c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	target := model.PeriodOf(time.Now())
	userEmail := ""
	if opts != nil {
		if opts.Period != nil {
			target = toInternalPeriod(*opts.Period)
		}
		userEmail = opts.UserEmail
	}

	items, err := svc.Run(ctx, dueset.Request{
		TargetPeriod: target,
		UserEmail:    userEmail,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return fromInternalDueList(items), nil
}

// Toggle flips a task between open and done for a user and period, and returns
// the new status.
//
// Returns [ErrNotAllowed] if the actor is an observer or targets another
// user's status, [ErrNotFound] for an unknown task or actor, and [ErrNotValid]
// for an invalid period.
func (c *Client) Toggle(ctx context.Context, opts ToggleOpts) (EventStatus, error) {
	svc, err := toggle.NewService(toggle.ServiceConfig{
		UserRepository:  c.repo,
		TaskRepository:  c.repo,
		EventRepository: c.repo,
		Logger:          c.logger,
	})
	if err != nil {
		return "", fmt.Errorf("could not create service: %w", err)
	}

	period := model.PeriodOf(time.Now())
	if opts.Period != nil {
		period = toInternalPeriod(*opts.Period)
	}

	status, err := svc.Run(ctx, toggle.Request{
		ActorEmail: opts.ActorEmail,
		TaskID:     opts.TaskID,
		UserEmail:  opts.UserEmail,
		Period:     period,
	})
	if err != nil {
		return "", mapError(err)
	}

	return EventStatus(status), nil
}
