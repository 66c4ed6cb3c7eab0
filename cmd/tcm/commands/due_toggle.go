package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/HubOfCJ/testcase-manager/internal/app/toggle"
	"github.com/HubOfCJ/testcase-manager/internal/model"
	"github.com/HubOfCJ/testcase-manager/internal/storage/sqlite"
)

type DueToggleCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	taskID     string
	actorEmail string
	userEmail  string
	week       int
	year       int
}

// NewDueToggleCommand returns the due toggle command.
func NewDueToggleCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *DueToggleCommand {
	c := &DueToggleCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("toggle", "Toggle a task between open and done for a period.")
	c.Cmd.Flag("task", "ID of the task to toggle.").Short('t').Required().StringVar(&c.taskID)
	c.Cmd.Flag("as", "Email of the acting user.").Required().StringVar(&c.actorEmail)
	c.Cmd.Flag("user", "Email of the user the status belongs to (defaults to the acting user).").Short('u').StringVar(&c.userEmail)
	c.Cmd.Flag("week", "ISO week of the period (defaults to the current week).").IntVar(&c.week)
	c.Cmd.Flag("year", "Year of the period (defaults to the current year).").IntVar(&c.year)

	return c
}

func (c DueToggleCommand) Name() string { return c.Cmd.FullCommand() }

func (c DueToggleCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	// Resolve period, defaulting missing parts to the current week.
	period := model.PeriodOf(time.Now())
	if c.week != 0 {
		period.Week = c.week
	}
	if c.year != 0 {
		period.Year = c.year
	}

	// Initialize storage (SQLite).
	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.rootCmd.DBPath,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}
	defer repo.Close()

	// Create toggle service.
	svc, err := toggle.NewService(toggle.ServiceConfig{
		UserRepository:  repo,
		TaskRepository:  repo,
		EventRepository: repo,
		Logger:          logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	// Execute toggle.
	status, err := svc.Run(ctx, toggle.Request{
		ActorEmail: c.actorEmail,
		TaskID:     c.taskID,
		UserEmail:  c.userEmail,
		Period:     period,
	})
	if err != nil {
		return fmt.Errorf("could not toggle task status: %w", err)
	}

	fmt.Fprintf(c.rootCmd.Stdout, "Task %s is now %s for %s\n", c.taskID, status, period)

	return nil
}
