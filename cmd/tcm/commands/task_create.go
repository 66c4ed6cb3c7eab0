package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/HubOfCJ/testcase-manager/internal/app/taskcreate"
	"github.com/HubOfCJ/testcase-manager/internal/storage/sqlite"
)

type TaskCreateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	title     string
	tooltip   string
	interval  int
	area      string
	assignees []string
}

// NewTaskCreateCommand returns the task create command.
func NewTaskCreateCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *TaskCreateCommand {
	c := &TaskCreateCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("create", "Create a new recurring task.")
	c.Cmd.Flag("title", "Title for the task.").Short('t').Required().StringVar(&c.title)
	c.Cmd.Flag("tooltip", "Longer description shown alongside the task.").StringVar(&c.tooltip)
	c.Cmd.Flag("interval", "Recurrence interval in weeks.").Short('i').Required().IntVar(&c.interval)
	c.Cmd.Flag("area", "Area tag for grouping tasks.").StringVar(&c.area)
	c.Cmd.Flag("assignee", "Email of a user the task is assigned to (repeatable).").StringsVar(&c.assignees)

	return c
}

func (c TaskCreateCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskCreateCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	// Initialize storage (SQLite).
	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.rootCmd.DBPath,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}
	defer repo.Close()

	// Create service.
	svc, err := taskcreate.NewService(taskcreate.ServiceConfig{
		UserRepository: repo,
		TaskRepository: repo,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	// Execute create.
	task, err := svc.Run(ctx, taskcreate.Request{
		Title:          c.title,
		Tooltip:        c.tooltip,
		IntervalWeeks:  c.interval,
		Area:           c.area,
		AssigneeEmails: c.assignees,
	})
	if err != nil {
		return fmt.Errorf("could not create task: %w", err)
	}

	// Output success message.
	fmt.Fprintf(c.rootCmd.Stdout, "Task created successfully!\n")
	fmt.Fprintf(c.rootCmd.Stdout, "  ID:       %s\n", task.ID)
	fmt.Fprintf(c.rootCmd.Stdout, "  Title:    %s\n", task.Title)
	fmt.Fprintf(c.rootCmd.Stdout, "  Interval: every %d weeks\n", task.IntervalWeeks)
	if task.Area != "" {
		fmt.Fprintf(c.rootCmd.Stdout, "  Area:     %s\n", task.Area)
	}
	if len(c.assignees) > 0 {
		fmt.Fprintf(c.rootCmd.Stdout, "  Assigned: %d users\n", len(c.assignees))
	}

	return nil
}
