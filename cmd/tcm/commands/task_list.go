package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/HubOfCJ/testcase-manager/internal/app/tasklist"
	"github.com/HubOfCJ/testcase-manager/internal/printer"
	"github.com/HubOfCJ/testcase-manager/internal/storage/sqlite"
)

type TaskListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	areaFilter string
	format     string
}

// NewTaskListCommand returns the task list command.
func NewTaskListCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *TaskListCommand {
	c := &TaskListCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("list", "List all tasks in the catalog.")
	c.Cmd.Flag("area", "Filter by area tag.").StringVar(&c.areaFilter)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c TaskListCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskListCommand) Run(ctx context.Context) error {
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

	// Create list service.
	svc, err := tasklist.NewService(tasklist.ServiceConfig{
		TaskRepository: repo,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	// Execute list.
	tasks, err := svc.Run(ctx, tasklist.Request{
		AreaFilter: c.areaFilter,
	})
	if err != nil {
		return fmt.Errorf("could not list tasks: %w", err)
	}

	// Print output.
	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if err := p.PrintTasks(tasks); err != nil {
		return fmt.Errorf("could not print tasks: %w", err)
	}

	return nil
}
