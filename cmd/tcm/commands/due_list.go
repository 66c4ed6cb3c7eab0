package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/HubOfCJ/testcase-manager/internal/app/dueset"
	"github.com/HubOfCJ/testcase-manager/internal/model"
	"github.com/HubOfCJ/testcase-manager/internal/printer"
	"github.com/HubOfCJ/testcase-manager/internal/storage/sqlite"
)

type DueListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	userEmail  string
	week       int
	year       int
	weeksAhead int
	format     string
}

// NewDueListCommand returns the due list command.
func NewDueListCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *DueListCommand {
	c := &DueListCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("list", "List tasks due in a period.")
	c.Cmd.Flag("user", "Restrict the due list to a single user (email).").Short('u').StringVar(&c.userEmail)
	c.Cmd.Flag("week", "ISO week of the target period (defaults to the current week).").IntVar(&c.week)
	c.Cmd.Flag("year", "Year of the target period (defaults to the current year).").IntVar(&c.year)
	c.Cmd.Flag("weeks-ahead", "Preview the due list this many weeks after the target period.").IntVar(&c.weeksAhead)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c DueListCommand) Name() string { return c.Cmd.FullCommand() }

func (c DueListCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	// Resolve target period, defaulting missing parts to the current week.
	target := model.PeriodOf(time.Now())
	if c.week != 0 {
		target.Week = c.week
	}
	if c.year != 0 {
		target.Year = c.year
	}
	if c.weeksAhead != 0 {
		target = target.AddWeeks(c.weeksAhead)
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

	// Create due set service.
	svc, err := dueset.NewService(dueset.ServiceConfig{
		UserRepository:  repo,
		TaskRepository:  repo,
		EventRepository: repo,
		Logger:          logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	// Execute due set computation.
	items, err := svc.Run(ctx, dueset.Request{
		TargetPeriod: target,
		UserEmail:    c.userEmail,
	})
	if err != nil {
		return fmt.Errorf("could not compute due list: %w", err)
	}

	// Print output.
	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if err := p.PrintDueList(items); err != nil {
		return fmt.Errorf("could not print due list: %w", err)
	}

	return nil
}
