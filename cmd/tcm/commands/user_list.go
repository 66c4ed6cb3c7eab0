package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/HubOfCJ/testcase-manager/internal/app/userlist"
	"github.com/HubOfCJ/testcase-manager/internal/model"
	"github.com/HubOfCJ/testcase-manager/internal/printer"
	"github.com/HubOfCJ/testcase-manager/internal/storage/sqlite"
)

type UserListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	roleFilter string
	format     string
}

// NewUserListCommand returns the user list command.
func NewUserListCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *UserListCommand {
	c := &UserListCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("list", "List all users.")
	c.Cmd.Flag("role", "Filter by role (admin, tester, observer).").StringVar(&c.roleFilter)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c UserListCommand) Name() string { return c.Cmd.FullCommand() }

func (c UserListCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	// Parse role filter if provided.
	var roleFilter *model.Role
	if c.roleFilter != "" {
		role := model.Role(strings.ToLower(c.roleFilter))
		// Validate role value.
		switch role {
		case model.RoleAdmin, model.RoleTester, model.RoleObserver:
			roleFilter = &role
		default:
			return fmt.Errorf("invalid role filter: %s (must be: admin, tester, observer)", c.roleFilter)
		}
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

	// Create list service.
	svc, err := userlist.NewService(userlist.ServiceConfig{
		UserRepository: repo,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	// Execute list.
	users, err := svc.Run(ctx, userlist.Request{
		RoleFilter: roleFilter,
	})
	if err != nil {
		return fmt.Errorf("could not list users: %w", err)
	}

	// Print output.
	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if err := p.PrintUsers(users); err != nil {
		return fmt.Errorf("could not print users: %w", err)
	}

	return nil
}
