package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/HubOfCJ/testcase-manager/internal/app/usercreate"
	"github.com/HubOfCJ/testcase-manager/internal/model"
	"github.com/HubOfCJ/testcase-manager/internal/storage/sqlite"
)

type UserCreateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	username string
	email    string
	role     string
}

// NewUserCreateCommand returns the user create command.
func NewUserCreateCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *UserCreateCommand {
	c := &UserCreateCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("create", "Create a new user.")
	c.Cmd.Flag("username", "Username for the user.").Short('n').Required().StringVar(&c.username)
	c.Cmd.Flag("email", "Email for the user, used as the login identity.").Short('e').Required().StringVar(&c.email)
	c.Cmd.Flag("role", "Role for the user.").Default(string(model.RoleTester)).EnumVar(&c.role,
		string(model.RoleAdmin), string(model.RoleTester), string(model.RoleObserver))

	return c
}

func (c UserCreateCommand) Name() string { return c.Cmd.FullCommand() }

func (c UserCreateCommand) Run(ctx context.Context) error {
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
	svc, err := usercreate.NewService(usercreate.ServiceConfig{
		UserRepository: repo,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	// Execute create.
	user, err := svc.Run(ctx, usercreate.Request{
		Username: c.username,
		Email:    c.email,
		Role:     model.Role(c.role),
	})
	if err != nil {
		return fmt.Errorf("could not create user: %w", err)
	}

	// Output success message.
	fmt.Fprintf(c.rootCmd.Stdout, "User created successfully!\n")
	fmt.Fprintf(c.rootCmd.Stdout, "  ID:       %s\n", user.ID)
	fmt.Fprintf(c.rootCmd.Stdout, "  Username: %s\n", user.Username)
	fmt.Fprintf(c.rootCmd.Stdout, "  Email:    %s\n", user.Email)
	fmt.Fprintf(c.rootCmd.Stdout, "  Role:     %s\n", user.Role)

	return nil
}
