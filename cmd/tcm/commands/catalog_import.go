package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"

	"github.com/HubOfCJ/testcase-manager/internal/app/catalogimport"
	"github.com/HubOfCJ/testcase-manager/internal/app/taskcreate"
	"github.com/HubOfCJ/testcase-manager/internal/app/usercreate"
	storageio "github.com/HubOfCJ/testcase-manager/internal/storage/io"
	"github.com/HubOfCJ/testcase-manager/internal/storage/sqlite"
)

type CatalogImportCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	file string
}

// NewCatalogImportCommand returns the catalog import command.
func NewCatalogImportCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *CatalogImportCommand {
	c := &CatalogImportCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("import", "Import users and tasks from a YAML seed file.")
	c.Cmd.Flag("file", "Path to the YAML seed file.").Short('f').Required().StringVar(&c.file)

	return c
}

func (c CatalogImportCommand) Name() string { return c.Cmd.FullCommand() }

func (c CatalogImportCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	// Load the catalog from disk.
	absPath, err := filepath.Abs(c.file)
	if err != nil {
		return fmt.Errorf("could not resolve seed file path: %w", err)
	}
	catalogRepo := storageio.NewCatalogYAMLRepository(os.DirFS(filepath.Dir(absPath)))
	catalog, err := catalogRepo.GetCatalog(ctx, filepath.Base(absPath))
	if err != nil {
		return fmt.Errorf("could not load catalog: %w", err)
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

	// Create services.
	userCreateSvc, err := usercreate.NewService(usercreate.ServiceConfig{
		UserRepository: repo,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("could not create user service: %w", err)
	}

	taskCreateSvc, err := taskcreate.NewService(taskcreate.ServiceConfig{
		UserRepository: repo,
		TaskRepository: repo,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("could not create task service: %w", err)
	}

	svc, err := catalogimport.NewService(catalogimport.ServiceConfig{
		UserCreateService: userCreateSvc,
		TaskCreateService: taskCreateSvc,
		Logger:            logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	// Execute import.
	result, err := svc.Run(ctx, catalogimport.Request{Catalog: catalog})
	if err != nil {
		return fmt.Errorf("could not import catalog: %w", err)
	}

	// Output summary.
	fmt.Fprintf(c.rootCmd.Stdout, "Catalog imported successfully!\n")
	fmt.Fprintf(c.rootCmd.Stdout, "  Users created: %d\n", result.UsersCreated)
	if result.UsersSkipped > 0 {
		fmt.Fprintf(c.rootCmd.Stdout, "  Users skipped: %d (already exist)\n", result.UsersSkipped)
	}
	fmt.Fprintf(c.rootCmd.Stdout, "  Tasks created: %d\n", result.TasksCreated)

	return nil
}
