package lib

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/HubOfCJ/testcase-manager/internal/conventions"
	"github.com/HubOfCJ/testcase-manager/internal/log"
	"github.com/HubOfCJ/testcase-manager/internal/storage/sqlite"
)

// Config configures the SDK client.
//
// All fields are optional and have sensible defaults. At minimum, an empty
// Config{} will use ~/.tcm/tcm.db for storage.
type Config struct {
	// DBPath is the SQLite database path.
	// Default: ~/.tcm/tcm.db.
	DBPath string

	// DataDir is the base directory for tcm data.
	// Default: ~/.tcm.
	DataDir string

	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("could not get user home dir: %w", err)
		}
		c.DataDir = filepath.Join(home, conventions.DefaultDataDir)
	}

	if c.DBPath == "" {
		c.DBPath = conventions.DBPath(c.DataDir)
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Client is the main SDK entry point for working with the tracker programmatically.
//
// Create a Client with [New] and release its resources with [Client.Close].
// A Client is safe for concurrent use.
type Client struct {
	repo    *sqlite.Repository
	logger  log.Logger
	closeFn func() error
}

// New creates a new SDK client backed by a SQLite database.
//
// The caller must call [Client.Close] when done to release the database
// connection. Typically used with defer:
//
//	client, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: cfg.DBPath,
		Logger: cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create repository: %w", err)
	}

	return &Client{
		repo:    repo,
		logger:  cfg.Logger,
		closeFn: repo.Close,
	}, nil
}

// Close releases resources held by the client, including the database connection.
// After Close returns, the client must not be used.
func (c *Client) Close() error {
	if c.closeFn != nil {
		return c.closeFn()
	}
	return nil
}
