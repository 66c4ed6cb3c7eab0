package conventions

import "path/filepath"

const (
	// DefaultDataDir is the default tcm data directory name (relative to home).
	DefaultDataDir = ".tcm"
	// DBFile is the SQLite database filename inside the data directory.
	DBFile = "tcm.db"
)

// DBPath returns the full path to the SQLite database file.
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, DBFile)
}
