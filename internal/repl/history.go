package repl

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// History persists REPL input lines across sessions in an embedded SQLite
// database.
type History struct {
	db *sql.DB
}

const historySchema = `
CREATE TABLE IF NOT EXISTS history (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	entered_at TEXT    NOT NULL DEFAULT (datetime('now')),
	line       TEXT    NOT NULL
);`

// OpenHistory opens (creating if needed) the history database at path.
func OpenHistory(path string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history %s: %w", path, err)
	}
	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history %s: %w", path, err)
	}
	return &History{db: db}, nil
}

// DefaultHistoryPath returns the history database location under the user
// cache directory.
func DefaultHistoryPath() (string, error) {
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locating cache directory: %w", err)
	}
	return filepath.Join(cache, "lumen", "history.db"), nil
}

// Append records one input line.
func (h *History) Append(line string) error {
	_, err := h.db.Exec(`INSERT INTO history (line) VALUES (?)`, line)
	return err
}

// Recent returns up to n lines, most recent first.
func (h *History) Recent(n int) ([]string, error) {
	rows, err := h.db.Query(`SELECT line FROM history ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// Close releases the database handle.
func (h *History) Close() error { return h.db.Close() }
