// Package sqlite provides a source catalog persisted in SQLite. Source
// definitions survive process restarts while compilation artifacts remain
// memory-only.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/mkessel/artifactfs/catalog"
)

// SQLiteCatalog stores source text in a single SQLite table keyed by class
// name.
type SQLiteCatalog struct {
	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteCatalog opens or creates a catalog database. The dbPath can be
// ":memory:" for an in-memory database or a file path.
func NewSQLiteCatalog(dbPath string) (*SQLiteCatalog, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, err
	}

	sc := &SQLiteCatalog{db: db}
	if err := sc.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return sc, nil
}

// initSchema creates the database schema.
func (sc *SQLiteCatalog) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS artifactfs_sources (
		class_name  TEXT PRIMARY KEY,
		source      TEXT NOT NULL,
		modify_time INTEGER NOT NULL
	);
	`

	_, err := sc.db.Exec(schema)
	return err
}

// Resolve returns the source text registered under className.
func (sc *SQLiteCatalog) Resolve(ctx context.Context, className string) (string, error) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	var source string
	err := sc.db.QueryRowContext(ctx,
		"SELECT source FROM artifactfs_sources WHERE class_name = ?",
		className).Scan(&source)

	if err == sql.ErrNoRows {
		return "", fmt.Errorf("%w: %s", catalog.ErrNotFound, className)
	}
	if err != nil {
		return "", fmt.Errorf("failed to query source: %w", err)
	}

	return source, nil
}

// Store registers source text under className, replacing any previous text.
func (sc *SQLiteCatalog) Store(ctx context.Context, className, source string) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	_, err := sc.db.ExecContext(ctx,
		`INSERT INTO artifactfs_sources (class_name, source, modify_time)
		 VALUES (?, ?, ?)
		 ON CONFLICT(class_name) DO UPDATE SET source = excluded.source, modify_time = excluded.modify_time`,
		className, source, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to store source: %w", err)
	}

	return nil
}

// List returns the class names under the given dotted package prefix in
// lexical order.
func (sc *SQLiteCatalog) List(ctx context.Context, pkg string) ([]string, error) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	query := "SELECT class_name FROM artifactfs_sources ORDER BY class_name"
	args := []any{}
	if pkg != "" {
		query = `SELECT class_name FROM artifactfs_sources WHERE class_name LIKE ? ESCAPE '\' ORDER BY class_name`
		args = append(args, catalog.LikePattern(pkg))
	}

	rows, err := sc.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// Delete removes the source registered under className.
func (sc *SQLiteCatalog) Delete(ctx context.Context, className string) (bool, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	result, err := sc.db.ExecContext(ctx,
		"DELETE FROM artifactfs_sources WHERE class_name = ?", className)
	if err != nil {
		return false, fmt.Errorf("failed to delete source: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// Close closes the underlying database.
func (sc *SQLiteCatalog) Close(ctx context.Context) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	return sc.db.Close()
}
