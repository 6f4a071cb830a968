package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a fatal
// error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS documents (
					id TEXT PRIMARY KEY,
					path TEXT UNIQUE NOT NULL,
					title TEXT,
					page_count INTEGER DEFAULT 0,
					ingested_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_documents_path ON documents(path)`,

				`CREATE TABLE IF NOT EXISTS classifications (
					document_id TEXT PRIMARY KEY,
					document_type TEXT NOT NULL,
					processing_method TEXT NOT NULL,
					confidence REAL DEFAULT 0,
					evidence TEXT,
					classified_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (document_id) REFERENCES documents(id)
				)`,
				`CREATE INDEX idx_classifications_confidence ON classifications(confidence)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Add routing override column for review",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`ALTER TABLE classifications ADD COLUMN override_method TEXT NOT NULL DEFAULT ''`)
			return err
		},
	},
	{
		Version:     3,
		Description: "Add plain snippets table backing the retrieval index",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS snippets (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					document_id TEXT NOT NULL,
					title TEXT,
					content TEXT NOT NULL,
					indexed_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (document_id) REFERENCES documents(id)
				)`,
				`CREATE INDEX idx_snippets_document ON snippets(document_id)`,
			}
			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate applies all pending database migrations, then prepares the
// full-text index when the driver supports FTS5.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return s.prepareFTS(ctx)
}

// prepareFTS creates the FTS5 mirror of the snippets table. The virtual
// table lives outside versioned migrations so that databases created by a
// non-FTS build upgrade cleanly when reopened by an FTS-enabled one.
func (s *SQLiteStorage) prepareFTS(ctx context.Context) error {
	if !ftsAvailable(s.db) {
		slog.Warn("FTS5 unavailable, snippet search falls back to LIKE matching")
		s.fts = false
		return nil
	}

	queries := []string{
		`CREATE VIRTUAL TABLE IF NOT EXISTS snippets_fts USING fts5(
			title, content, content='snippets', content_rowid='id'
		)`,
		`CREATE TRIGGER IF NOT EXISTS snippets_ai AFTER INSERT ON snippets BEGIN
			INSERT INTO snippets_fts(rowid, title, content) VALUES (new.id, new.title, new.content);
		END`,
		`CREATE TRIGGER IF NOT EXISTS snippets_ad AFTER DELETE ON snippets BEGIN
			INSERT INTO snippets_fts(snippets_fts, rowid, title, content) VALUES ('delete', old.id, old.title, old.content);
		END`,
		// pick up rows written by a non-FTS build
		`INSERT INTO snippets_fts(snippets_fts) VALUES ('rebuild')`,
	}
	for _, query := range queries {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to prepare full-text index: %w", err)
		}
	}
	s.fts = true
	return nil
}
