package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/javutech/medpipe/internal/model"
)

// SaveDocument inserts a document or refreshes its metadata if the path is
// already known. The existing ID is kept on conflict so classifications and
// snippets stay attached.
func (s *SQLiteStorage) SaveDocument(ctx context.Context, doc *model.Document) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateDocument(doc); err != nil {
		return err
	}

	ingestedAt := doc.IngestedAt
	if ingestedAt.IsZero() {
		ingestedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, path, title, page_count, ingested_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			title = excluded.title,
			page_count = excluded.page_count,
			ingested_at = excluded.ingested_at`,
		doc.ID.String(), doc.Path, doc.Title, doc.PageCount, ingestedAt)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

// GetDocument fetches a document by ID.
func (s *SQLiteStorage) GetDocument(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}
	return s.scanDocument(s.db.QueryRowContext(ctx, `
		SELECT id, path, title, page_count, ingested_at
		FROM documents WHERE id = ?`, id.String()))
}

// GetDocumentByPath fetches a document by its filesystem path.
func (s *SQLiteStorage) GetDocumentByPath(ctx context.Context, path string) (*model.Document, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}
	return s.scanDocument(s.db.QueryRowContext(ctx, `
		SELECT id, path, title, page_count, ingested_at
		FROM documents WHERE path = ?`, path))
}

// ListDocuments returns all known documents, newest first.
func (s *SQLiteStorage) ListDocuments(ctx context.Context) ([]model.Document, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, path, title, page_count, ingested_at
		FROM documents ORDER BY ingested_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var docs []model.Document
	for rows.Next() {
		var (
			doc   model.Document
			rawID string
		)
		if err := rows.Scan(&rawID, &doc.Path, &doc.Title, &doc.PageCount, &doc.IngestedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		doc.ID, err = uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("corrupt document ID %q: %w", rawID, err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (s *SQLiteStorage) scanDocument(row *sql.Row) (*model.Document, error) {
	var (
		doc   model.Document
		rawID string
	)
	err := row.Scan(&rawID, &doc.Path, &doc.Title, &doc.PageCount, &doc.IngestedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	doc.ID, err = uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("corrupt document ID %q: %w", rawID, err)
	}
	return &doc, nil
}
