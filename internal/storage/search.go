package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/javutech/medpipe/internal/model"
)

// DefaultTopK is the snippet count returned when a caller asks for zero or
// a negative number of results.
const DefaultTopK = 3

// IndexSnippets replaces the indexed snippets of a document with the given
// contents. The FTS triggers keep the full-text mirror in step.
func (s *SQLiteStorage) IndexSnippets(ctx context.Context, doc *model.Document, contents []string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateDocument(doc); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM snippets WHERE document_id = ?`, doc.ID.String()); err != nil {
		return fmt.Errorf("failed to clear old snippets: %w", err)
	}
	for _, content := range contents {
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO snippets (document_id, title, content) VALUES (?, ?, ?)`,
			doc.ID.String(), doc.Title, content); err != nil {
			return fmt.Errorf("failed to index snippet: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snippet index: %w", err)
	}
	return nil
}

// SearchSnippets returns the topK most relevant snippets for the query.
// With FTS5 available, relevance is bm25 with content weighted over title;
// otherwise a LIKE scan ordered by recency stands in.
func (s *SQLiteStorage) SearchSnippets(ctx context.Context, query string, topK int) ([]model.SearchResult, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(query, "query"); err != nil {
		return nil, err
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	if match := ftsQuery(query); s.fts && match != "" {
		return s.searchFTS(ctx, match, topK)
	}
	return s.searchLike(ctx, query, topK)
}

func (s *SQLiteStorage) searchFTS(ctx context.Context, match string, topK int) ([]model.SearchResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.document_id, s.title, s.content, s.indexed_at,
		       bm25(snippets_fts, 1.0, 2.0) AS rank
		FROM snippets_fts
		JOIN snippets s ON s.id = snippets_fts.rowid
		WHERE snippets_fts MATCH ?
		ORDER BY rank
		LIMIT ?`, match, topK)
	if err != nil {
		return nil, fmt.Errorf("full-text search failed: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return scanSearchResults(rows.Next, rows.Scan, rows.Err)
}

func (s *SQLiteStorage) searchLike(ctx context.Context, query string, topK int) ([]model.SearchResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, title, content, indexed_at, 0.0 AS rank
		FROM snippets
		WHERE content LIKE ? OR title LIKE ?
		ORDER BY indexed_at DESC
		LIMIT ?`, "%"+query+"%", "%"+query+"%", topK)
	if err != nil {
		return nil, fmt.Errorf("snippet search failed: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return scanSearchResults(rows.Next, rows.Scan, rows.Err)
}

// ftsQuery turns free text into an FTS5 query: each term quoted and OR-ed,
// so user punctuation cannot break the match syntax.
func ftsQuery(query string) string {
	terms := strings.Fields(query)
	quoted := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ReplaceAll(t, `"`, "")
		if t == "" {
			continue
		}
		quoted = append(quoted, `"`+t+`"`)
	}
	return strings.Join(quoted, " OR ")
}

func scanSearchResults(next func() bool, scan func(...any) error, rowsErr func() error) ([]model.SearchResult, error) {
	var results []model.SearchResult
	for next() {
		var (
			r     model.SearchResult
			rawID string
		)
		if err := scan(&r.Snippet.ID, &rawID, &r.Snippet.Title, &r.Snippet.Content, &r.Snippet.IndexedAt, &r.Rank); err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		id, err := parseUUID(rawID)
		if err != nil {
			return nil, err
		}
		r.Snippet.DocumentID = id
		results = append(results, r)
	}
	return results, rowsErr()
}
