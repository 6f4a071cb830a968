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

// SaveClassification records a classification, replacing any prior record
// for the document. An existing review override survives re-classification.
func (s *SQLiteStorage) SaveClassification(ctx context.Context, c *model.StoredClassification) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateClassification(c); err != nil {
		return err
	}

	classifiedAt := c.ClassifiedAt
	if classifiedAt.IsZero() {
		classifiedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO classifications
			(document_id, document_type, processing_method, confidence, evidence, classified_at, override_method)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(document_id) DO UPDATE SET
			document_type = excluded.document_type,
			processing_method = excluded.processing_method,
			confidence = excluded.confidence,
			evidence = excluded.evidence,
			classified_at = excluded.classified_at`,
		c.DocumentID, string(c.DocumentType), string(c.ProcessingMethod),
		c.Confidence, c.EvidenceJSON, classifiedAt, string(c.OverrideMethod))
	if err != nil {
		return fmt.Errorf("failed to save classification: %w", err)
	}
	return nil
}

// GetClassification fetches the classification for a document.
func (s *SQLiteStorage) GetClassification(ctx context.Context, documentID uuid.UUID) (*model.StoredClassification, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(documentID, "documentID"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT document_id, document_type, processing_method, confidence, evidence, classified_at, override_method
		FROM classifications WHERE document_id = ?`, documentID.String())

	c, err := scanClassification(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClassificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get classification: %w", err)
	}
	return c, nil
}

// ListLowConfidenceClassifications returns classifications at or below the
// given confidence, least confident first. These are the review queue.
func (s *SQLiteStorage) ListLowConfidenceClassifications(ctx context.Context, maxConfidence float64) ([]model.StoredClassification, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT document_id, document_type, processing_method, confidence, evidence, classified_at, override_method
		FROM classifications
		WHERE confidence <= ?
		ORDER BY confidence ASC, classified_at DESC`, maxConfidence)
	if err != nil {
		return nil, fmt.Errorf("failed to list classifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.StoredClassification
	for rows.Next() {
		c, err := scanClassification(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan classification: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// OverrideRouting records a reviewer's routing decision for a document.
func (s *SQLiteStorage) OverrideRouting(ctx context.Context, documentID uuid.UUID, method model.ProcessingMethod) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(documentID, "documentID"); err != nil {
		return err
	}
	switch method {
	case model.MethodDirectText, model.MethodOCRRequired:
	default:
		return fmt.Errorf("%w: unknown processing method %q", ErrInvalidInput, method)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE classifications SET override_method = ? WHERE document_id = ?`,
		string(method), documentID.String())
	if err != nil {
		return fmt.Errorf("failed to override routing: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to override routing: %w", err)
	}
	if affected == 0 {
		return ErrClassificationNotFound
	}
	return nil
}

func scanClassification(scan func(...any) error) (*model.StoredClassification, error) {
	var (
		c                         model.StoredClassification
		docType, method, override string
	)
	if err := scan(&c.DocumentID, &docType, &method, &c.Confidence, &c.EvidenceJSON, &c.ClassifiedAt, &override); err != nil {
		return nil, err
	}
	c.DocumentType = model.DocumentType(docType)
	c.ProcessingMethod = model.ProcessingMethod(method)
	c.OverrideMethod = model.ProcessingMethod(override)
	return &c, nil
}
