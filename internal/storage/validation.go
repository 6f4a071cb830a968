package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/javutech/medpipe/internal/model"
)

// ErrInvalidInput wraps all input validation failures.
var ErrInvalidInput = errors.New("invalid input")

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("%w: context is nil", ErrInvalidInput)
	}
	return ctx.Err()
}

func validateString(value, name string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is empty", ErrInvalidInput, name)
	}
	return nil
}

func validateID(id uuid.UUID, name string) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: %s is the nil UUID", ErrInvalidInput, name)
	}
	return nil
}

func parseUUID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("corrupt document ID %q: %w", raw, err)
	}
	return id, nil
}

func validateDocument(doc *model.Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidInput)
	}
	if err := validateID(doc.ID, "document ID"); err != nil {
		return err
	}
	return validateString(doc.Path, "document path")
}

func validateClassification(c *model.StoredClassification) error {
	if c == nil {
		return fmt.Errorf("%w: classification is nil", ErrInvalidInput)
	}
	if err := validateString(c.DocumentID, "document ID"); err != nil {
		return err
	}
	if c.Confidence < 0 || c.Confidence > 1 {
		return fmt.Errorf("%w: confidence %f outside [0, 1]", ErrInvalidInput, c.Confidence)
	}
	switch c.ProcessingMethod {
	case model.MethodDirectText, model.MethodOCRRequired:
	default:
		return fmt.Errorf("%w: unknown processing method %q", ErrInvalidInput, c.ProcessingMethod)
	}
	return nil
}
