// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/javutech/medpipe/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Document operations
	SaveDocument(ctx context.Context, doc *model.Document) error
	GetDocument(ctx context.Context, id uuid.UUID) (*model.Document, error)
	GetDocumentByPath(ctx context.Context, path string) (*model.Document, error)
	ListDocuments(ctx context.Context) ([]model.Document, error)

	// Classification operations
	SaveClassification(ctx context.Context, c *model.StoredClassification) error
	GetClassification(ctx context.Context, documentID uuid.UUID) (*model.StoredClassification, error)
	ListLowConfidenceClassifications(ctx context.Context, maxConfidence float64) ([]model.StoredClassification, error)
	OverrideRouting(ctx context.Context, documentID uuid.UUID, method model.ProcessingMethod) error

	// Retrieval index operations
	IndexSnippets(ctx context.Context, doc *model.Document, contents []string) error
	Retriever

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// Retriever returns the most relevant indexed snippets for a query. It is
// the narrow capability the chat service depends on.
type Retriever interface {
	SearchSnippets(ctx context.Context, query string, topK int) ([]model.SearchResult, error)
}

// Classifier decides how a document should be processed.
type Classifier interface {
	ClassifyPDF(ctx context.Context, path string) model.ClassificationResult
}

// TextExtractor produces the searchable text body of a document using the
// method the classifier selected.
type TextExtractor interface {
	Extract(ctx context.Context, path string, method model.ProcessingMethod) (string, error)
}
