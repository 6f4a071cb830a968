package model

import (
	"time"

	"github.com/google/uuid"
)

// Document is a PDF known to the pipeline.
type Document struct {
	IngestedAt time.Time
	ID         uuid.UUID
	Path       string
	Title      string
	PageCount  int
}

// Snippet is one indexed unit of searchable document text. Snippets are the
// retrieval surface for the chat endpoint.
type Snippet struct {
	IndexedAt  time.Time
	DocumentID uuid.UUID
	Title      string
	Content    string
	ID         int64
}

// SearchResult is a snippet returned from the retrieval index with its
// relevance rank (lower is better).
type SearchResult struct {
	Snippet Snippet
	Rank    float64
}
