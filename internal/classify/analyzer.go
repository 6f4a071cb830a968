package classify

import (
	"context"

	"github.com/javutech/medpipe/internal/model"
)

// The four analyzer contracts. Each receives only the PDF path and produces
// an independent evidence record; implementations share no state and may be
// substituted to swap PDF or OCR backends without touching the scoring
// function.
//
// An analyzer that fails still returns usable evidence: the record carries
// the analyzer's safe defaults (zero values, or a conservative bias where
// the contract demands one) alongside the error. The coordinator logs the
// error and scores the degraded evidence as-is.

// TextAnalyzer attempts direct text extraction.
type TextAnalyzer interface {
	AnalyzeText(ctx context.Context, path string) (model.TextEvidence, error)
}

// StructureAnalyzer inspects metadata and document structure.
type StructureAnalyzer interface {
	AnalyzeStructure(ctx context.Context, path string) (model.StructureEvidence, error)
}

// ImageAnalyzer measures raster image coverage.
type ImageAnalyzer interface {
	AnalyzeImages(ctx context.Context, path string) (model.ImageEvidence, error)
}

// OCRAnalyzer samples OCR confidence on the first page.
type OCRAnalyzer interface {
	AnalyzeOCR(ctx context.Context, path string) (model.OCREvidence, error)
}

// Analyzers bundles one implementation of each analyzer for the coordinator.
type Analyzers struct {
	Text      TextAnalyzer
	Structure StructureAnalyzer
	Images    ImageAnalyzer
	OCR       OCRAnalyzer
}

// WordRecognizer is the word-level OCR capability consumed by the OCR
// confidence analyzer. Confidence is on Tesseract's 0-100 scale.
type WordRecognizer interface {
	Words(ctx context.Context, image []byte) ([]model.Word, error)
}
