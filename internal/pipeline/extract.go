// Package pipeline ingests directories of PDFs: classify, route, extract
// text, and index it for retrieval.
package pipeline

import (
	"context"
	"fmt"

	"github.com/javutech/medpipe/internal/common"
	"github.com/javutech/medpipe/internal/model"
	"github.com/javutech/medpipe/internal/ocr"
	"github.com/javutech/medpipe/internal/pdf"
)

// extractor produces document text using the routed processing method.
type extractor struct {
	ocrPipeline *ocr.Pipeline
}

// ExtractText extracts the text body of a single document with the given
// method. It is the one-shot form of the ingestor's extraction step.
func ExtractText(ctx context.Context, path string, method model.ProcessingMethod, ocrPipeline *ocr.Pipeline) (string, error) {
	return (&extractor{ocrPipeline: ocrPipeline}).Extract(ctx, path, method)
}

// Extract returns the text body of the document. Direct extraction falls
// back to the secondary parser before giving up; OCR extraction runs the
// multi-pass pipeline.
func (e *extractor) Extract(ctx context.Context, path string, method model.ProcessingMethod) (string, error) {
	switch method {
	case model.MethodDirectText:
		return e.extractDirect(path)
	case model.MethodOCRRequired:
		return e.extractOCR(ctx, path)
	default:
		return "", fmt.Errorf("unknown processing method %q", method)
	}
}

func (e *extractor) extractDirect(path string) (string, error) {
	doc, err := pdf.Open(path)
	if err == nil {
		if text := doc.Text(); text != "" {
			return text, nil
		}
	}
	fallback, fbErr := pdf.FallbackText(path)
	if fbErr != nil {
		return "", fmt.Errorf("%w: %s", common.ErrExtractionFailed, path)
	}
	return fallback.Text, nil
}

func (e *extractor) extractOCR(ctx context.Context, path string) (string, error) {
	if e.ocrPipeline == nil {
		return "", ocr.ErrOCRNotEnabled
	}
	results, err := e.ocrPipeline.ProcessPDF(ctx, path)
	if err != nil {
		return "", err
	}
	text := ocr.JoinText(results)
	if text == "" {
		return "", fmt.Errorf("%w: OCR recovered no text from %s", common.ErrExtractionFailed, path)
	}
	return text, nil
}
