package classify

import (
	"context"
	"log/slog"
	"math"
	"os"

	"github.com/javutech/medpipe/internal/model"
	"github.com/javutech/medpipe/internal/pdf"
)

// Classifier coordinates the four analyzers and the scoring function.
type Classifier struct {
	analyzers Analyzers
	cfg       Config
}

// New creates a classifier with explicit analyzer implementations. Use
// NewDefault for the production wiring.
func New(cfg Config, analyzers Analyzers) *Classifier {
	return &Classifier{cfg: cfg, analyzers: analyzers}
}

// NewDefault wires the production analyzers: pdfcpu/rsc.io text extraction,
// structure and image inspection, and an OCR probe over the given renderer
// and word recognizer.
func NewDefault(cfg Config, renderer pdf.Renderer, engine WordRecognizer) *Classifier {
	return New(cfg, Analyzers{
		Text:      NewTextAnalyzer(cfg),
		Structure: NewStructureAnalyzer(cfg),
		Images:    NewImageAnalyzer(cfg),
		OCR:       NewOCRAnalyzer(cfg, renderer, engine),
	})
}

// ClassifyPDF classifies one PDF. It never fails: analyzer errors degrade
// to default evidence, and a document that cannot be examined at all comes
// back as unstructured at the confidence floor with the error recorded as
// the sole evidence.
func (c *Classifier) ClassifyPDF(ctx context.Context, path string) model.ClassificationResult {
	slog.Info("classifying PDF", "path", path)

	if _, err := os.Stat(path); err != nil {
		slog.Error("classification failed", "path", path, "error", err)
		return errorResult(err, c.cfg)
	}

	text, err := c.analyzers.Text.AnalyzeText(ctx, path)
	if err != nil {
		slog.Warn("text extraction degraded", "path", path, "error", err)
	}
	structure, err := c.analyzers.Structure.AnalyzeStructure(ctx, path)
	if err != nil {
		slog.Warn("structure analysis degraded", "path", path, "error", err)
	}
	images, err := c.analyzers.Images.AnalyzeImages(ctx, path)
	if err != nil {
		slog.Warn("image analysis degraded", "path", path, "error", err)
	}
	ocr, err := c.analyzers.OCR.AnalyzeOCR(ctx, path)
	if err != nil {
		slog.Warn("ocr probe degraded", "path", path, "error", err)
	}

	evidence := map[string]any{
		model.EvidenceTextExtraction: text,
		model.EvidenceStructure:      structure,
		model.EvidenceImages:         images,
		model.EvidenceOCR:            ocr,
	}

	score := Score(text, structure, images, ocr, c.cfg)
	result := decide(score, evidence, c.cfg)

	slog.Info("classification complete",
		"path", path,
		"score", score,
		"type", result.DocumentType,
		"confidence", result.Confidence)

	return result
}

// Score folds the four evidence records into the signed structured score.
// It is pure: identical evidence always yields an identical score.
func Score(text model.TextEvidence, structure model.StructureEvidence, images model.ImageEvidence, ocr model.OCREvidence, cfg Config) int {
	w := cfg.Weights
	score := 0

	if text.ExtractionSuccess && text.TextLength > cfg.ScoreTextLength {
		score += w.TextSuccess
		if text.HasFonts {
			score += w.EmbeddedFonts
		}
	}

	score += structure.DigitalIndicators * w.IndicatorStep
	switch structure.CreationMethod {
	case model.CreationDigital:
		score += w.CreationMethod
	case model.CreationScanned:
		score -= w.CreationMethod
	}

	if images.LikelyScanned {
		score -= w.LikelyScanned
	}
	if images.HasLargeImages {
		score -= w.LargeImages
	}

	if ocr.RequiresOCR {
		score -= w.RequiresOCR
	}
	if ocr.HandwritingDetected {
		score -= w.Handwriting
	}

	return score
}

// decide thresholds the score into the final result. Confidence grows with
// the score's distance from zero and is clamped; it is a routing heuristic,
// not a probability.
func decide(score int, evidence map[string]any, cfg Config) model.ClassificationResult {
	confidence := math.Min(cfg.MaxConfidence, cfg.BaseConfidence+math.Abs(float64(score))/100)

	if score >= cfg.DecisionThreshold {
		return model.ClassificationResult{
			DocumentType:     model.DocTypeStructured,
			ProcessingMethod: model.MethodDirectText,
			Confidence:       confidence,
			Evidence:         evidence,
		}
	}
	return model.ClassificationResult{
		DocumentType:     model.DocTypeUnstructured,
		ProcessingMethod: model.MethodOCRRequired,
		Confidence:       confidence,
		Evidence:         evidence,
	}
}

// errorResult is the safe default for documents that cannot be examined.
func errorResult(err error, cfg Config) model.ClassificationResult {
	return model.ClassificationResult{
		DocumentType:     model.DocTypeUnstructured,
		ProcessingMethod: model.MethodOCRRequired,
		Confidence:       cfg.BaseConfidence,
		Evidence:         map[string]any{model.EvidenceError: err.Error()},
	}
}
