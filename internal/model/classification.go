// Package model defines the core domain models used throughout the application.
package model

import "time"

// DocumentType is the outcome of structure classification.
type DocumentType string

// Document type constants.
const (
	DocTypeStructured   DocumentType = "structured"
	DocTypeUnstructured DocumentType = "unstructured"
)

// ProcessingMethod tells the pipeline how a document should be processed.
type ProcessingMethod string

// Processing method constants.
const (
	MethodDirectText  ProcessingMethod = "direct_text_extraction"
	MethodOCRRequired ProcessingMethod = "ocr_required"
)

// CreationMethod describes how a PDF appears to have been produced,
// derived from its creator/producer metadata.
type CreationMethod string

// Creation method constants.
const (
	CreationDigital CreationMethod = "digital"
	CreationScanned CreationMethod = "scanned"
	CreationUnknown CreationMethod = "unknown"
)

// Evidence map keys, one per analyzer.
const (
	EvidenceTextExtraction = "text_extraction"
	EvidenceStructure      = "document_structure"
	EvidenceImages         = "image_analysis"
	EvidenceOCR            = "ocr_analysis"
	EvidenceError          = "error"
)

// TextEvidence is the raw result of the direct text extraction analyzer.
type TextEvidence struct {
	Metadata          map[string]string `json:"metadata"`
	ExtractableText   string            `json:"extractable_text"`
	PageCount         int               `json:"page_count"`
	TextLength        int               `json:"text_length"`
	ExtractionSuccess bool              `json:"extraction_success"`
	HasFonts          bool              `json:"has_fonts"`
}

// StructureEvidence is the raw result of the document structure analyzer.
type StructureEvidence struct {
	CreationMethod    CreationMethod `json:"creation_method"`
	DigitalIndicators int            `json:"digital_indicators"`
	HasFormFields     bool           `json:"has_form_fields"`
	HasAnnotations    bool           `json:"has_annotations"`
}

// PageImageStats holds the per-page breakdown of the image coverage analyzer.
type PageImageStats struct {
	Page          int     `json:"page"`
	ImageCount    int     `json:"image_count"`
	ImageCoverage float64 `json:"image_coverage"`
}

// ImageEvidence is the raw result of the image coverage analyzer.
//
// The coverage ratio mixes raster pixel area (the embedded image's own
// resolution) with page area in PDF points. The two are never normalized to
// a common unit; the ratio is a relative signal, not a geometric fraction.
type ImageEvidence struct {
	PageStats          []PageImageStats `json:"page_analysis,omitempty"`
	TotalImages        int              `json:"total_images"`
	ImageCoverageRatio float64          `json:"image_coverage_ratio"`
	HasLargeImages     bool             `json:"has_large_images"`
	LikelyScanned      bool             `json:"likely_scanned"`
}

// OCREvidence is the raw result of the OCR confidence analyzer.
// Confidence is the mean per-word Tesseract confidence on a 0-100 scale.
type OCREvidence struct {
	Text                string  `json:"ocr_text"`
	Confidence          float64 `json:"ocr_confidence"`
	RequiresOCR         bool    `json:"requires_ocr"`
	HandwritingDetected bool    `json:"handwriting_detected"`
}

// ClassificationResult is the final decision for one PDF. It is immutable
// once produced and is not persisted by the classifier itself.
//
// Confidence is a monotone function of the score's distance from the decision
// threshold, clamped to [0.5, 0.95]. It is a routing heuristic, not a
// calibrated probability.
type ClassificationResult struct {
	Evidence         map[string]any   `json:"evidence"`
	DocumentType     DocumentType     `json:"document_type"`
	ProcessingMethod ProcessingMethod `json:"processing_method"`
	Confidence       float64          `json:"confidence"`
}

// StoredClassification is a persisted classification for a document,
// including any routing override applied during review.
type StoredClassification struct {
	ClassifiedAt     time.Time
	DocumentID       string
	DocumentType     DocumentType
	ProcessingMethod ProcessingMethod
	OverrideMethod   ProcessingMethod // empty when no override
	EvidenceJSON     string
	Confidence       float64
}

// EffectiveMethod returns the processing method the pipeline should use,
// honoring a review override when present.
func (c *StoredClassification) EffectiveMethod() ProcessingMethod {
	if c.OverrideMethod != "" {
		return c.OverrideMethod
	}
	return c.ProcessingMethod
}
