package classify

import (
	"testing"

	"github.com/javutech/medpipe/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestFeatures(t *testing.T) {
	features := Features(
		model.TextEvidence{TextLength: 1200, PageCount: 4, ExtractionSuccess: true, HasFonts: true},
		model.StructureEvidence{DigitalIndicators: 3, HasFormFields: true},
		model.ImageEvidence{TotalImages: 2, ImageCoverageRatio: 0.1},
		model.OCREvidence{Confidence: 92},
	)

	assert.InDelta(t, 1200, features["text_length"], 1e-9)
	assert.InDelta(t, 1, features["extraction_success"], 1e-9)
	assert.InDelta(t, 1, features["has_fonts"], 1e-9)
	assert.InDelta(t, 1, features["has_form_fields"], 1e-9)
	assert.InDelta(t, 0, features["has_annotations"], 1e-9)
	assert.InDelta(t, 3, features["digital_indicators"], 1e-9)
	assert.InDelta(t, 300, features["text_to_page_ratio"], 1e-9)
	assert.InDelta(t, 0.5, features["images_per_page"], 1e-9)
	assert.InDelta(t, 92, features["ocr_confidence"], 1e-9)
}

func TestFeaturesFromResult(t *testing.T) {
	result := model.ClassificationResult{
		Evidence: map[string]any{
			model.EvidenceTextExtraction: model.TextEvidence{TextLength: 800, PageCount: 2, ExtractionSuccess: true},
			model.EvidenceOCR:            model.OCREvidence{Confidence: 75, RequiresOCR: true},
		},
	}

	features := FeaturesFromResult(result)

	assert.InDelta(t, 800, features["text_length"], 1e-9)
	assert.InDelta(t, 400, features["text_to_page_ratio"], 1e-9)
	assert.InDelta(t, 75, features["ocr_confidence"], 1e-9)
	assert.InDelta(t, 1, features["requires_ocr"], 1e-9)
	// Missing evidence records contribute zero-value features.
	assert.InDelta(t, 0, features["total_images"], 1e-9)
}

func TestFeatures_ZeroPageCount(t *testing.T) {
	features := Features(model.TextEvidence{TextLength: 100}, model.StructureEvidence{}, model.ImageEvidence{TotalImages: 1}, model.OCREvidence{})

	// A zero page count must not divide by zero.
	assert.InDelta(t, 100, features["text_to_page_ratio"], 1e-9)
	assert.InDelta(t, 1, features["images_per_page"], 1e-9)
}
