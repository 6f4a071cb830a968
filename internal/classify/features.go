package classify

import "github.com/javutech/medpipe/internal/model"

// Features flattens the four evidence records into a numeric feature map
// suitable for training an offline routing model. Booleans become 0/1 and
// the two ratio features guard against zero page counts.
func Features(text model.TextEvidence, structure model.StructureEvidence, images model.ImageEvidence, ocr model.OCREvidence) map[string]float64 {
	pages := text.PageCount
	if pages < 1 {
		pages = 1
	}

	return map[string]float64{
		"text_length":          float64(text.TextLength),
		"extraction_success":   boolFeature(text.ExtractionSuccess),
		"has_fonts":            boolFeature(text.HasFonts),
		"page_count":           float64(text.PageCount),
		"has_form_fields":      boolFeature(structure.HasFormFields),
		"has_annotations":      boolFeature(structure.HasAnnotations),
		"digital_indicators":   float64(structure.DigitalIndicators),
		"total_images":         float64(images.TotalImages),
		"image_coverage_ratio": images.ImageCoverageRatio,
		"has_large_images":     boolFeature(images.HasLargeImages),
		"likely_scanned":       boolFeature(images.LikelyScanned),
		"ocr_confidence":       ocr.Confidence,
		"requires_ocr":         boolFeature(ocr.RequiresOCR),
		"handwriting_detected": boolFeature(ocr.HandwritingDetected),
		"text_to_page_ratio":   float64(text.TextLength) / float64(pages),
		"images_per_page":      float64(images.TotalImages) / float64(pages),
	}
}

// FeaturesFromResult extracts the feature map from a classification result.
// Missing evidence records contribute their zero-value features.
func FeaturesFromResult(r model.ClassificationResult) map[string]float64 {
	text, _ := r.Evidence[model.EvidenceTextExtraction].(model.TextEvidence)
	structure, _ := r.Evidence[model.EvidenceStructure].(model.StructureEvidence)
	images, _ := r.Evidence[model.EvidenceImages].(model.ImageEvidence)
	ocr, _ := r.Evidence[model.EvidenceOCR].(model.OCREvidence)
	return Features(text, structure, images, ocr)
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
