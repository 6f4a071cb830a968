// Package classify implements the heuristic PDF structure classifier that
// routes documents between direct text extraction and the OCR pipeline.
//
// Four independent analyzers each produce an evidence record from the PDF
// path; a deterministic scoring function folds the evidence into a signed
// score and thresholds it into a final classification. Analyzer failures are
// absorbed as degraded evidence, never escalated: callers always receive a
// well-formed result.
package classify

// Weights holds the signed contributions of each evidence signal to the
// structured score. All values are positive; the scoring function applies
// the sign.
type Weights struct {
	// TextSuccess is added when direct extraction succeeded and recovered
	// more than ScoreTextLength characters.
	TextSuccess int
	// EmbeddedFonts is added on top of TextSuccess when font spans were found.
	EmbeddedFonts int
	// IndicatorStep multiplies the structure analyzer's digital indicator
	// accumulator.
	IndicatorStep int
	// CreationMethod is added for a digital creation method and subtracted
	// for a scanned one.
	CreationMethod int
	// LikelyScanned is subtracted when image coverage suggests a scan.
	LikelyScanned int
	// LargeImages is subtracted when any single image dominates its page;
	// cumulative with LikelyScanned.
	LargeImages int
	// RequiresOCR is subtracted when the OCR confidence probe fell below
	// the OCR threshold.
	RequiresOCR int
	// Handwriting is subtracted when OCR confidence was low enough to
	// suggest handwriting; cumulative with RequiresOCR.
	Handwriting int
}

// Config carries every tunable constant of the classifier. Use
// DefaultConfig and override fields as needed; the zero value is not usable.
type Config struct {
	Weights Weights

	// MinMeaningfulText is the extracted character count above which direct
	// extraction counts as successful.
	MinMeaningfulText int
	// ScoreTextLength is the character count a successful extraction must
	// exceed before it contributes to the score.
	ScoreTextLength int
	// SamplePages bounds how many leading pages the structure and image
	// analyzers inspect.
	SamplePages int
	// CoverageRatio is the image-coverage fraction above which a document
	// looks scanned.
	CoverageRatio float64
	// LargeImageFraction is the fraction of a page one image must cover to
	// count as a full-page scan.
	LargeImageFraction float64
	// OCRConfidence is the mean word confidence (0-100) below which OCR
	// processing is required.
	OCRConfidence float64
	// HandwritingConfidence is the mean word confidence below which the
	// content is treated as handwriting.
	HandwritingConfidence float64
	// RenderDPI is the resolution used to rasterize page 1 for the OCR
	// confidence probe.
	RenderDPI int
	// DecisionThreshold is the structured score at or above which a
	// document is classified as structured.
	DecisionThreshold int
	// MaxConfidence clamps the derived confidence.
	MaxConfidence float64
	// BaseConfidence is the confidence floor; the score's distance from
	// zero is added to it.
	BaseConfidence float64
}

// DefaultConfig returns the classifier's production constants.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			TextSuccess:    40,
			EmbeddedFonts:  20,
			IndicatorStep:  5,
			CreationMethod: 30,
			LikelyScanned:  40,
			LargeImages:    20,
			RequiresOCR:    30,
			Handwriting:    50,
		},
		MinMeaningfulText:     50,
		ScoreTextLength:       200,
		SamplePages:           3,
		CoverageRatio:         0.3,
		LargeImageFraction:    0.5,
		OCRConfidence:         85,
		HandwritingConfidence: 60,
		RenderDPI:             150,
		DecisionThreshold:     30,
		MaxConfidence:         0.95,
		BaseConfidence:        0.5,
	}
}
