package classify

import (
	"context"
	"strings"

	"github.com/javutech/medpipe/internal/model"
	"github.com/javutech/medpipe/internal/pdf"
)

// ocrConfidenceAnalyzer renders page 1 and samples word-level OCR
// confidence. When rendering or recognition fails, the analyzer assumes OCR
// is needed: broken inputs route to the more robust OCR path.
type ocrConfidenceAnalyzer struct {
	renderer pdf.Renderer
	engine   WordRecognizer
	cfg      Config
}

// NewOCRAnalyzer returns the production OCR confidence analyzer.
func NewOCRAnalyzer(cfg Config, renderer pdf.Renderer, engine WordRecognizer) OCRAnalyzer {
	return &ocrConfidenceAnalyzer{renderer: renderer, engine: engine, cfg: cfg}
}

func (a *ocrConfidenceAnalyzer) AnalyzeOCR(ctx context.Context, path string) (model.OCREvidence, error) {
	var ev model.OCREvidence

	png, err := a.renderer.RenderPage(ctx, path, 1, a.cfg.RenderDPI)
	if err != nil {
		ev.RequiresOCR = true
		return ev, err
	}

	words, err := a.engine.Words(ctx, png)
	if err != nil {
		ev.RequiresOCR = true
		return ev, err
	}

	text, mean := meanWordConfidence(words)
	ev.Text = text
	ev.Confidence = mean
	ev.RequiresOCR = mean < a.cfg.OCRConfidence
	ev.HandwritingDetected = mean < a.cfg.HandwritingConfidence

	return ev, nil
}

// meanWordConfidence joins qualifying words and averages their confidence.
// Words with empty text or non-positive confidence are discarded; with no
// qualifying words the mean is 0.
func meanWordConfidence(words []model.Word) (string, float64) {
	var kept []string
	var sum float64

	for _, w := range words {
		text := strings.TrimSpace(w.Text)
		if text == "" || w.Confidence <= 0 {
			continue
		}
		kept = append(kept, text)
		sum += w.Confidence
	}

	if len(kept) == 0 {
		return "", 0
	}
	return strings.Join(kept, " "), sum / float64(len(kept))
}
