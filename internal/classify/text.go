package classify

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/javutech/medpipe/internal/model"
	"github.com/javutech/medpipe/internal/pdf"
)

// pdfTextAnalyzer extracts text with pdfcpu and falls back to rsc.io/pdf
// when pdfcpu cannot read the document at all. Font detection runs as an
// independent best-effort pass and never fails the analyzer.
type pdfTextAnalyzer struct {
	cfg Config
}

// NewTextAnalyzer returns the production text extraction analyzer.
func NewTextAnalyzer(cfg Config) TextAnalyzer {
	return &pdfTextAnalyzer{cfg: cfg}
}

func (a *pdfTextAnalyzer) AnalyzeText(_ context.Context, path string) (model.TextEvidence, error) {
	ev := model.TextEvidence{Metadata: map[string]string{}}

	doc, primaryErr := pdf.Open(path)
	if primaryErr == nil {
		ev.PageCount = doc.PageCount()
		ev.Metadata = doc.Metadata()
		ev.ExtractableText = doc.Text()
	} else {
		fb, fallbackErr := pdf.FallbackText(path)
		if fallbackErr != nil {
			// Double failure: zero evidence, extraction unsuccessful. The
			// error is reported for logging but never escalated.
			return ev, fmt.Errorf("primary: %v; fallback: %w", primaryErr, fallbackErr)
		}
		ev.PageCount = fb.PageCount
		ev.ExtractableText = fb.Text
	}

	ev.TextLength = utf8.RuneCountInString(ev.ExtractableText)
	ev.ExtractionSuccess = ev.TextLength > a.cfg.MinMeaningfulText

	if names, err := pdf.FontNames(path, 0); err == nil {
		ev.HasFonts = len(names) > 0
	}

	return ev, nil
}
