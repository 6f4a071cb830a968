package classify

import (
	"context"
	"strings"

	"github.com/javutech/medpipe/internal/model"
	"github.com/javutech/medpipe/internal/pdf"
)

// Authoring tools whose presence in creator/producer metadata marks a
// digitally produced PDF.
var digitalTools = []string{
	"microsoft", "word", "excel", "powerpoint", "libreoffice",
	"google docs", "latex", "pdflatex", "pandoc", "reportlab",
	"wkhtmltopdf", "chrome", "firefox", "safari",
}

// Capture tools whose presence marks a scanned PDF.
var scannerTools = []string{
	"scanner", "scan", "xerox", "canon", "hp scan", "epson",
	"acrobat capture", "omnipage", "readiris", "finereader",
}

// pdfStructureAnalyzer derives digital-vs-scanned indicators from document
// metadata, form fields, and annotations.
type pdfStructureAnalyzer struct {
	cfg Config
}

// NewStructureAnalyzer returns the production structure analyzer.
func NewStructureAnalyzer(cfg Config) StructureAnalyzer {
	return &pdfStructureAnalyzer{cfg: cfg}
}

func (a *pdfStructureAnalyzer) AnalyzeStructure(_ context.Context, path string) (model.StructureEvidence, error) {
	ev := model.StructureEvidence{CreationMethod: model.CreationUnknown}

	doc, err := pdf.Open(path)
	if err != nil {
		return ev, err
	}

	md := doc.Metadata()
	method, delta := classifyCreationTool(md["creator"], md["producer"])
	ev.CreationMethod = method
	ev.DigitalIndicators += delta

	if doc.HasFormFields() {
		ev.HasFormFields = true
		ev.DigitalIndicators++
	}
	if doc.HasAnnotations(a.cfg.SamplePages) {
		ev.HasAnnotations = true
		ev.DigitalIndicators++
	}

	return ev, nil
}

// classifyCreationTool matches creator/producer strings against the digital
// and scanner tool lists. Matching is case-insensitive and stops at the
// first hit within each list; both lists are always consulted, so a document
// matching both ends up "scanned" with the two contributions cancelling.
func classifyCreationTool(creator, producer string) (model.CreationMethod, int) {
	creator = strings.ToLower(creator)
	producer = strings.ToLower(producer)

	method := model.CreationUnknown
	delta := 0

	for _, tool := range digitalTools {
		if strings.Contains(creator, tool) || strings.Contains(producer, tool) {
			delta += 2
			method = model.CreationDigital
			break
		}
	}
	for _, tool := range scannerTools {
		if strings.Contains(creator, tool) || strings.Contains(producer, tool) {
			delta -= 2
			method = model.CreationScanned
			break
		}
	}

	return method, delta
}
