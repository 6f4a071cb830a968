package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/javutech/medpipe/internal/common"
	"github.com/javutech/medpipe/internal/model"
	"github.com/javutech/medpipe/internal/pdf"
)

// DefaultDPI is the render resolution for the extraction pipeline. Lab
// tables hold small numerals, so it is higher than the classifier's probe.
const DefaultDPI = 250

// Pipeline runs multiple OCR configurations over every page of a scanned
// document and keeps the best result per page.
type Pipeline struct {
	engine   Engine
	renderer pdf.Renderer
	dpi      int
	logger   *slog.Logger
}

// NewPipeline builds a pipeline rendering at DefaultDPI.
func NewPipeline(engine Engine, renderer pdf.Renderer) *Pipeline {
	return &Pipeline{
		engine:   engine,
		renderer: renderer,
		dpi:      DefaultDPI,
		logger:   slog.Default(),
	}
}

// ProcessPDF renders and recognizes every page of the document. A page where
// all passes fail still yields a result recording the failures; only errors
// that prevent the document from being read at all abort the run.
func (p *Pipeline) ProcessPDF(ctx context.Context, path string) ([]model.OCRPageResult, error) {
	doc, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	pageCount := doc.PageCount()

	results := make([]model.OCRPageResult, 0, pageCount)
	for page := 1; page <= pageCount; page++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		result := p.processPage(ctx, path, page)
		results = append(results, result)
		p.logger.Info("page recognized",
			"page", page,
			"best_pass", result.BestPass,
			"chars", len(result.FullText),
			"table_rows", len(result.TableRows))
	}
	return results, nil
}

// processPage runs all passes for one page and picks the winner.
func (p *Pipeline) processPage(ctx context.Context, path string, page int) model.OCRPageResult {
	result := model.OCRPageResult{Page: page}

	pageImage, err := p.renderer.RenderPage(ctx, path, page, p.dpi)
	if err != nil {
		common.LogError(err, "page render failed", common.Fields{"page": page})
		result.Passes = []model.OCRPass{{
			Name: "render",
			Err:  err.Error(),
		}}
		return result
	}

	result.Passes = p.runPasses(ctx, pageImage)
	if best := bestPass(result.Passes); best != nil {
		result.BestPass = best.Name
		result.BestConfig = best.Config
		result.FullText = best.Text
		result.TableRows = parseTableRows(best.Text)
	}
	return result
}

// runPasses applies the fixed pass ladder: three segmentation modes on the
// raw render, then single-block on the table-enhanced image.
func (p *Pipeline) runPasses(ctx context.Context, pageImage []byte) []model.OCRPass {
	passes := []model.OCRPass{
		p.recognize(ctx, "auto", "psm=3", pageImage, SegAuto),
		p.recognize(ctx, "single_block", "psm=6", pageImage, SegBlock),
		p.recognize(ctx, "sparse", "psm=11", pageImage, SegSparse),
	}

	enhanced, err := enhanceForTables(pageImage)
	if err != nil {
		passes = append(passes, model.OCRPass{
			Name:   "enhanced_block",
			Config: "psm=6 enhanced",
			Err:    err.Error(),
		})
		return passes
	}
	passes = append(passes, p.recognize(ctx, "enhanced_block", "psm=6 enhanced", enhanced, SegBlock))
	return passes
}

func (p *Pipeline) recognize(ctx context.Context, name, config string, pageImage []byte, mode SegMode) model.OCRPass {
	pass := model.OCRPass{Name: name, Config: config}
	text, err := p.engine.Text(ctx, pageImage, mode)
	if err != nil {
		pass.Err = err.Error()
		return pass
	}
	pass.Text = text
	pass.CharCount = len(strings.TrimSpace(text))
	return pass
}

// bestPass returns the successful pass that recovered the most characters,
// or nil if every pass failed.
func bestPass(passes []model.OCRPass) *model.OCRPass {
	var best *model.OCRPass
	for i := range passes {
		pass := &passes[i]
		if pass.Err != "" {
			continue
		}
		if best == nil || pass.CharCount > best.CharCount {
			best = pass
		}
	}
	return best
}

// JoinText concatenates the best-pass text of every page, in page order,
// separated by blank lines. It is the document body handed to indexing.
func JoinText(results []model.OCRPageResult) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		if t := strings.TrimSpace(r.FullText); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n\n")
}
