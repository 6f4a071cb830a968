package classify

import (
	"context"

	"github.com/javutech/medpipe/internal/model"
	"github.com/javutech/medpipe/internal/pdf"
)

// pdfImageAnalyzer measures how much of the leading pages is covered by
// embedded raster images. Image area is in the image's own pixels while page
// area is in PDF points; the mismatch is intentional (see model.ImageEvidence).
type pdfImageAnalyzer struct {
	cfg Config
}

// NewImageAnalyzer returns the production image coverage analyzer.
func NewImageAnalyzer(cfg Config) ImageAnalyzer {
	return &pdfImageAnalyzer{cfg: cfg}
}

// pageSample is the raw measurement for one sampled page.
type pageSample struct {
	images []pdf.ImageInfo
	page   int
	area   float64
}

func (a *pdfImageAnalyzer) AnalyzeImages(_ context.Context, path string) (model.ImageEvidence, error) {
	doc, err := pdf.Open(path)
	if err != nil {
		// Total failure reads as "no images": a conservative bias toward
		// structured, matching the rest of the evidence defaults.
		return model.ImageEvidence{}, err
	}

	sizes, err := doc.PageSizes()
	if err != nil {
		return model.ImageEvidence{}, err
	}

	n := doc.PageCount()
	if n > a.cfg.SamplePages {
		n = a.cfg.SamplePages
	}

	samples := make([]pageSample, 0, n)
	for pageNr := 1; pageNr <= n && pageNr <= len(sizes); pageNr++ {
		size := sizes[pageNr-1]
		samples = append(samples, pageSample{
			page:   pageNr,
			area:   size.Width * size.Height,
			images: doc.PageImages(pageNr),
		})
	}

	return buildImageEvidence(samples, a.cfg), nil
}

// buildImageEvidence folds per-page measurements into the evidence record.
func buildImageEvidence(samples []pageSample, cfg Config) model.ImageEvidence {
	var ev model.ImageEvidence
	var totalArea, imageArea float64

	for _, s := range samples {
		totalArea += s.area

		var pageImageArea float64
		for _, img := range s.images {
			area := float64(img.Width) * float64(img.Height)
			pageImageArea += area
			if s.area > 0 && area > s.area*cfg.LargeImageFraction {
				ev.HasLargeImages = true
			}
		}

		imageArea += pageImageArea
		ev.TotalImages += len(s.images)

		coverage := 0.0
		if s.area > 0 {
			coverage = pageImageArea / s.area
		}
		ev.PageStats = append(ev.PageStats, model.PageImageStats{
			Page:          s.page,
			ImageCount:    len(s.images),
			ImageCoverage: coverage,
		})
	}

	if totalArea > 0 {
		ev.ImageCoverageRatio = imageArea / totalArea
	}
	ev.LikelyScanned = ev.ImageCoverageRatio > cfg.CoverageRatio || ev.HasLargeImages

	return ev
}
