package classify

import (
	"testing"

	"github.com/javutech/medpipe/internal/pdf"
	"github.com/stretchr/testify/assert"
)

func TestBuildImageEvidence(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("no pages", func(t *testing.T) {
		ev := buildImageEvidence(nil, cfg)
		assert.Zero(t, ev.TotalImages)
		assert.Zero(t, ev.ImageCoverageRatio)
		assert.False(t, ev.HasLargeImages)
		assert.False(t, ev.LikelyScanned)
	})

	t.Run("text-only pages", func(t *testing.T) {
		ev := buildImageEvidence([]pageSample{
			{page: 1, area: 612 * 792},
			{page: 2, area: 612 * 792},
		}, cfg)
		assert.Zero(t, ev.TotalImages)
		assert.False(t, ev.LikelyScanned)
		assert.Len(t, ev.PageStats, 2)
	})

	t.Run("full page scan triggers large image", func(t *testing.T) {
		// One image whose pixel area dwarfs the page's point area.
		ev := buildImageEvidence([]pageSample{
			{page: 1, area: 612 * 792, images: []pdf.ImageInfo{{Width: 2550, Height: 3300}}},
		}, cfg)
		assert.Equal(t, 1, ev.TotalImages)
		assert.True(t, ev.HasLargeImages)
		assert.True(t, ev.LikelyScanned)
	})

	t.Run("small images stay below coverage threshold", func(t *testing.T) {
		ev := buildImageEvidence([]pageSample{
			{page: 1, area: 1000, images: []pdf.ImageInfo{{Width: 10, Height: 10}, {Width: 5, Height: 8}}},
		}, cfg)
		assert.Equal(t, 2, ev.TotalImages)
		assert.InDelta(t, 0.14, ev.ImageCoverageRatio, 1e-9)
		assert.False(t, ev.HasLargeImages)
		assert.False(t, ev.LikelyScanned)
	})

	t.Run("coverage above threshold without large image", func(t *testing.T) {
		// 4 images of 100 area each on a 1000 area page: ratio 0.4, none
		// individually above half the page.
		ev := buildImageEvidence([]pageSample{
			{page: 1, area: 1000, images: []pdf.ImageInfo{
				{Width: 10, Height: 10}, {Width: 10, Height: 10},
				{Width: 10, Height: 10}, {Width: 10, Height: 10},
			}},
		}, cfg)
		assert.InDelta(t, 0.4, ev.ImageCoverageRatio, 1e-9)
		assert.False(t, ev.HasLargeImages)
		assert.True(t, ev.LikelyScanned)
	})

	t.Run("zero-area page does not divide by zero", func(t *testing.T) {
		ev := buildImageEvidence([]pageSample{
			{page: 1, area: 0, images: []pdf.ImageInfo{{Width: 10, Height: 10}}},
		}, cfg)
		assert.Zero(t, ev.ImageCoverageRatio)
		assert.Equal(t, 1, ev.TotalImages)
	})
}
