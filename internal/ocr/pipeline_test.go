package ocr

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javutech/medpipe/internal/model"
)

type stubEngine struct {
	byMode map[SegMode]string
	err    error
}

func (s *stubEngine) Text(_ context.Context, _ []byte, mode SegMode) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.byMode[mode], nil
}

func (s *stubEngine) Words(_ context.Context, _ []byte) ([]model.Word, error) {
	return nil, s.err
}

type stubRenderer struct {
	image []byte
	err   error
}

func (s *stubRenderer) RenderPage(_ context.Context, _ string, _ int, _ int) ([]byte, error) {
	return s.image, s.err
}

// onePixelPNG builds a small valid image so the enhancement pass can
// decode it.
func onePixelPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 3, 3))))
	return buf.Bytes()
}

func TestProcessPageBestPassWins(t *testing.T) {
	engine := &stubEngine{byMode: map[SegMode]string{
		SegAuto:   "short",
		SegBlock:  "TEST RESULT RANGE\nHemoglobin 13.2 12.0-16.0",
		SegSparse: "noise",
	}}
	p := NewPipeline(engine, &stubRenderer{image: onePixelPNG(t)})

	result := p.processPage(context.Background(), "report.pdf", 1)

	assert.Equal(t, 1, result.Page)
	// single_block and enhanced_block tie on text, the earlier pass wins
	assert.Equal(t, "single_block", result.BestPass)
	assert.Equal(t, "psm=6", result.BestConfig)
	assert.Contains(t, result.FullText, "Hemoglobin")
	assert.Len(t, result.Passes, 4)

	require.Len(t, result.TableRows, 2)
	assert.Equal(t, RowHeader, result.TableRows[0].Kind)
	assert.Equal(t, RowData, result.TableRows[1].Kind)
}

func TestProcessPageRenderFailure(t *testing.T) {
	p := NewPipeline(&stubEngine{}, &stubRenderer{err: errors.New("pdftoppm: exit 1")})

	result := p.processPage(context.Background(), "report.pdf", 2)

	assert.Equal(t, 2, result.Page)
	assert.Empty(t, result.BestPass)
	assert.Empty(t, result.FullText)
	require.Len(t, result.Passes, 1)
	assert.Equal(t, "render", result.Passes[0].Name)
	assert.NotEmpty(t, result.Passes[0].Err)
}

func TestProcessPageAllPassesFail(t *testing.T) {
	engine := &stubEngine{err: ErrOCRNotEnabled}
	p := NewPipeline(engine, &stubRenderer{image: onePixelPNG(t)})

	result := p.processPage(context.Background(), "report.pdf", 1)

	assert.Empty(t, result.BestPass)
	assert.Empty(t, result.FullText)
	assert.Len(t, result.Passes, 4)
	for _, pass := range result.Passes {
		assert.NotEmpty(t, pass.Err, pass.Name)
	}
}

func TestBestPass(t *testing.T) {
	tests := []struct {
		name   string
		passes []model.OCRPass
		want   string
	}{
		{
			name: "highest char count wins",
			passes: []model.OCRPass{
				{Name: "auto", Text: "abc", CharCount: 3},
				{Name: "single_block", Text: "abcdef", CharCount: 6},
				{Name: "sparse", Text: "a", CharCount: 1},
			},
			want: "single_block",
		},
		{
			name: "failed passes are skipped",
			passes: []model.OCRPass{
				{Name: "auto", Err: "boom", CharCount: 100},
				{Name: "sparse", Text: "ok", CharCount: 2},
			},
			want: "sparse",
		},
		{
			name: "all failed",
			passes: []model.OCRPass{
				{Name: "auto", Err: "boom"},
			},
			want: "",
		},
		{
			name:   "no passes",
			passes: nil,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			best := bestPass(tt.passes)
			if tt.want == "" {
				assert.Nil(t, best)
				return
			}
			require.NotNil(t, best)
			assert.Equal(t, tt.want, best.Name)
		})
	}
}

func TestJoinText(t *testing.T) {
	results := []model.OCRPageResult{
		{Page: 1, FullText: "first page\n"},
		{Page: 2, FullText: "   "},
		{Page: 3, FullText: "third page"},
	}
	assert.Equal(t, "first page\n\nthird page", JoinText(results))
	assert.Empty(t, JoinText(nil))
}

func TestDisabledEngine(t *testing.T) {
	engine := Disabled()

	_, err := engine.Text(context.Background(), nil, SegAuto)
	assert.ErrorIs(t, err, ErrOCRNotEnabled)

	_, err = engine.Words(context.Background(), nil)
	assert.ErrorIs(t, err, ErrOCRNotEnabled)
}
