// Package ocr wraps the Tesseract OCR engine and implements the multi-pass
// lab-report extraction pipeline.
//
// Tesseract is linked via CGo and requires the engine to be installed on the
// system, so the real implementation sits behind the "ocr" build tag:
//
//	go build -tags ocr
//
// Without the tag, every engine call returns ErrOCRNotEnabled and the rest
// of the pipeline degrades along its normal failure paths.
package ocr

import (
	"context"
	"errors"

	"github.com/javutech/medpipe/internal/model"
)

// ErrOCRNotEnabled is returned when OCR is invoked but support was not
// compiled in. Rebuild with -tags ocr to enable it.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// SegMode selects Tesseract's page segmentation strategy. Values mirror
// Tesseract's PSM numbering.
type SegMode int

// Segmentation modes used by the pipeline.
const (
	SegAuto   SegMode = 3  // fully automatic page segmentation
	SegBlock  SegMode = 6  // single uniform block of text
	SegSparse SegMode = 11 // find as much text as possible, no ordering
)

// Engine is the word- and page-level OCR capability.
type Engine interface {
	// Text recognizes a whole page image under the given segmentation mode.
	Text(ctx context.Context, image []byte, mode SegMode) (string, error)
	// Words recognizes a page image and returns per-word confidence.
	Words(ctx context.Context, image []byte) ([]model.Word, error)
}

// NewEngine creates the Tesseract engine, or ErrOCRNotEnabled on builds
// without the ocr tag. Languages is a "+"-separated Tesseract language list;
// empty means "eng".
func NewEngine(languages string) (Engine, error) {
	return newEngine(languages)
}

// Disabled returns an engine whose every call fails with ErrOCRNotEnabled.
// It lets the classifier run with its conservative OCR defaults when no
// engine is available.
func Disabled() Engine {
	return disabledEngine{}
}

type disabledEngine struct{}

func (disabledEngine) Text(_ context.Context, _ []byte, _ SegMode) (string, error) {
	return "", ErrOCRNotEnabled
}

func (disabledEngine) Words(_ context.Context, _ []byte) ([]model.Word, error) {
	return nil, ErrOCRNotEnabled
}
