//go:build ocr

package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/javutech/medpipe/internal/model"
)

// tesseractEngine drives Tesseract through gosseract. A gosseract client is
// not safe for concurrent use, so each call creates and closes its own.
type tesseractEngine struct {
	languages []string
}

func newEngine(languages string) (Engine, error) {
	langs := []string{"eng"}
	if languages != "" {
		langs = strings.Split(languages, "+")
	}
	return &tesseractEngine{languages: langs}, nil
}

func (e *tesseractEngine) newClient() (*gosseract.Client, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage(e.languages...); err != nil {
		client.Close()
		return nil, fmt.Errorf("setting OCR language: %w", err)
	}
	return client, nil
}

func (e *tesseractEngine) Text(ctx context.Context, image []byte, mode SegMode) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	client, err := e.newClient()
	if err != nil {
		return "", err
	}
	defer client.Close()

	if err := client.SetPageSegMode(gosseract.PageSegMode(mode)); err != nil {
		return "", fmt.Errorf("setting segmentation mode: %w", err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("loading page image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognizing page: %w", err)
	}
	return text, nil
}

func (e *tesseractEngine) Words(ctx context.Context, image []byte) ([]model.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	client, err := e.newClient()
	if err != nil {
		return nil, err
	}
	defer client.Close()

	if err := client.SetImageFromBytes(image); err != nil {
		return nil, fmt.Errorf("loading page image: %w", err)
	}
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("recognizing words: %w", err)
	}

	words := make([]model.Word, 0, len(boxes))
	for _, box := range boxes {
		words = append(words, model.Word{
			Text:       box.Word,
			Confidence: box.Confidence,
		})
	}
	return words, nil
}
