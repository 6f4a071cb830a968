package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/javutech/medpipe/internal/classify"
	"github.com/javutech/medpipe/internal/config"
	"github.com/javutech/medpipe/internal/llm"
	"github.com/javutech/medpipe/internal/ocr"
	"github.com/javutech/medpipe/internal/pdf"
	"github.com/javutech/medpipe/internal/service"
	"github.com/javutech/medpipe/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	store, err := storage.NewSQLiteStorage(config.DatabasePath())
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// newRenderer builds the page rasterizer, honoring a configured pdftoppm
// path.
func newRenderer() pdf.Renderer {
	return &pdf.PopplerRenderer{Binary: viper.GetString("render.pdftoppm")}
}

// newOCREngine creates the Tesseract engine, degrading to a disabled engine
// on builds without OCR support.
func newOCREngine() ocr.Engine {
	engine, err := ocr.NewEngine(viper.GetString("ocr.languages"))
	if err != nil {
		slog.Warn("OCR engine unavailable", "error", err)
		return ocr.Disabled()
	}
	return engine
}

// newClassifier wires the production classifier.
func newClassifier() service.Classifier {
	return classify.NewDefault(classify.DefaultConfig(), newRenderer(), newOCREngine())
}

// newOCRPipeline builds the multi-pass extraction pipeline.
func newOCRPipeline() *ocr.Pipeline {
	return ocr.NewPipeline(newOCREngine(), newRenderer())
}

// newLLMClient creates the configured LLM client.
func newLLMClient(ctx context.Context) (llm.Client, error) {
	return llm.NewClient(ctx, config.LoadLLMConfig())
}
