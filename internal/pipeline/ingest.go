package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/javutech/medpipe/internal/common"
	"github.com/javutech/medpipe/internal/model"
	"github.com/javutech/medpipe/internal/ocr"
	"github.com/javutech/medpipe/internal/pdf"
	"github.com/javutech/medpipe/internal/service"
)

// Summary reports the outcome of one ingest run.
type Summary struct {
	Total        int
	Succeeded    int
	Failed       int
	DirectRouted int
	OCRRouted    int
}

// Ingestor drives the full per-document flow: classify, persist, extract,
// chunk, index.
type Ingestor struct {
	store      service.Storage
	classifier service.Classifier
	extract    service.TextExtractor
	chunkSize  int
	logger     *slog.Logger

	// OnProgress, when set, is called after each document with the running
	// count. The CLI hangs its progress bar on it.
	OnProgress func(done, total int)
}

// NewIngestor builds an ingestor. The OCR pipeline may be nil; OCR-routed
// documents then fail individually and are reported in the summary.
func NewIngestor(store service.Storage, classifier service.Classifier, ocrPipeline *ocr.Pipeline, logger *slog.Logger) *Ingestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingestor{
		store:      store,
		classifier: classifier,
		extract:    &extractor{ocrPipeline: ocrPipeline},
		chunkSize:  DefaultChunkSize,
		logger:     logger,
	}
}

// IngestDir processes every PDF under dir (recursively, sorted by path).
// Individual document failures are logged and counted, not fatal; only an
// unreadable directory or canceled context aborts the run.
func (i *Ingestor) IngestDir(ctx context.Context, dir string) (Summary, error) {
	paths, err := findPDFs(dir)
	if err != nil {
		return Summary{}, err
	}
	if len(paths) == 0 {
		return Summary{}, fmt.Errorf("%w: no PDFs under %s", common.ErrNoDocuments, dir)
	}

	summary := Summary{Total: len(paths)}
	for n, path := range paths {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		method, err := i.ingestOne(ctx, path)
		if err != nil {
			summary.Failed++
			common.LogError(err, "document ingest failed", common.Fields{"path": path})
		} else {
			summary.Succeeded++
			switch method {
			case model.MethodDirectText:
				summary.DirectRouted++
			case model.MethodOCRRequired:
				summary.OCRRouted++
			}
		}
		if i.OnProgress != nil {
			i.OnProgress(n+1, len(paths))
		}
	}

	i.logger.Info("ingest complete",
		"total", summary.Total,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"direct", summary.DirectRouted,
		"ocr", summary.OCRRouted)
	return summary, nil
}

// ingestOne runs the whole flow for a single document and returns the
// processing method that was used.
func (i *Ingestor) ingestOne(ctx context.Context, path string) (model.ProcessingMethod, error) {
	result := i.classifier.ClassifyPDF(ctx, path)

	doc, err := i.registerDocument(ctx, path)
	if err != nil {
		return "", err
	}

	stored, err := i.saveClassification(ctx, doc, result)
	if err != nil {
		return "", err
	}
	method := stored.EffectiveMethod()

	text, err := i.extract.Extract(ctx, path, method)
	if err != nil {
		return method, fmt.Errorf("extracting text: %w", err)
	}

	if err := i.store.IndexSnippets(ctx, doc, SplitSnippets(text, i.chunkSize)); err != nil {
		return method, fmt.Errorf("indexing snippets: %w", err)
	}

	i.logger.Info("document ingested",
		"path", path,
		"document_id", doc.ID,
		"type", stored.DocumentType,
		"method", method,
		"confidence", stored.Confidence)
	return method, nil
}

// registerDocument saves the document record, reusing the stored identity
// when the path was ingested before.
func (i *Ingestor) registerDocument(ctx context.Context, path string) (*model.Document, error) {
	doc := &model.Document{
		ID:         uuid.New(),
		Path:       path,
		Title:      titleFor(path),
		IngestedAt: time.Now().UTC(),
	}
	if opened, err := pdf.Open(path); err == nil {
		doc.PageCount = opened.PageCount()
		if title := opened.Metadata()["title"]; title != "" {
			doc.Title = title
		}
	}

	if err := i.store.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("saving document: %w", err)
	}
	// the upsert keeps a pre-existing ID; read back the effective record
	saved, err := i.store.GetDocumentByPath(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("reloading document: %w", err)
	}
	return saved, nil
}

func (i *Ingestor) saveClassification(ctx context.Context, doc *model.Document, result model.ClassificationResult) (*model.StoredClassification, error) {
	evidence, err := json.Marshal(result.Evidence)
	if err != nil {
		return nil, fmt.Errorf("encoding evidence: %w", err)
	}
	stored := &model.StoredClassification{
		DocumentID:       doc.ID.String(),
		DocumentType:     result.DocumentType,
		ProcessingMethod: result.ProcessingMethod,
		Confidence:       result.Confidence,
		EvidenceJSON:     string(evidence),
		ClassifiedAt:     time.Now().UTC(),
	}
	if err := i.store.SaveClassification(ctx, stored); err != nil {
		return nil, fmt.Errorf("saving classification: %w", err)
	}
	// pick up any override a reviewer left on a previous ingest
	if prev, err := i.store.GetClassification(ctx, doc.ID); err == nil {
		stored.OverrideMethod = prev.OverrideMethod
	}
	return stored, nil
}

func findPDFs(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".pdf") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}

func titleFor(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
