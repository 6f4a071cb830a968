package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/javutech/medpipe/internal/classify"
	"github.com/javutech/medpipe/internal/cli"
	"github.com/javutech/medpipe/internal/common"
	"github.com/javutech/medpipe/internal/model"
	"github.com/javutech/medpipe/internal/service"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <pdf>...",
		Short: "Decide whether a PDF needs OCR",
		Long: `Classify PDFs as structured (real digital text) or unstructured
(scanned or image-heavy, needs OCR) and show the evidence behind each
decision.

Examples:
  medpipe classify report.pdf
  medpipe classify report.pdf --json
  medpipe classify *.pdf --save   # record the results in the database`,
		Args: cobra.MinimumNArgs(1),
		RunE: runClassify,
	}

	cmd.Flags().Bool("json", false, "Print the full result as JSON")
	cmd.Flags().Bool("features", false, "Print the flattened numeric feature map")
	cmd.Flags().Bool("save", false, "Persist the classification")

	_ = viper.BindPFlag("classify.json", cmd.Flags().Lookup("json"))
	_ = viper.BindPFlag("classify.features", cmd.Flags().Lookup("features"))
	_ = viper.BindPFlag("classify.save", cmd.Flags().Lookup("save"))

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	classifier := newClassifier()

	var store service.Storage
	if viper.GetBool("classify.save") {
		var err error
		store, err = initStorage(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
	}

	for _, path := range args {
		result := classifier.ClassifyPDF(ctx, path)
		if err := printClassification(path, result); err != nil {
			return err
		}
		if store != nil {
			if err := saveClassification(ctx, store, path, result); err != nil {
				return err
			}
		}
	}
	return nil
}

func printClassification(path string, result model.ClassificationResult) error {
	if viper.GetBool("classify.json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
	} else {
		fmt.Println(cli.FormatTitle(path))
		fmt.Printf("  type:       %s\n", result.DocumentType)
		fmt.Printf("  method:     %s\n", result.ProcessingMethod)
		fmt.Printf("  confidence: %.2f\n", result.Confidence)
		for _, key := range []string{
			model.EvidenceTextExtraction,
			model.EvidenceStructure,
			model.EvidenceImages,
			model.EvidenceOCR,
			model.EvidenceError,
		} {
			if ev, ok := result.Evidence[key]; ok {
				fmt.Printf("  %s: %+v\n", key, ev)
			}
		}
	}

	if viper.GetBool("classify.features") {
		features := classify.FeaturesFromResult(result)
		names := make([]string, 0, len(features))
		for name := range features {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %-22s %g\n", name, features[name])
		}
	}
	return nil
}

func saveClassification(ctx context.Context, store service.Storage, path string, result model.ClassificationResult) error {
	doc, err := store.GetDocumentByPath(ctx, path)
	if err != nil {
		return common.NewUserError(
			fmt.Sprintf("%s is not ingested yet, run 'medpipe ingest' first", path), err)
	}

	evidence, err := json.Marshal(result.Evidence)
	if err != nil {
		return fmt.Errorf("encoding evidence: %w", err)
	}
	return store.SaveClassification(ctx, &model.StoredClassification{
		DocumentID:       doc.ID.String(),
		DocumentType:     result.DocumentType,
		ProcessingMethod: result.ProcessingMethod,
		Confidence:       result.Confidence,
		EvidenceJSON:     string(evidence),
		ClassifiedAt:     time.Now().UTC(),
	})
}
