package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/javutech/medpipe/internal/ocr"
)

func ocrCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ocr <pdf>",
		Short: "Run the multi-pass OCR pipeline on a scanned PDF",
		Long: `Render every page and recognize it under several OCR
configurations, keeping the best pass per page. Lab-report result tables
are parsed out of the recognized text.

Requires a build with -tags ocr and a local Tesseract installation.

Examples:
  medpipe ocr scan.pdf --out results.json
  medpipe ocr scan.pdf --xlsx tables.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: runOCR,
	}

	cmd.Flags().String("out", "", "Write full per-page results to a JSON file")
	cmd.Flags().String("xlsx", "", "Export parsed table rows to an XLSX workbook")

	_ = viper.BindPFlag("ocr.out", cmd.Flags().Lookup("out"))
	_ = viper.BindPFlag("ocr.xlsx", cmd.Flags().Lookup("xlsx"))

	return cmd
}

func runOCR(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	engine, err := ocr.NewEngine(viper.GetString("ocr.languages"))
	if err != nil {
		return err
	}

	results, err := ocr.NewPipeline(engine, newRenderer()).ProcessPDF(ctx, path)
	if err != nil {
		return err
	}

	tableRows := 0
	for _, page := range results {
		tableRows += len(page.TableRows)
	}
	fmt.Printf("%s: %d pages recognized, %d table rows\n", path, len(results), tableRows)

	if out := viper.GetString("ocr.out"); out != "" {
		payload, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding results: %w", err)
		}
		if err := os.WriteFile(out, payload, 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		fmt.Printf("results written to %s\n", out)
	}

	if xlsxPath := viper.GetString("ocr.xlsx"); xlsxPath != "" {
		workbook, err := ocr.ExportTablesXLSX(results)
		if err != nil {
			return fmt.Errorf("building workbook: %w", err)
		}
		if err := os.WriteFile(xlsxPath, workbook, 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", xlsxPath, err)
		}
		fmt.Printf("tables written to %s\n", xlsxPath)
	}

	return nil
}
