package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/javutech/medpipe/internal/cli"
	"github.com/javutech/medpipe/internal/pipeline"
)

func ingestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <dir>",
		Short: "Classify and index every PDF in a directory",
		Long: `Walk a directory of PDFs and run the full pipeline on each one:
classify, route to direct extraction or OCR, extract the text, and index
it for retrieval. Individual document failures are reported but do not
stop the run.

Examples:
  medpipe ingest ./incoming
  medpipe ingest /mnt/scans --log-level debug`,
		Args: cobra.ExactArgs(1),
		RunE: runIngest,
	}
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ing := pipeline.NewIngestor(store, newClassifier(), newOCRPipeline(), nil)

	var bar *progressbar.ProgressBar
	ing.OnProgress = func(done, total int) {
		if bar == nil {
			bar = progressbar.Default(int64(total), "ingesting")
		}
		_ = bar.Set(done)
	}

	summary, err := ing.IngestDir(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("%d of %d documents indexed (%d direct, %d OCR)",
		summary.Succeeded, summary.Total, summary.DirectRouted, summary.OCRRouted)))
	if summary.Failed > 0 {
		fmt.Println(cli.FormatError(fmt.Sprintf("%d documents failed", summary.Failed)))
		return fmt.Errorf("%d documents failed, see the log for details", summary.Failed)
	}
	return nil
}
