package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/javutech/medpipe/internal/tui"
)

func reviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review low-confidence routing decisions",
		Long: `Open an interactive screen listing classifications at or below the
confidence threshold. Overriding a document's routing is persisted and
honored the next time it is ingested.

Examples:
  medpipe review
  medpipe review --threshold 0.6`,
		RunE: runReview,
	}

	cmd.Flags().Float64("threshold", 0.7, "Maximum confidence to include in the review queue")
	_ = viper.BindPFlag("review.threshold", cmd.Flags().Lookup("threshold"))

	return cmd
}

func runReview(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	return tui.Run(ctx, store, viper.GetFloat64("review.threshold"))
}
