package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/javutech/medpipe/internal/config"
	"github.com/javutech/medpipe/internal/graph"
	"github.com/javutech/medpipe/internal/model"
	"github.com/javutech/medpipe/internal/pipeline"
)

func graphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph <pdf>",
		Short: "Build a knowledge graph from a document",
		Long: `Extract patient metadata and relation triples from a document's
text and assemble them into a knowledge graph. The graph is printed as
JSON; with --push it is also inserted into the configured SPARQL endpoint.

Examples:
  medpipe graph report.pdf
  medpipe graph scan.pdf --ocr
  medpipe graph report.pdf --push`,
		Args: cobra.ExactArgs(1),
		RunE: runGraph,
	}

	cmd.Flags().Bool("ocr", false, "Extract text with the OCR pipeline instead of direct extraction")
	cmd.Flags().Bool("push", false, "Insert the graph into the SPARQL endpoint")
	cmd.Flags().Bool("no-llm", false, "Skip LLM relation extraction, use metadata only")

	_ = viper.BindPFlag("graph.ocr", cmd.Flags().Lookup("ocr"))
	_ = viper.BindPFlag("graph.push", cmd.Flags().Lookup("push"))
	_ = viper.BindPFlag("graph.no_llm", cmd.Flags().Lookup("no-llm"))

	return cmd
}

func runGraph(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	method := model.MethodDirectText
	if viper.GetBool("graph.ocr") {
		method = model.MethodOCRRequired
	}
	text, err := pipeline.ExtractText(ctx, path, method, newOCRPipeline())
	if err != nil {
		return err
	}

	var extractor graph.RelationExtractor
	if !viper.GetBool("graph.no_llm") {
		client, err := newLLMClient(ctx)
		if err != nil {
			return err
		}
		extractor = graph.NewLLMExtractor(client)
	}

	endpoint, prefix := config.LoadGraphConfig()
	var sparql *graph.SPARQLClient
	if endpoint != "" {
		if sparql, err = graph.NewSPARQLClient(endpoint); err != nil {
			return err
		}
	}

	svc := graph.NewService(extractor, sparql, prefix, nil)
	g := svc.GraphFromText(ctx, text)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encoding graph: %w", err)
	}

	if viper.GetBool("graph.push") {
		if err := svc.Push(ctx, g); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "graph pushed to", endpoint)
	}
	return nil
}
