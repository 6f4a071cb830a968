package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/javutech/medpipe/internal/chat"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the question-answering API",
		Long: `Start the HTTP server exposing POST /chat. Questions are answered
by retrieving the most relevant indexed snippets and handing them to the
configured LLM as context.

Examples:
  medpipe serve
  medpipe serve --addr :9000`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", ":8080", "Listen address")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	client, err := newLLMClient(ctx)
	if err != nil {
		return err
	}

	svc := chat.NewService(store, client, nil)
	server := chat.NewServer(viper.GetString("server.addr"), svc, nil)
	return server.ListenAndServe(ctx)
}
