// Package chat answers questions about ingested documents by retrieving
// indexed snippets and handing them to an LLM as supporting context.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/javutech/medpipe/internal/llm"
	"github.com/javutech/medpipe/internal/service"
)

// DefaultTopK bounds retrieval when the request leaves top_k unset.
const DefaultTopK = 3

const promptTemplate = `You are a trusted medical AI assistant.
Answer the question directly and accurately, using the documents below as supporting context when relevant.
Provide a clear, factual, and concise response in natural language.
Do not mention the documents explicitly.
If the documents do not contain the needed information, rely on your own medical knowledge to give the best possible answer.

Documents:
%s

Question:
%s`

// noContext stands in for the document block when retrieval finds nothing.
const noContext = "No relevant documents found."

// Answer is the chat response with the snippets that informed it.
type Answer struct {
	Response string   `json:"response"`
	Snippets []string `json:"retrieved_snippets"`
	Model    string   `json:"model"`
}

// Service wires retrieval and the LLM into the question-answering flow.
type Service struct {
	retriever service.Retriever
	client    llm.Client
	logger    *slog.Logger
}

// NewService creates a chat service.
func NewService(retriever service.Retriever, client llm.Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{retriever: retriever, client: client, logger: logger}
}

// Ask retrieves context for the question and asks the LLM. Retrieval
// failures degrade to an uncontextualized answer rather than failing the
// request.
func (s *Service) Ask(ctx context.Context, question string, topK int) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("question is empty")
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	snippets := s.retrieve(ctx, question, topK)

	response, err := s.client.Complete(ctx, BuildPrompt(question, snippets))
	if err != nil {
		return nil, fmt.Errorf("answering question: %w", err)
	}

	s.logger.Info("question answered",
		"snippets", len(snippets),
		"model", s.client.Model())

	return &Answer{
		Response: response,
		Snippets: snippets,
		Model:    s.client.Model(),
	}, nil
}

func (s *Service) retrieve(ctx context.Context, question string, topK int) []string {
	results, err := s.retriever.SearchSnippets(ctx, question, topK)
	if err != nil {
		s.logger.Warn("snippet retrieval failed, answering without context", "error", err)
		return nil
	}
	snippets := make([]string, 0, len(results))
	for _, r := range results {
		snippets = append(snippets, r.Snippet.Content)
	}
	return snippets
}

// BuildPrompt assembles the assistant prompt from the question and its
// retrieved context.
func BuildPrompt(question string, snippets []string) string {
	contextText := noContext
	if len(snippets) > 0 {
		contextText = strings.Join(snippets, "\n\n")
	}
	return fmt.Sprintf(promptTemplate, contextText, question)
}
