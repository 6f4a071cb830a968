package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javutech/medpipe/internal/llm"
	"github.com/javutech/medpipe/internal/model"
)

type stubRetriever struct {
	results []model.SearchResult
	err     error
}

func (s *stubRetriever) SearchSnippets(_ context.Context, _ string, _ int) ([]model.SearchResult, error) {
	return s.results, s.err
}

func snippetResults(contents ...string) []model.SearchResult {
	out := make([]model.SearchResult, 0, len(contents))
	for _, c := range contents {
		out = append(out, model.SearchResult{Snippet: model.Snippet{Content: c}})
	}
	return out
}

func TestAskWithContext(t *testing.T) {
	client := llm.NewMockClient("Glucose of 95 mg/dL is within the normal fasting range.")
	svc := NewService(&stubRetriever{results: snippetResults(
		"Glucose 95 mg/dL",
		"Reference range 70-100 mg/dL",
	)}, client, nil)

	answer, err := svc.Ask(context.Background(), "Is a glucose of 95 normal?", 3)
	require.NoError(t, err)

	assert.Equal(t, "Glucose of 95 mg/dL is within the normal fasting range.", answer.Response)
	assert.Equal(t, []string{"Glucose 95 mg/dL", "Reference range 70-100 mg/dL"}, answer.Snippets)
	assert.Equal(t, "mock", answer.Model)

	prompt := client.LastPrompt()
	assert.Contains(t, prompt, "Glucose 95 mg/dL")
	assert.Contains(t, prompt, "Is a glucose of 95 normal?")
	assert.Contains(t, prompt, "medical AI assistant")
}

func TestAskRetrievalFailureDegrades(t *testing.T) {
	client := llm.NewMockClient("answer")
	svc := NewService(&stubRetriever{err: errors.New("index offline")}, client, nil)

	answer, err := svc.Ask(context.Background(), "What is hemoglobin?", 0)
	require.NoError(t, err)
	assert.Empty(t, answer.Snippets)
	assert.Contains(t, client.LastPrompt(), "No relevant documents found.")
}

func TestAskEmptyQuestion(t *testing.T) {
	svc := NewService(&stubRetriever{}, llm.NewMockClient("x"), nil)
	_, err := svc.Ask(context.Background(), "   ", 3)
	assert.Error(t, err)
}

func TestAskLLMFailure(t *testing.T) {
	client := llm.NewMockClient("")
	client.Err = errors.New("model unavailable")
	svc := NewService(&stubRetriever{}, client, nil)

	_, err := svc.Ask(context.Background(), "question", 3)
	assert.Error(t, err)
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("Q?", nil)
	assert.Contains(t, prompt, "No relevant documents found.")

	prompt = BuildPrompt("Q?", []string{"a", "b"})
	assert.Contains(t, prompt, "a\n\nb")
}
