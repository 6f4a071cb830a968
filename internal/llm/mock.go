package llm

import (
	"context"
	"sync"
)

// MockClient is a test double recording prompts and returning canned
// responses.
type MockClient struct {
	mu        sync.Mutex
	Response  string
	Err       error
	ModelName string
	Prompts   []string
}

// NewMockClient returns a mock that answers every prompt with response.
func NewMockClient(response string) *MockClient {
	return &MockClient{Response: response, ModelName: "mock"}
}

func (m *MockClient) Complete(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

func (m *MockClient) Model() string {
	if m.ModelName == "" {
		return "mock"
	}
	return m.ModelName
}

// LastPrompt returns the most recent prompt, or empty when none were sent.
func (m *MockClient) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Prompts) == 0 {
		return ""
	}
	return m.Prompts[len(m.Prompts)-1]
}
