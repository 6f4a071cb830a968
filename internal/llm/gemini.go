package llm

import (
	"context"
	"fmt"
	"strings"

	genai "google.golang.org/genai"

	"github.com/javutech/medpipe/internal/common"
)

// DefaultGeminiModel is used when the configuration names no model.
const DefaultGeminiModel = "gemini-2.5-flash"

type geminiClient struct {
	client     *genai.Client
	model      string
	maxRetries int
}

func newGeminiClient(ctx context.Context, cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key", common.ErrMissingConfig)
	}
	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &geminiClient{
		client:     client,
		model:      model,
		maxRetries: cfg.MaxRetries,
	}, nil
}

func (g *geminiClient) Model() string {
	return g.model
}

func (g *geminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	var answer string
	err := common.WithRetry(ctx, func() error {
		res, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{
			genai.NewContentFromText(prompt, genai.RoleUser),
		}, nil)
		if err != nil {
			if isRateLimited(err) {
				return fmt.Errorf("%w: %v", common.ErrRateLimit, err)
			}
			return err
		}
		answer = strings.TrimSpace(res.Text())
		return nil
	}, common.RetryOptions{MaxAttempts: g.maxRetries})
	if err != nil {
		return "", fmt.Errorf("gemini completion failed: %w", err)
	}
	return answer, nil
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(strings.ToLower(msg), "rate limit")
}
