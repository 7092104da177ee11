package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const DefaultBaseURL = "https://api.upstage.ai/v1/"

// SolarClient generates blog drafts with Upstage's Solar models through their
// OpenAI-compatible chat completions endpoint.
type SolarClient struct {
	client openai.Client
	model  string
}

func NewSolarClient(baseURL, apiKey, model string) *SolarClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = "solar-pro2"
	}
	return &SolarClient{
		client: openai.NewClient(option.WithAPIKey(apiKey), option.WithBaseURL(baseURL)),
		model:  model,
	}
}

// Complete sends one drafting prompt and returns the raw completion text.
// Unlike the per-image calls, a completion failure is fatal for the request.
func (c *SolarClient) Complete(ctx context.Context, content string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()

	res, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       c.model,
		Messages:    []openai.ChatCompletionMessageParamUnion{openai.UserMessage(DraftPrompt(content))},
		Temperature: openai.Float(0.5),
		MaxTokens:   openai.Int(4096),
	})
	if err != nil {
		slog.Error("chat completion failed", "model", c.model, "error", err)
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}

	return res.Choices[0].Message.Content, nil
}
