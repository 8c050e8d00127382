package classifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sashabaranov/go-openai"
)

const systemPrompt = `You detect fake product reviews. Classify the review the user sends.

Return ONLY a JSON object with these fields:
- prediction: "Fake" or "Real"
- confidence: a number between 0.0 and 1.0
- reasons: an array of short strings explaining a Fake prediction (empty for Real)`

type openAIClassifier struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewOpenAI returns a Classifier backed by an OpenAI-compatible chat
// completion endpoint. An empty baseURL targets the public API.
func NewOpenAI(apiKey, model, baseURL string, logger *slog.Logger) Classifier {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &openAIClassifier{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger.With("classifier", ProviderOpenAI),
	}
}

func (c *openAIClassifier) Name() string { return ProviderOpenAI }

func (c *openAIClassifier) Classify(ctx context.Context, text string) (Result, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		Temperature: 0,
	})
	if err != nil {
		return Result{}, unavailable(ctx, ProviderOpenAI, err)
	}

	if len(resp.Choices) == 0 {
		return Result{}, fmt.Errorf("%w: no choices in completion", ErrInvalidOutput)
	}

	c.logger.Debug("completion received", "model", resp.Model, "tokens", resp.Usage.TotalTokens)
	return decode(resp.Choices[0].Message.Content)
}
