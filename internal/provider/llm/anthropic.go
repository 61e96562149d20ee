package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/FranksOps/marketscope/internal/model"
	"github.com/FranksOps/marketscope/internal/provider"
)

const anthropicMaxTokens = 1024

// AnthropicGenerator produces narratives and chat answers via the
// Anthropic messages API.
type AnthropicGenerator struct {
	client *anthropic.Client
	model  anthropic.Model
}

var _ provider.Generator = (*AnthropicGenerator)(nil)

// NewAnthropic creates a generator backed by Anthropic. An empty model
// selects claude-haiku-4-5.
func NewAnthropic(apiKey, modelName string) *AnthropicGenerator {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	m := anthropic.Model(modelName)
	if modelName == "" {
		m = anthropic.ModelClaudeHaiku4_5
	}
	return &AnthropicGenerator{
		client: &client,
		model:  m,
	}
}

// Generate writes the analysis narrative for the aggregated context.
func (g *AnthropicGenerator) Generate(ctx context.Context, pc model.PromptContext) (string, error) {
	prompt, err := BuildPrompt(pc)
	if err != nil {
		return "", err
	}
	return g.Complete(ctx, narrativeSystemPrompt, prompt)
}

// Complete sends one system+user exchange and returns the cleaned answer.
func (g *AnthropicGenerator) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     g.model,
		MaxTokens: anthropicMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}
	if len(resp.Content) == 0 {
		return "", fmt.Errorf("no response from anthropic")
	}
	return CleanResponse(resp.Content[0].Text), nil
}
