package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/FranksOps/marketscope/internal/model"
	"github.com/FranksOps/marketscope/internal/provider"
)

// OpenAIGenerator produces narratives and chat answers via the OpenAI
// chat completions API.
type OpenAIGenerator struct {
	client *openai.Client
	model  openai.ChatModel
}

var _ provider.Generator = (*OpenAIGenerator)(nil)

// NewOpenAI creates a generator backed by OpenAI. An empty model selects
// gpt-4o-mini.
func NewOpenAI(apiKey, modelName string) *OpenAIGenerator {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	m := openai.ChatModel(modelName)
	if modelName == "" {
		m = openai.ChatModelGPT4oMini
	}
	return &OpenAIGenerator{
		client: &client,
		model:  m,
	}
}

// Generate writes the analysis narrative for the aggregated context.
func (g *OpenAIGenerator) Generate(ctx context.Context, pc model.PromptContext) (string, error) {
	prompt, err := BuildPrompt(pc)
	if err != nil {
		return "", err
	}
	return g.Complete(ctx, narrativeSystemPrompt, prompt)
}

// Complete sends one system+user exchange and returns the cleaned answer.
func (g *OpenAIGenerator) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}
	return CleanResponse(resp.Choices[0].Message.Content), nil
}
