// Package llm implements narrative generation and chat completion against
// the OpenAI and Anthropic APIs.
package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/FranksOps/marketscope/internal/model"
)

const narrativeSystemPrompt = `You are a market research analyst. You receive aggregated market data as JSON: extracted keywords, competitor pages with sentiment scores, search interest trends, and related videos.

Write a concise market analysis narrative covering:
1. Overall market sentiment and what drives it
2. The competitive landscape and notable players
3. Search interest trends and what they suggest about demand
4. Actionable recommendations for someone entering this market

Write plain prose paragraphs. No markdown, no headings, no bullet points.`

// ChatSystemPrompt frames follow-up conversation over prior analyses.
const ChatSystemPrompt = `You are a market research assistant. Answer the user's question using the prior analysis reports provided as context. If the context does not cover the question, say so instead of guessing. Answer in plain prose without markdown.`

// BuildPrompt renders the aggregated analysis context as the user message
// for narrative generation.
func BuildPrompt(pc model.PromptContext) (string, error) {
	data, err := json.MarshalIndent(pc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode prompt context: %w", err)
	}
	return "Market data:\n" + string(data), nil
}

// CleanResponse strips markdown fencing and surrounding whitespace that
// models wrap around plain-text answers.
func CleanResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
