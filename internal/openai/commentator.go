package openai

import (
	"context"
	"fmt"

	oa "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type Commentator struct {
	cli oa.Client
}

func NewCommentator(apiKey string) *Commentator {
	client := oa.NewClient(option.WithAPIKey(apiKey))
	return &Commentator{cli: client}
}

// Comment turns a computed YTD comparison table into a short narrative.
// The numbers are already final; the model is only asked to interpret
// them, never to produce figures of its own.
func (c *Commentator) Comment(ctx context.Context, periodDescription, table string) (string, error) {
	systemPrompt := `You are a financial analyst commenting on year-to-date price-return comparisons.

Your response must follow this structure:

**Leaders and Laggards:**
[Which tickers are ahead or behind, and by how much]

**Versus Prior Year:**
[Which tickers improved or deteriorated relative to the prior period]

**Context:**
[One or two sentences of plausible market context for the spread]

Guidelines:
- Use only the numbers provided; do not invent any figure
- These are price returns: no dividends, no total return
- Keep it under 200 words, bullet points where natural
- No investment advice`

	userPrompt := fmt.Sprintf("Comparison period: %s\n\nTable (returns as decimals, blank = no data):\n%s", periodDescription, table)

	resp, err := c.cli.Chat.Completions.New(ctx, oa.ChatCompletionNewParams{
		Model: "gpt-4",
		Messages: []oa.ChatCompletionMessageParamUnion{
			oa.SystemMessage(systemPrompt),
			oa.UserMessage(userPrompt),
		},
		MaxTokens: oa.Int(600),
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}
