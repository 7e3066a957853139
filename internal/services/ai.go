package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

type AIService struct {
	client *openai.Client
}

type GeneratedIssue struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// GenerateIssuesFromText analyzes free-form text and extracts issue drafts using OpenAI GPT
func (s *AIService) GenerateIssuesFromText(ctx context.Context, text string) ([]GeneratedIssue, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You are an issue extraction assistant. Extract concrete, actionable issues from the text below.

Text:
%s

Return a JSON array of the extracted issues in this shape:
[
  {
    "title": "short issue title",
    "description": "detailed description of the work"
  }
]

Rules:
- Return an empty array [] if there are no actionable issues
- Return JSON only, no surrounding prose`, text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var issues []GeneratedIssue
	if err := json.Unmarshal([]byte(content), &issues); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return issues, nil
}
