package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/yukikurage/project-tracker-api/internal/models"
)

type AIService struct {
	client *openai.Client
}

// TaskDraft is a suggested task; it becomes a Task only through CreateTask.
type TaskDraft struct {
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	Priority      models.TaskPriority `json:"priority"`
	EstimatedTime uint32              `json:"estimated_time"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// GenerateTaskDrafts extracts tasks from text using OpenAI GPT
func (s *AIService) GenerateTaskDrafts(ctx context.Context, text string) ([]TaskDraft, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	priorities := make([]string, len(models.Priorities))
	for i, p := range models.Priorities {
		priorities[i] = string(p)
	}

	prompt := fmt.Sprintf(`You extract concrete work items from project notes.

Notes:
%s

Return a JSON array of tasks in this format:
[
  {
    "name": "short task name (max 50 characters)",
    "description": "what has to be done",
    "priority": "one of: %s",
    "estimated_time": estimated effort in minutes as a positive integer
  }
]

Rules:
- Return [] when the notes contain no tasks
- Return JSON only, no explanations`, text, strings.Join(priorities, ", "))

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

	return parseTaskDrafts(resp.Choices[0].Message.Content)
}

// parseTaskDrafts accepts a bare JSON array, optionally wrapped in a markdown code fence.
func parseTaskDrafts(content string) ([]TaskDraft, error) {
	trimmed := strings.TrimSpace(content)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")

	var drafts []TaskDraft
	if err := json.Unmarshal([]byte(strings.TrimSpace(trimmed)), &drafts); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return drafts, nil
}
