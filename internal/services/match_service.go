package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/devmarket/marketplace-api/internal/constants"
	"github.com/devmarket/marketplace-api/internal/models"
	"github.com/sashabaranov/go-openai"
)

// MatchService wraps the scoring oracle that ranks developers against a
// project. It only produces suggestions; nothing in the workflow depends on
// its output.
type MatchService struct {
	client *openai.Client
}

// DeveloperSuggestion is one ranked candidate.
type DeveloperSuggestion struct {
	DeveloperID uint64  `json:"developer_id"`
	Score       float64 `json:"score"`
	Reason      string  `json:"reason"`
}

func NewMatchService(apiKey string) *MatchService {
	return &MatchService{
		client: openai.NewClient(apiKey),
	}
}

// SuggestDevelopers asks the model to score the given candidates for the
// project and returns at most MaxMatchSuggestions of them, best first.
func (s *MatchService) SuggestDevelopers(ctx context.Context, project *models.Project, candidates []models.User) ([]DeveloperSuggestion, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a developer-matching assistant for a freelance marketplace.\n\n")
	fmt.Fprintf(&b, "Project: %s\nDescription: %s\nRequired skills: %s\n\nCandidates:\n",
		project.Title, project.Description, strings.Join(project.RequiredSkills, ", "))

	for _, c := range candidates {
		skills := ""
		experience := ""
		rate := 0.0
		if c.DeveloperProfile != nil {
			skills = strings.Join(c.DeveloperProfile.Skills, ", ")
			experience = string(c.DeveloperProfile.ExperienceLevel)
			rate = c.DeveloperProfile.HourlyRate
		}
		fmt.Fprintf(&b, "- id=%d skills=[%s] experience=%s hourly_rate=%.0f\n", c.ID, skills, experience, rate)
	}

	fmt.Fprintf(&b, `
Return a JSON array of the best matches (at most %d entries), best first:
[
  {"developer_id": 1, "score": 0.92, "reason": "short justification"}
]

Rules:
- score is between 0 and 1
- only use developer_id values from the candidate list
- return JSON only, no explanatory text`, constants.MaxMatchSuggestions)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: b.String(),
				},
			},
			Temperature: 0.2,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var suggestions []DeveloperSuggestion
	if err := json.Unmarshal([]byte(content), &suggestions); err != nil {
		return nil, fmt.Errorf("failed to parse matching response: %w (response: %s)", err, content)
	}

	known := make(map[uint64]struct{}, len(candidates))
	for _, c := range candidates {
		known[c.ID] = struct{}{}
	}

	valid := make([]DeveloperSuggestion, 0, len(suggestions))
	for _, sg := range suggestions {
		if _, ok := known[sg.DeveloperID]; !ok {
			continue
		}
		valid = append(valid, sg)
		if len(valid) == constants.MaxMatchSuggestions {
			break
		}
	}

	return valid, nil
}
