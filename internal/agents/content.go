package agents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/asteroid-belt/skillpath/internal/content"
	"github.com/asteroid-belt/skillpath/internal/llm"
	"github.com/asteroid-belt/skillpath/internal/log"
	"github.com/asteroid-belt/skillpath/internal/models"
)

// ContentGenerator produces the full content for one learning day.
type ContentGenerator struct {
	provider llm.Provider
}

// NewContentGenerator creates a generator on the given provider.
func NewContentGenerator(provider llm.Provider) *ContentGenerator {
	return &ContentGenerator{provider: provider}
}

// dayPayload is the wire shape of a generated day.
type dayPayload struct {
	Title       string            `json:"title"`
	IsActionDay bool              `json:"is_action_day"`
	ActionTask  string            `json:"action_task,omitempty"`
	Blocks      content.BlockList `json:"blocks"`
}

// GenerateDay produces content for one roadmap day, scaled to the user's
// daily time budget. previousCompleted tells the model the user finished
// yesterday's session.
func (g *ContentGenerator) GenerateDay(ctx context.Context, day models.RoadmapDay, prefs *models.UserPreferences, previousCompleted bool) (*models.EnrollmentDay, error) {
	scale := ScaleForTime(prefs.Time)
	system := fmt.Sprintf(contentSystemPrompt,
		scale.ReadingParts, scale.MCQQuestions, scale.TFStatements, scale.Scenarios)

	messages := []llm.Message{
		llm.NewSystemMessage(system),
		llm.NewUserMessage(contentUserPrompt(day, prefs, previousCompleted)),
	}

	resp, err := g.provider.ChatSync(ctx, messages, llm.ChatOptions{
		MaxTokens:   4096,
		Temperature: 0.8,
	})
	if err != nil {
		return nil, fmt.Errorf("day %d generation: %w", day.DayNumber, err)
	}
	log.DebugLog("agents", "day %d used %d tokens", day.DayNumber, resp.Usage.TotalTokens)

	raw, err := extractJSON(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("day %d response: %w", day.DayNumber, err)
	}

	var payload dayPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("parse day %d: %w", day.DayNumber, err)
	}

	if payload.Title == "" {
		payload.Title = day.Title
	}
	if err := validateDayPayload(&payload, day); err != nil {
		return nil, fmt.Errorf("day %d: %w", day.DayNumber, err)
	}

	return &models.EnrollmentDay{
		Title:       payload.Title,
		IsActionDay: payload.IsActionDay,
		Blocks:      payload.Blocks,
		ActionTask:  payload.ActionTask,
	}, nil
}

// validateDayPayload enforces the action-day/learning-day contract.
func validateDayPayload(payload *dayPayload, day models.RoadmapDay) error {
	if day.IsActionDay {
		if payload.ActionTask == "" {
			return fmt.Errorf("action day without action_task")
		}
		return nil
	}
	if len(payload.Blocks) == 0 {
		return fmt.Errorf("learning day without blocks")
	}
	return payload.Blocks.Validate()
}
