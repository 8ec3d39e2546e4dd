// Package agents turns user profiles into curricula and daily content by
// prompting an LLM provider and validating its structured output.
package agents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/asteroid-belt/skillpath/internal/llm"
	"github.com/asteroid-belt/skillpath/internal/log"
	"github.com/asteroid-belt/skillpath/internal/models"
)

// Planner generates multi-day learning roadmaps.
type Planner struct {
	provider llm.Provider
}

// NewPlanner creates a planner on the given provider.
func NewPlanner(provider llm.Provider) *Planner {
	return &Planner{provider: provider}
}

// GeneratePlan produces a validated roadmap for the user's profile.
func (p *Planner) GeneratePlan(ctx context.Context, prefs *models.UserPreferences) (*models.RoadmapDocument, error) {
	messages := []llm.Message{
		llm.NewSystemMessage(plannerSystemPrompt),
		llm.NewUserMessage(plannerUserPrompt(prefs)),
	}

	resp, err := p.provider.ChatSync(ctx, messages, llm.ChatOptions{
		MaxTokens:   4096,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("plan generation: %w", err)
	}
	log.DebugLog("agents", "planner used %d tokens for %q", resp.Usage.TotalTokens, prefs.Skill)

	raw, err := extractJSON(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("plan response: %w", err)
	}

	var doc models.RoadmapDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	if doc.Skill == "" {
		doc.Skill = prefs.Skill
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("generated plan invalid: %w", err)
	}
	return &doc, nil
}
