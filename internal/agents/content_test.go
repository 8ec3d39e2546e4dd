package agents

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/skillpath/internal/content"
	"github.com/asteroid-belt/skillpath/internal/models"
	"github.com/asteroid-belt/skillpath/internal/testutil"
)

const learningDayJSON = `{
  "title": "What is mate",
  "is_action_day": false,
  "blocks": [
    {"type": "read", "xp": 10, "title": "Origins", "body": "Mate comes from the Guarani people."},
    {"type": "quiz_mcq", "xp": 15, "question": "Where does mate come from?", "options": ["Japan", "South America", "Norway", "Egypt"], "answer": 1},
    {"type": "quiz_tf", "xp": 10, "statement": "Mate contains caffeine.", "answer": true},
    {"type": "matching_pairs", "xp": 20, "left_items": ["gourd", "bombilla", "yerba", "termo"], "right_items": ["vessel", "straw", "leaves", "flask"], "answer": [0, 1, 2, 3]},
    {"type": "scenario_mcq", "xp": 15, "context": "A friend hands you the gourd.", "options": ["Keep it", "Drink and return it", "Refill it", "Stir it"], "answer": 1}
  ]
}`

const actionDayJSON = `{
  "title": "First brew",
  "is_action_day": true,
  "action_task": "Today you brew your first mate. 1) Fill the gourd two-thirds with yerba. 2) Add warm water to the empty side. 3) Place the bombilla and pour.",
  "blocks": []
}`

func TestGenerateDay_LearningDay(t *testing.T) {
	provider := &testutil.FakeChatProvider{Responses: []string{learningDayJSON}}
	gen := NewContentGenerator(provider)

	day := models.RoadmapDay{DayNumber: 1, Title: "What is mate", Focus: "history"}
	result, err := gen.GenerateDay(context.Background(), day, beginnerPrefs(), false)
	require.NoError(t, err)

	assert.Equal(t, "What is mate", result.Title)
	assert.False(t, result.IsActionDay)
	require.Len(t, result.Blocks, 5)
	assert.Equal(t, 70, result.Blocks.TotalXP())
	assert.Equal(t, content.KindRead, result.Blocks[0].Kind())
	assert.Equal(t, 0, result.Version, "version is stamped at save time, not generation time")
}

func TestGenerateDay_ActionDay(t *testing.T) {
	provider := &testutil.FakeChatProvider{Responses: []string{actionDayJSON}}
	gen := NewContentGenerator(provider)

	day := models.RoadmapDay{DayNumber: 3, Title: "First brew", IsActionDay: true}
	result, err := gen.GenerateDay(context.Background(), day, beginnerPrefs(), true)
	require.NoError(t, err)

	assert.True(t, result.IsActionDay)
	assert.NotEmpty(t, result.ActionTask)
	assert.Empty(t, result.Blocks)
}

func TestGenerateDay_ActionDayWithoutTaskRejected(t *testing.T) {
	provider := &testutil.FakeChatProvider{Responses: []string{`{"title":"First brew","is_action_day":true,"blocks":[]}`}}
	gen := NewContentGenerator(provider)

	day := models.RoadmapDay{DayNumber: 3, Title: "First brew", IsActionDay: true}
	_, err := gen.GenerateDay(context.Background(), day, beginnerPrefs(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "action_task")
}

func TestGenerateDay_LearningDayWithoutBlocksRejected(t *testing.T) {
	provider := &testutil.FakeChatProvider{Responses: []string{`{"title":"Empty","is_action_day":false,"blocks":[]}`}}
	gen := NewContentGenerator(provider)

	day := models.RoadmapDay{DayNumber: 1, Title: "Empty"}
	_, err := gen.GenerateDay(context.Background(), day, beginnerPrefs(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "without blocks")
}

func TestGenerateDay_UnknownBlockTypeRejected(t *testing.T) {
	bad := `{"title":"x","blocks":[{"type":"hologram","xp":5}]}`
	provider := &testutil.FakeChatProvider{Responses: []string{bad}}
	gen := NewContentGenerator(provider)

	day := models.RoadmapDay{DayNumber: 1, Title: "x"}
	_, err := gen.GenerateDay(context.Background(), day, beginnerPrefs(), false)
	assert.Error(t, err)
}

func TestGenerateDay_PromptCarriesScaleAndProfile(t *testing.T) {
	provider := &testutil.FakeChatProvider{Responses: []string{learningDayJSON}}
	gen := NewContentGenerator(provider)

	day := models.RoadmapDay{DayNumber: 1, Title: "What is mate", Focus: "history"}
	_, err := gen.GenerateDay(context.Background(), day, beginnerPrefs(), true)
	require.NoError(t, err)

	require.Len(t, provider.Requests, 1)
	system := provider.Requests[0][0].Content
	// 10 minutes maps to 3 reading parts
	assert.True(t, strings.Contains(system, "3 short reading parts"), "system prompt: %s", system)

	user := provider.Requests[0][1].Content
	assert.Contains(t, user, "Skill: mate")
	assert.Contains(t, user, "completed the previous day")
}

func TestScaleForTime(t *testing.T) {
	assert.Equal(t, 2, ScaleForTime("5 minutes").ReadingParts)
	assert.Equal(t, 6, ScaleForTime("30+ minutes").MCQQuestions)
	// Unknown time budgets get the largest scale
	assert.Equal(t, 5, ScaleForTime("all day").ReadingParts)
}
