package agents

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/skillpath/internal/models"
	"github.com/asteroid-belt/skillpath/internal/testutil"
)

const planJSON = `{
  "skill": "mate",
  "sections": [
    {
      "title": "Basics",
      "description": "Foundations of mate culture.",
      "days": [
        {"day_number": 1, "title": "What is mate", "is_action_day": false, "focus": "history"},
        {"day_number": 2, "title": "Equipment", "is_action_day": false, "focus": "gourd and bombilla"}
      ]
    },
    {
      "title": "Practice",
      "description": "Hands-on brewing.",
      "days": [
        {"day_number": 3, "title": "First brew", "is_action_day": true, "focus": "preparation"}
      ]
    }
  ]
}`

func beginnerPrefs() *models.UserPreferences {
	return &models.UserPreferences{
		Name:       "Ana",
		Skill:      "mate",
		Experience: models.ExperienceBeginner,
		Time:       "10 minutes",
		Goal:       "brew a proper mate",
	}
}

func TestGeneratePlan_ParsesValidPlan(t *testing.T) {
	provider := &testutil.FakeChatProvider{Responses: []string{planJSON}}
	planner := NewPlanner(provider)

	doc, err := planner.GeneratePlan(context.Background(), beginnerPrefs())
	require.NoError(t, err)
	assert.Equal(t, "mate", doc.Skill)
	assert.Equal(t, 3, doc.TotalDays())
	assert.Len(t, doc.Sections, 2)

	day, ok := doc.Day(3)
	require.True(t, ok)
	assert.True(t, day.IsActionDay)
}

func TestGeneratePlan_StripsCodeFences(t *testing.T) {
	fenced := "Here is your plan:\n```json\n" + planJSON + "\n```\nEnjoy!"
	provider := &testutil.FakeChatProvider{Responses: []string{fenced}}
	planner := NewPlanner(provider)

	doc, err := planner.GeneratePlan(context.Background(), beginnerPrefs())
	require.NoError(t, err)
	assert.Equal(t, 3, doc.TotalDays())
}

func TestGeneratePlan_RejectsBrokenNumbering(t *testing.T) {
	broken := `{"skill":"mate","sections":[{"title":"Basics","days":[
		{"day_number":1,"title":"a"},{"day_number":5,"title":"b"}]}]}`
	provider := &testutil.FakeChatProvider{Responses: []string{broken}}
	planner := NewPlanner(provider)

	_, err := planner.GeneratePlan(context.Background(), beginnerPrefs())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid")
}

func TestGeneratePlan_RejectsNonJSON(t *testing.T) {
	provider := &testutil.FakeChatProvider{Responses: []string{"I cannot plan that course."}}
	planner := NewPlanner(provider)

	_, err := planner.GeneratePlan(context.Background(), beginnerPrefs())
	assert.Error(t, err)
}

func TestGeneratePlan_ProviderError(t *testing.T) {
	provider := &testutil.FakeChatProvider{Err: errors.New("rate limited")}
	planner := NewPlanner(provider)

	_, err := planner.GeneratePlan(context.Background(), beginnerPrefs())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plan generation")
}

func TestGeneratePlan_FillsMissingSkill(t *testing.T) {
	noSkill := `{"sections":[{"title":"Basics","days":[{"day_number":1,"title":"a"}]}]}`
	provider := &testutil.FakeChatProvider{Responses: []string{noSkill}}
	planner := NewPlanner(provider)

	doc, err := planner.GeneratePlan(context.Background(), beginnerPrefs())
	require.NoError(t, err)
	assert.Equal(t, "mate", doc.Skill)
}
