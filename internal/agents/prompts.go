package agents

import (
	"fmt"
	"strings"

	"github.com/asteroid-belt/skillpath/internal/models"
)

const plannerSystemPrompt = `You are an expert curriculum planner for a personalized learning app.
Given a skill, the user's experience level, and their daily time budget, design
a multi-day learning roadmap.

The roadmap must:
- Follow a logical progression from fundamentals to applied practice
- Group consecutive days into themed sections
- Number days globally and sequentially starting at 1, never resetting per section
- Mark roughly one day in four as an action day, where the user does instead of reads
- Give each day a short, concrete focus

Respond with ONLY a JSON object, no commentary, matching exactly:
{
  "skill": "<skill name>",
  "sections": [
    {
      "title": "<section title>",
      "description": "<one sentence>",
      "days": [
        {"day_number": 1, "title": "<day title>", "is_action_day": false, "focus": "<focus>"}
      ]
    }
  ]
}`

// plannerUserPrompt renders the planning request for one user profile.
func plannerUserPrompt(prefs *models.UserPreferences) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a learning roadmap for:\n")
	fmt.Fprintf(&b, "* Skill: %s\n", prefs.Skill)
	fmt.Fprintf(&b, "* Experience: %s\n", prefs.Experience)
	fmt.Fprintf(&b, "* Daily time: %s\n", prefs.Time)
	if prefs.Goal != "" {
		fmt.Fprintf(&b, "* Goal: %s\n", prefs.Goal)
	}
	if prefs.Motivation != "" {
		fmt.Fprintf(&b, "* Motivation: %s\n", prefs.Motivation)
	}
	b.WriteString("\nPlan 14 to 21 days total.")
	return b.String()
}

const contentSystemPrompt = `You are a content generator for a personalized learning app.
You generate one full learning session, adapted to the user's profile, daily
time budget, and whether today is an action day.

On a normal learning day, produce:
- %d short reading parts, each with a catchy title, one accessible paragraph
  explaining a single concept, and content that fits on a phone screen
- %d multiple-choice questions, each with 4 options and one correct answer
- %d true/false statements
- 1 match-to-meaning exercise with 4 terms and 4 definitions
- %d scenario questions, each with 4 options and one best answer

On an action day, skip reading and exercises entirely. Instead write an
action_task: a motivational intro, a task description, and at least 3 clear
step-by-step instructions, sized to the user's daily time.

Tone: friendly, motivating, beginner-accessible. Short paragraphs, no jargon.

Respond with ONLY a JSON object, no commentary, matching exactly:
{
  "title": "<day title>",
  "is_action_day": <bool>,
  "action_task": "<only on action days, else omit>",
  "blocks": [
    {"type": "read", "xp": 10, "title": "...", "body": "..."},
    {"type": "quiz_mcq", "xp": 15, "question": "...", "options": ["A","B","C","D"], "answer": 0},
    {"type": "quiz_tf", "xp": 10, "statement": "...", "answer": true},
    {"type": "matching_pairs", "xp": 20, "left_items": [...], "right_items": [...], "answer": [0,1,2,3]},
    {"type": "scenario_mcq", "xp": 15, "context": "...", "options": ["A","B","C","D"], "answer": 2}
  ]
}
On action days the blocks array must be empty.`

// contentUserPrompt renders the generation request for one day.
func contentUserPrompt(day models.RoadmapDay, prefs *models.UserPreferences, previousCompleted bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate today's learning content:\n")
	fmt.Fprintf(&b, "* Skill: %s\n", prefs.Skill)
	fmt.Fprintf(&b, "* Experience: %s\n", prefs.Experience)
	fmt.Fprintf(&b, "* Daily time: %s\n", prefs.Time)
	fmt.Fprintf(&b, "* Day %d title: %s\n", day.DayNumber, day.Title)
	fmt.Fprintf(&b, "* Day focus: %s\n", day.Focus)
	fmt.Fprintf(&b, "* Is action day: %t\n", day.IsActionDay)
	if prefs.LearningStyle != "" {
		fmt.Fprintf(&b, "* Learning style preference: %s\n", prefs.LearningStyle)
	}
	if prefs.Goal != "" {
		fmt.Fprintf(&b, "* Learning goal: %s\n", prefs.Goal)
	}
	if previousCompleted {
		b.WriteString("\nThe user successfully completed the previous day's content.")
	}
	return b.String()
}

// extractJSON pulls the JSON object out of a model response, tolerating
// markdown code fences and surrounding prose.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("no JSON object in response")
	}
	return s[start : end+1], nil
}
