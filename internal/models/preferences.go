// Package models defines the core data structures for Skillpath.
package models

import "time"

// UserPreferences captures what the user told us during onboarding.
// Created once; overwritten only when the user re-onboards for a new skill.
type UserPreferences struct {
	Name          string    `json:"name"`
	Skill         string    `json:"skill"`
	Experience    string    `json:"experience"`
	Motivation    string    `json:"motivation"`
	Time          string    `json:"time"`
	LearningStyle string    `json:"learning_style"`
	Goal          string    `json:"goal"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Experience levels.
const (
	ExperienceBeginner     = "beginner"
	ExperienceIntermediate = "intermediate"
	ExperienceAdvanced     = "advanced"
)

// ValidExperienceLevels returns all valid experience levels.
func ValidExperienceLevels() []string {
	return []string{ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced}
}
