package models

import (
	"time"

	"github.com/asteroid-belt/skillpath/internal/content"
)

// EnrollmentDay is the content actually served to one user for one day.
// Version records the roadmap version the content was generated against,
// so later roadmap edits never retroactively relabel completed work.
type EnrollmentDay struct {
	Title       string            `json:"title"`
	IsActionDay bool              `json:"is_action_day"`
	Blocks      content.BlockList `json:"blocks"`
	ActionTask  string            `json:"action_task,omitempty"`
	Score       *float64          `json:"score,omitempty"`
	Feedback    string            `json:"feedback,omitempty"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	Version     int               `json:"version"`
}

// Completed reports whether the day has a recorded completion timestamp.
func (d *EnrollmentDay) Completed() bool {
	return d.CompletedAt != nil
}

// Enrollment is one user's subscription to a roadmap, including the roadmap
// snapshot taken at subscription time and cumulative progress.
type Enrollment struct {
	Roadmap          RoadmapDocument        `json:"roadmap_json"`
	LastGeneratedDay int                    `json:"last_generated_day"`
	Streak           int                    `json:"streak"`
	XPTotal          int                    `json:"xp_total"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
	Days             map[int]*EnrollmentDay `json:"days"`
}

// Finished reports whether every roadmap day has been generated.
func (e *Enrollment) Finished() bool {
	return e.LastGeneratedDay >= e.Roadmap.TotalDays()
}
