package models

import (
	"fmt"
	"time"
)

// RoadmapDay is one day within the shared curriculum skeleton.
// Day numbers are globally sequential across the whole roadmap; they never
// reset at section boundaries.
type RoadmapDay struct {
	DayNumber   int    `json:"day_number"`
	Title       string `json:"title"`
	IsActionDay bool   `json:"is_action_day"`
	Focus       string `json:"focus"`
}

// RoadmapSection groups consecutive days under a theme.
type RoadmapSection struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Days        []RoadmapDay `json:"days"`
}

// RoadmapDocument is the shared multi-day curriculum. It is owned
// collectively by every user enrolled under the same identity key and is
// mutated only by re-generation, never by an individual user's progress.
type RoadmapDocument struct {
	Skill    string           `json:"skill"`
	Sections []RoadmapSection `json:"sections"`
}

// TotalDays returns the number of days across all sections.
func (r *RoadmapDocument) TotalDays() int {
	total := 0
	for _, section := range r.Sections {
		total += len(section.Days)
	}
	return total
}

// Day returns the roadmap day with the given number, or false if absent.
func (r *RoadmapDocument) Day(number int) (RoadmapDay, bool) {
	for _, section := range r.Sections {
		for _, day := range section.Days {
			if day.DayNumber == number {
				return day, true
			}
		}
	}
	return RoadmapDay{}, false
}

// Validate checks structural integrity: at least one non-empty section and
// globally sequential day numbering starting at 1.
func (r *RoadmapDocument) Validate() error {
	if len(r.Sections) == 0 {
		return fmt.Errorf("roadmap has no sections")
	}

	expected := 1
	for si, section := range r.Sections {
		if len(section.Days) == 0 {
			return fmt.Errorf("section %d (%q) has no days", si, section.Title)
		}
		for _, day := range section.Days {
			if day.DayNumber != expected {
				return fmt.Errorf("day numbering broken at section %d: got day %d, want %d", si, day.DayNumber, expected)
			}
			expected++
		}
	}
	return nil
}

// DayVersion is one snapshot of a roadmap day's content. Histories are
// append-only and ordered by Version; the last element is always current.
type DayVersion struct {
	Content   RoadmapDay `json:"content"`
	Version   int        `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
}

// RoadmapMetadata wraps a RoadmapDocument with versioning state shared by
// all users on the same identity key.
type RoadmapMetadata struct {
	IdentityKey string `json:"identity_key"`

	// Defining parameters of the curriculum
	Skill      string `json:"skill"`
	Experience string `json:"experience"`
	Time       string `json:"time"`
	Style      string `json:"style,omitempty"`

	// Version increases by one on every Put for this identity key.
	Version int `json:"version"`

	// UsedByUsers lists enrolled user IDs, each at most once.
	UsedByUsers []string `json:"used_by_users"`

	// DayVersions maps day number to its append-only snapshot history.
	// Keys are a superset of every day number ever present in any version
	// of the document; entries are never deleted.
	DayVersions map[int][]DayVersion `json:"day_versions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasUser reports whether uid is already in UsedByUsers.
func (m *RoadmapMetadata) HasUser(uid string) bool {
	for _, u := range m.UsedByUsers {
		if u == uid {
			return true
		}
	}
	return false
}

// LatestDayVersion returns the current snapshot for the given day number.
func (m *RoadmapMetadata) LatestDayVersion(day int) (DayVersion, bool) {
	versions := m.DayVersions[day]
	if len(versions) == 0 {
		return DayVersion{}, false
	}
	return versions[len(versions)-1], true
}
