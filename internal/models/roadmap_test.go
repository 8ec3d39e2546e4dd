package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoadmap() *RoadmapDocument {
	return &RoadmapDocument{
		Skill: "mate",
		Sections: []RoadmapSection{
			{
				Title: "Basics",
				Days: []RoadmapDay{
					{DayNumber: 1, Title: "What is mate", Focus: "history and culture"},
					{DayNumber: 2, Title: "The gourd and bombilla", Focus: "equipment"},
				},
			},
			{
				Title: "Preparation",
				Days: []RoadmapDay{
					{DayNumber: 3, Title: "Your first brew", IsActionDay: true, Focus: "hands-on preparation"},
				},
			},
		},
	}
}

func TestRoadmapDocument_Validate(t *testing.T) {
	require.NoError(t, testRoadmap().Validate())
}

func TestRoadmapDocument_Validate_NumberingResetsRejected(t *testing.T) {
	r := testRoadmap()
	// Simulate per-section numbering, which is not allowed
	r.Sections[1].Days[0].DayNumber = 1

	err := r.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "day numbering broken")
}

func TestRoadmapDocument_Validate_EmptySectionRejected(t *testing.T) {
	r := testRoadmap()
	r.Sections[1].Days = nil

	assert.Error(t, r.Validate())
}

func TestRoadmapDocument_DayLookup(t *testing.T) {
	r := testRoadmap()

	assert.Equal(t, 3, r.TotalDays())

	day, ok := r.Day(3)
	require.True(t, ok)
	assert.True(t, day.IsActionDay)

	_, ok = r.Day(4)
	assert.False(t, ok)
}

func TestRoadmapMetadata_Helpers(t *testing.T) {
	meta := &RoadmapMetadata{
		UsedByUsers: []string{"u1"},
		DayVersions: map[int][]DayVersion{
			1: {
				{Content: RoadmapDay{DayNumber: 1, Title: "old"}, Version: 1, CreatedAt: time.Now()},
				{Content: RoadmapDay{DayNumber: 1, Title: "new"}, Version: 2, CreatedAt: time.Now()},
			},
		},
	}

	assert.True(t, meta.HasUser("u1"))
	assert.False(t, meta.HasUser("u2"))

	latest, ok := meta.LatestDayVersion(1)
	require.True(t, ok)
	assert.Equal(t, 2, latest.Version)
	assert.Equal(t, "new", latest.Content.Title)

	_, ok = meta.LatestDayVersion(9)
	assert.False(t, ok)
}
