package telemetry

import (
	"runtime"

	"github.com/asteroid-belt/skillpath/pkg/version"
)

// Event names - course lifecycle
const (
	EventCourseCreated  = "course_created"
	EventRoadmapReused  = "roadmap_reused"
	EventDayGenerated   = "day_generated"
	EventDayCompleted   = "day_completed"
	EventCourseFinished = "course_finished"
)

// Event names - CLI
const (
	EventCLICommandExecuted  = "cli_command_executed"
	EventCLIErrorOccurred    = "cli_error_occurred"
	EventOnboardingCompleted = "onboarding_completed"
)

// Version is set at compile time via ldflags.
var Version string

// baseProperties returns common properties for all events.
func baseProperties() map[string]interface{} {
	return map[string]interface{}{
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
		"version":    Version,
		"prerelease": version.IsPrerelease(),
		"dev_build":  version.IsDevBuild(),
	}
}

// --- Course Tracking Methods ---

// TrackCourseCreated tracks the creation of a new course for a user.
func (c *posthogClient) TrackCourseCreated(skill, experience, timeBudget string, totalDays int, roadmapReused bool) {
	props := baseProperties()
	props["skill"] = skill
	props["experience"] = experience
	props["time_budget"] = timeBudget
	props["total_days"] = totalDays
	props["roadmap_reused"] = roadmapReused
	c.Track(EventCourseCreated, props)
}

// TrackRoadmapReused tracks a semantic cache hit on the shared roadmap.
func (c *posthogClient) TrackRoadmapReused(identityKey string, similarity float32, userCount int) {
	props := baseProperties()
	props["identity_key"] = identityKey
	props["similarity"] = similarity
	props["user_count"] = userCount
	c.Track(EventRoadmapReused, props)
}

// TrackDayGenerated tracks generation of one day's content.
func (c *posthogClient) TrackDayGenerated(dayNumber, blockCount int, isActionDay bool, durationMs int64) {
	props := baseProperties()
	props["day_number"] = dayNumber
	props["block_count"] = blockCount
	props["is_action_day"] = isActionDay
	props["generation_duration_ms"] = durationMs
	c.Track(EventDayGenerated, props)
}

// TrackDayCompleted tracks a day completion.
func (c *posthogClient) TrackDayCompleted(dayNumber int, hasScore bool, streak, xpTotal int) {
	props := baseProperties()
	props["day_number"] = dayNumber
	props["has_score"] = hasScore
	props["streak"] = streak
	props["xp_total"] = xpTotal
	c.Track(EventDayCompleted, props)
}

// TrackCourseFinished tracks completion of the final roadmap day.
func (c *posthogClient) TrackCourseFinished(totalDays, xpTotal int) {
	props := baseProperties()
	props["total_days"] = totalDays
	props["xp_total"] = xpTotal
	c.Track(EventCourseFinished, props)
}

// --- CLI Tracking Methods ---

// TrackCLICommandExecuted tracks CLI command execution.
func (c *posthogClient) TrackCLICommandExecuted(commandName string, hasFlags bool, durationMs int64) {
	props := baseProperties()
	props["command_name"] = commandName
	props["has_flags"] = hasFlags
	props["execution_duration_ms"] = durationMs
	c.Track(EventCLICommandExecuted, props)
}

// TrackCLIError tracks CLI errors.
func (c *posthogClient) TrackCLIError(commandName, errorType string) {
	props := baseProperties()
	props["command_name"] = commandName
	props["error_type"] = errorType
	c.Track(EventCLIErrorOccurred, props)
}

// TrackOnboardingCompleted tracks onboarding completion.
func (c *posthogClient) TrackOnboardingCompleted(skill, experience, timeBudget string) {
	props := baseProperties()
	props["skill"] = skill
	props["experience"] = experience
	props["time_budget"] = timeBudget
	c.Track(EventOnboardingCompleted, props)
}

// --- noopClient implementations (no-ops) ---

func (c *noopClient) TrackCourseCreated(skill, experience, timeBudget string, totalDays int, roadmapReused bool) {
}
func (c *noopClient) TrackRoadmapReused(identityKey string, similarity float32, userCount int)    {}
func (c *noopClient) TrackDayGenerated(dayNumber, blockCount int, isActionDay bool, d int64)      {}
func (c *noopClient) TrackDayCompleted(dayNumber int, hasScore bool, streak, xpTotal int)         {}
func (c *noopClient) TrackCourseFinished(totalDays, xpTotal int)                                  {}
func (c *noopClient) TrackCLICommandExecuted(commandName string, hasFlags bool, durationMs int64) {}
func (c *noopClient) TrackCLIError(commandName, errorType string)                                 {}
func (c *noopClient) TrackOnboardingCompleted(skill, experience, timeBudget string)               {}
