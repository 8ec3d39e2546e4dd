// Package course orchestrates the full course lifecycle: resolving the
// request to an identity key, reusing or generating the shared roadmap,
// enrolling the user, and generating day content on demand.
package course

import (
	"context"
	"fmt"
	"time"

	"github.com/asteroid-belt/skillpath/internal/enrollment"
	"github.com/asteroid-belt/skillpath/internal/identity"
	"github.com/asteroid-belt/skillpath/internal/log"
	"github.com/asteroid-belt/skillpath/internal/models"
	"github.com/asteroid-belt/skillpath/internal/roadmap"
	"github.com/asteroid-belt/skillpath/internal/telemetry"
)

// KeyResolver resolves course parameters to an identity key.
type KeyResolver interface {
	Resolve(ctx context.Context, skill, experience, timeAvailable, style string) (*identity.Resolution, error)
}

// RoadmapPlanner generates a full roadmap from a user profile.
type RoadmapPlanner interface {
	GeneratePlan(ctx context.Context, prefs *models.UserPreferences) (*models.RoadmapDocument, error)
}

// DayGenerator generates content for one roadmap day.
type DayGenerator interface {
	GenerateDay(ctx context.Context, day models.RoadmapDay, prefs *models.UserPreferences, previousCompleted bool) (*models.EnrollmentDay, error)
}

// Service ties the identity, roadmap, enrollment, and generation layers
// together behind the operations the CLI exposes.
type Service struct {
	resolver    KeyResolver
	roadmaps    *roadmap.Store
	enrollments *enrollment.Store
	planner     RoadmapPlanner
	generator   DayGenerator
	telemetry   telemetry.Client
}

// NewService creates a course service. telemetryClient may be nil.
func NewService(resolver KeyResolver, roadmaps *roadmap.Store, enrollments *enrollment.Store, planner RoadmapPlanner, generator DayGenerator, telemetryClient telemetry.Client) *Service {
	if telemetryClient == nil {
		telemetryClient = telemetry.New(nil)
	}
	return &Service{
		resolver:    resolver,
		roadmaps:    roadmaps,
		enrollments: enrollments,
		planner:     planner,
		generator:   generator,
		telemetry:   telemetryClient,
	}
}

// CourseResult is the outcome of creating a course.
type CourseResult struct {
	IdentityKey   string
	Roadmap       *models.RoadmapDocument
	RoadmapReused bool
	FirstDay      *models.EnrollmentDay
}

// CreateCourse runs the full creation flow: persist preferences, resolve
// the identity key, reuse or generate the shared roadmap, enroll the user,
// and generate day 1.
func (s *Service) CreateCourse(ctx context.Context, userID string, prefs *models.UserPreferences) (*CourseResult, error) {
	if prefs.Skill == "" {
		return nil, fmt.Errorf("skill is required")
	}

	if err := s.enrollments.SavePreferences(ctx, userID, prefs); err != nil {
		return nil, fmt.Errorf("save preferences: %w", err)
	}

	res, err := s.resolver.Resolve(ctx, prefs.Skill, prefs.Experience, prefs.Time, prefs.LearningStyle)
	if err != nil {
		return nil, fmt.Errorf("resolve identity: %w", err)
	}
	log.DebugLog("course", "resolved %q to identity %s (reused=%t)", prefs.Skill, res.IdentityKey, res.Reused)

	params := roadmap.Params{
		Skill:      identity.NormalizeSkill(prefs.Skill),
		Experience: prefs.Experience,
		Time:       prefs.Time,
		Style:      prefs.LearningStyle,
	}
	doc, meta, created, err := s.roadmaps.GetOrCreate(ctx, res.IdentityKey, userID, params, func(ctx context.Context) (*models.RoadmapDocument, error) {
		return s.planner.GeneratePlan(ctx, prefs)
	})
	if err != nil {
		return nil, err
	}
	reused := !created
	if reused {
		s.telemetry.TrackRoadmapReused(res.IdentityKey, res.Similarity, len(meta.UsedByUsers))
	}

	enr, err := s.enrollments.Create(ctx, userID, res.IdentityKey, doc)
	if err != nil {
		return nil, err
	}

	firstDay, err := s.generateDay(ctx, userID, res.IdentityKey, enr, 1, prefs, false)
	if err != nil {
		return nil, err
	}

	s.telemetry.TrackCourseCreated(params.Skill, prefs.Experience, prefs.Time, doc.TotalDays(), reused)

	return &CourseResult{
		IdentityKey:   res.IdentityKey,
		Roadmap:       doc,
		RoadmapReused: reused,
		FirstDay:      firstDay,
	}, nil
}

// DayResult is the outcome of advancing to the next day.
type DayResult struct {
	DayNumber int
	Day       *models.EnrollmentDay
	Finished  bool
	Streak    int
	XPTotal   int
}

// CompleteAndAdvance records completion of the current day and generates
// the next one. score may be nil for ungraded completions. When the
// completed day was the last of the roadmap, no new day is generated and
// Finished is set.
func (s *Service) CompleteAndAdvance(ctx context.Context, userID, identityKey string, score *float64, feedback string) (*DayResult, error) {
	enr, err := s.enrollments.Get(ctx, userID, identityKey)
	if err != nil {
		return nil, err
	}
	if enr.LastGeneratedDay == 0 {
		return nil, fmt.Errorf("no generated day to complete")
	}

	current := enr.LastGeneratedDay
	if err := s.enrollments.RecordCompletion(ctx, userID, identityKey, current, score, feedback); err != nil {
		return nil, err
	}

	// RecordCompletion updated streak and XP; reload for accurate totals
	enr, err = s.enrollments.Get(ctx, userID, identityKey)
	if err != nil {
		return nil, err
	}
	s.telemetry.TrackDayCompleted(current, score != nil, enr.Streak, enr.XPTotal)

	if enr.Finished() {
		s.telemetry.TrackCourseFinished(enr.Roadmap.TotalDays(), enr.XPTotal)
		return &DayResult{
			DayNumber: current,
			Day:       enr.Days[current],
			Finished:  true,
			Streak:    enr.Streak,
			XPTotal:   enr.XPTotal,
		}, nil
	}

	prefs, err := s.enrollments.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	next := current + 1
	day, err := s.generateDay(ctx, userID, identityKey, enr, next, prefs, true)
	if err != nil {
		return nil, err
	}

	return &DayResult{
		DayNumber: next,
		Day:       day,
		Finished:  false,
		Streak:    enr.Streak,
		XPTotal:   enr.XPTotal,
	}, nil
}

// GetDay returns the content for one day, falling back to the shared
// roadmap's latest snapshot when the user has no personalized content.
func (s *Service) GetDay(ctx context.Context, userID, identityKey string, dayNumber int) (*models.EnrollmentDay, error) {
	return s.enrollments.GetDayContent(ctx, userID, identityKey, dayNumber)
}

// GetEnrollment returns the user's enrollment with all generated days.
func (s *Service) GetEnrollment(ctx context.Context, userID, identityKey string) (*models.Enrollment, error) {
	return s.enrollments.Get(ctx, userID, identityKey)
}

// ListCourses returns the identity keys of the user's enrollments.
func (s *Service) ListCourses(ctx context.Context, userID string) ([]string, error) {
	return s.enrollments.List(ctx, userID)
}

// generateDay generates and persists content for one day, then advances
// the enrollment's LastGeneratedDay marker.
func (s *Service) generateDay(ctx context.Context, userID, identityKey string, enr *models.Enrollment, dayNumber int, prefs *models.UserPreferences, previousCompleted bool) (*models.EnrollmentDay, error) {
	roadmapDay, ok := enr.Roadmap.Day(dayNumber)
	if !ok {
		return nil, fmt.Errorf("day %d not in roadmap", dayNumber)
	}

	started := time.Now()
	day, err := s.generator.GenerateDay(ctx, roadmapDay, prefs, previousCompleted)
	if err != nil {
		return nil, fmt.Errorf("generate day %d: %w", dayNumber, err)
	}

	if err := s.enrollments.SaveDayContent(ctx, userID, identityKey, dayNumber, day); err != nil {
		return nil, err
	}

	if dayNumber > enr.LastGeneratedDay {
		enr.LastGeneratedDay = dayNumber
		if err := s.enrollments.Update(ctx, userID, identityKey, enr); err != nil {
			return nil, err
		}
	}

	s.telemetry.TrackDayGenerated(dayNumber, len(day.Blocks), day.IsActionDay, time.Since(started).Milliseconds())
	return day, nil
}
