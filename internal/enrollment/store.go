// Package enrollment persists per-user course state: preferences, the
// enrollment record, and the generated content for each day. Enrollments
// reference a shared roadmap by identity key but are owned by one user.
package enrollment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/asteroid-belt/skillpath/internal/log"
	"github.com/asteroid-belt/skillpath/internal/models"
	"github.com/asteroid-belt/skillpath/internal/roadmap"
	"github.com/asteroid-belt/skillpath/internal/store"
)

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = store.ErrNotFound

const preferencesPath = "preferences.json"

// Store reads and writes per-user enrollment state. Day content lookups
// fall back to the shared roadmap's latest day snapshot when the user has
// no personalized content yet.
type Store struct {
	docs     store.Store
	roadmaps *roadmap.Store
}

// NewStore creates an enrollment store. roadmaps may be nil, in which case
// day lookups have no shared fallback.
func NewStore(docs store.Store, roadmaps *roadmap.Store) *Store {
	return &Store{docs: docs, roadmaps: roadmaps}
}

func enrollmentKey(userID, identityKey string) store.Key {
	return store.Key{
		Namespace: store.NamespaceUsers,
		Owner:     userID,
		Path:      fmt.Sprintf("courses/%s/enrollment.json", identityKey),
	}
}

func dayKey(userID, identityKey string, day int) store.Key {
	return store.Key{
		Namespace: store.NamespaceUsers,
		Owner:     userID,
		Path:      fmt.Sprintf("courses/%s/days/day_%d.json", identityKey, day),
	}
}

func preferencesKey(userID string) store.Key {
	return store.Key{Namespace: store.NamespaceUsers, Owner: userID, Path: preferencesPath}
}

// SavePreferences stores the user's onboarding answers, preserving the
// original creation time on overwrite.
func (s *Store) SavePreferences(ctx context.Context, userID string, prefs *models.UserPreferences) error {
	now := time.Now().UTC()
	if existing, err := s.GetPreferences(ctx, userID); err == nil {
		prefs.CreatedAt = existing.CreatedAt
	} else {
		prefs.CreatedAt = now
	}
	prefs.UpdatedAt = now

	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	return s.docs.Write(ctx, preferencesKey(userID), data)
}

// GetPreferences returns the user's stored preferences.
func (s *Store) GetPreferences(ctx context.Context, userID string) (*models.UserPreferences, error) {
	data, err := s.docs.Read(ctx, preferencesKey(userID))
	if err != nil {
		return nil, fmt.Errorf("read preferences %s: %w", userID, err)
	}
	var prefs models.UserPreferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("parse preferences %s: %w", userID, err)
	}
	return &prefs, nil
}

// Create enrolls the user in a roadmap, snapshotting the roadmap document
// as it exists right now. Creating an enrollment that already exists
// returns the existing one untouched, so progress is never reset.
func (s *Store) Create(ctx context.Context, userID, identityKey string, doc *models.RoadmapDocument) (*models.Enrollment, error) {
	if existing, err := s.Get(ctx, userID, identityKey); err == nil {
		return existing, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	enr := &models.Enrollment{
		Roadmap:   *doc,
		CreatedAt: now,
		UpdatedAt: now,
		Days:      make(map[int]*models.EnrollmentDay),
	}
	if err := s.writeEnrollment(ctx, userID, identityKey, enr); err != nil {
		return nil, err
	}

	log.DebugLog("enrollment", "user %s enrolled in %s (%d days)", userID, identityKey, doc.TotalDays())
	return enr, nil
}

// Get returns the user's enrollment including all generated day content.
func (s *Store) Get(ctx context.Context, userID, identityKey string) (*models.Enrollment, error) {
	data, err := s.docs.Read(ctx, enrollmentKey(userID, identityKey))
	if err != nil {
		return nil, fmt.Errorf("read enrollment %s/%s: %w", userID, identityKey, err)
	}

	var enr models.Enrollment
	if err := json.Unmarshal(data, &enr); err != nil {
		return nil, fmt.Errorf("parse enrollment %s/%s: %w", userID, identityKey, err)
	}
	if enr.Days == nil {
		enr.Days = make(map[int]*models.EnrollmentDay)
	}

	// Day documents are stored separately so a write touches one day only
	prefix := fmt.Sprintf("courses/%s/days/", identityKey)
	paths, err := s.docs.List(ctx, store.NamespaceUsers, userID, prefix)
	if err != nil {
		return nil, err
	}
	for _, path := range paths {
		dayNum, ok := parseDayNumber(path)
		if !ok {
			continue
		}
		dayData, err := s.docs.Read(ctx, store.Key{Namespace: store.NamespaceUsers, Owner: userID, Path: path})
		if err != nil {
			return nil, err
		}
		var day models.EnrollmentDay
		if err := json.Unmarshal(dayData, &day); err != nil {
			return nil, fmt.Errorf("parse day %s: %w", path, err)
		}
		enr.Days[dayNum] = &day
	}

	return &enr, nil
}

// Update persists the enrollment record. Day content is written through
// SaveDayContent, not here.
func (s *Store) Update(ctx context.Context, userID, identityKey string, enr *models.Enrollment) error {
	enr.UpdatedAt = time.Now().UTC()
	return s.writeEnrollment(ctx, userID, identityKey, enr)
}

// writeEnrollment stores the enrollment record without its day map.
func (s *Store) writeEnrollment(ctx context.Context, userID, identityKey string, enr *models.Enrollment) error {
	record := *enr
	record.Days = nil

	data, err := json.Marshal(&record)
	if err != nil {
		return fmt.Errorf("encode enrollment: %w", err)
	}
	return s.docs.Write(ctx, enrollmentKey(userID, identityKey), data)
}

// SaveDayContent stores one day's generated content for the user.
//
// When the day carries no roadmap version, it is stamped with the version
// of the shared roadmap's latest snapshot for that day, pinning the content
// to what it was generated against. Grading fields of an already completed
// day are preserved unless the incoming day carries its own.
func (s *Store) SaveDayContent(ctx context.Context, userID, identityKey string, dayNumber int, day *models.EnrollmentDay) error {
	if dayNumber < 1 {
		return fmt.Errorf("invalid day number %d", dayNumber)
	}

	if day.Version == 0 && s.roadmaps != nil {
		if _, meta, err := s.roadmaps.Get(ctx, identityKey); err == nil {
			if dv, ok := meta.LatestDayVersion(dayNumber); ok {
				day.Version = dv.Version
			}
		} else if !errors.Is(err, roadmap.ErrNotFound) {
			return err
		}
	}

	if existing, err := s.GetDayContent(ctx, userID, identityKey, dayNumber); err == nil {
		if existing.Completed() && !day.Completed() {
			day.Score = existing.Score
			day.Feedback = existing.Feedback
			day.CompletedAt = existing.CompletedAt
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	data, err := json.Marshal(day)
	if err != nil {
		return fmt.Errorf("encode day %d: %w", dayNumber, err)
	}
	return s.docs.Write(ctx, dayKey(userID, identityKey, dayNumber), data)
}

// GetDayContent returns the user's content for a day. When the user has
// none, the shared roadmap's latest snapshot for that day is returned as a
// skeleton day carrying the snapshot's version. ErrNotFound means neither
// exists.
func (s *Store) GetDayContent(ctx context.Context, userID, identityKey string, dayNumber int) (*models.EnrollmentDay, error) {
	data, err := s.docs.Read(ctx, dayKey(userID, identityKey, dayNumber))
	if err == nil {
		var day models.EnrollmentDay
		if err := json.Unmarshal(data, &day); err != nil {
			return nil, fmt.Errorf("parse day %d: %w", dayNumber, err)
		}
		return &day, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	if s.roadmaps == nil {
		return nil, ErrNotFound
	}
	_, meta, rerr := s.roadmaps.Get(ctx, identityKey)
	if rerr != nil {
		if errors.Is(rerr, roadmap.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, rerr
	}
	dv, ok := meta.LatestDayVersion(dayNumber)
	if !ok {
		return nil, ErrNotFound
	}

	return &models.EnrollmentDay{
		Title:       dv.Content.Title,
		IsActionDay: dv.Content.IsActionDay,
		Version:     dv.Version,
	}, nil
}

// RecordCompletion marks a day completed with its score and feedback and
// rolls the result into the enrollment's streak and XP totals.
func (s *Store) RecordCompletion(ctx context.Context, userID, identityKey string, dayNumber int, score *float64, feedback string) error {
	day, err := s.GetDayContent(ctx, userID, identityKey, dayNumber)
	if err != nil {
		return err
	}
	if day.Completed() {
		return fmt.Errorf("day %d already completed", dayNumber)
	}

	now := time.Now().UTC()
	day.Score = score
	day.Feedback = feedback
	day.CompletedAt = &now
	data, err := json.Marshal(day)
	if err != nil {
		return fmt.Errorf("encode day %d: %w", dayNumber, err)
	}
	if err := s.docs.Write(ctx, dayKey(userID, identityKey, dayNumber), data); err != nil {
		return err
	}

	enr, err := s.Get(ctx, userID, identityKey)
	if err != nil {
		return err
	}
	enr.Streak++
	enr.XPTotal += day.Blocks.TotalXP()
	return s.Update(ctx, userID, identityKey, enr)
}

// List returns the identity keys of every roadmap the user is enrolled in.
func (s *Store) List(ctx context.Context, userID string) ([]string, error) {
	paths, err := s.docs.List(ctx, store.NamespaceUsers, userID, "courses/")
	if err != nil {
		return nil, err
	}

	var keys []string
	for _, path := range paths {
		rest, ok := strings.CutPrefix(path, "courses/")
		if !ok {
			continue
		}
		key, file, found := strings.Cut(rest, "/")
		if !found || file != "enrollment.json" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// parseDayNumber extracts N from a ".../days/day_N.json" path.
func parseDayNumber(path string) (int, bool) {
	base := path[strings.LastIndex(path, "/")+1:]
	name, ok := strings.CutSuffix(base, ".json")
	if !ok {
		return 0, false
	}
	numStr, ok := strings.CutPrefix(name, "day_")
	if !ok {
		return 0, false
	}
	var n int
	if _, err := fmt.Sscanf(numStr, "%d", &n); err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
