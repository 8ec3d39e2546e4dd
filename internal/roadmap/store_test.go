package roadmap

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/skillpath/internal/models"
	"github.com/asteroid-belt/skillpath/internal/store"
)

func testStore(t *testing.T) *Store {
	t.Helper()

	db, err := store.New(store.DefaultConfig(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewStore(db)
}

func mateRoadmap() *models.RoadmapDocument {
	return &models.RoadmapDocument{
		Skill: "mate",
		Sections: []models.RoadmapSection{
			{
				Title: "Basics",
				Days: []models.RoadmapDay{
					{DayNumber: 1, Title: "What is mate", Focus: "history"},
					{DayNumber: 2, Title: "Equipment", Focus: "gourd and bombilla"},
				},
			},
			{
				Title: "Practice",
				Days: []models.RoadmapDay{
					{DayNumber: 3, Title: "First brew", IsActionDay: true, Focus: "preparation"},
				},
			},
		},
	}
}

func TestGet_NotFound(t *testing.T) {
	s := testStore(t)

	_, _, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPut_CreatesVersionOne(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	meta, err := s.Put(ctx, "k1", mateRoadmap(), "u1")
	require.NoError(t, err)

	assert.Equal(t, 1, meta.Version)
	assert.Equal(t, []string{"u1"}, meta.UsedByUsers)
	require.Len(t, meta.DayVersions, 3)
	for day := 1; day <= 3; day++ {
		require.Len(t, meta.DayVersions[day], 1)
		assert.Equal(t, 1, meta.DayVersions[day][0].Version)
	}

	doc, meta2, err := s.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "mate", doc.Skill)
	assert.Equal(t, 1, meta2.Version)
}

func TestPut_CorruptMetadataQuarantined(t *testing.T) {
	db, err := store.New(store.DefaultConfig(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	s := NewStore(db)
	ctx := context.Background()

	_, err = s.Put(ctx, "k1", mateRoadmap(), "u1")
	require.NoError(t, err)

	// Clobber the metadata document with bytes that no longer parse
	metaKey := store.Key{Namespace: store.NamespaceCourses, Owner: "k1", Path: "metadata.json"}
	require.NoError(t, db.Write(ctx, metaKey, []byte("{not json")))

	// Reads recover by treating the key as absent
	_, _, err = s.Get(ctx, "k1")
	assert.ErrorIs(t, err, ErrNotFound)

	// The next write starts a fresh history at version 1
	meta, err := s.Put(ctx, "k1", mateRoadmap(), "u2")
	require.NoError(t, err)
	assert.Equal(t, 1, meta.Version)
	assert.Equal(t, []string{"u2"}, meta.UsedByUsers)

	// The corrupt bytes were moved aside, not destroyed
	paths, err := db.List(ctx, store.NamespaceCourses, "k1", "metadata.corrupt.")
	require.NoError(t, err)
	require.Len(t, paths, 1)
	data, err := db.Read(ctx, store.Key{Namespace: store.NamespaceCourses, Owner: "k1", Path: paths[0]})
	require.NoError(t, err)
	assert.Equal(t, []byte("{not json"), data)
}

func TestPut_VersionAppendOnly(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	const puts = 4
	for i := 0; i < puts; i++ {
		doc := mateRoadmap()
		doc.Sections[0].Days[0].Focus = fmt.Sprintf("history, revision %d", i)
		meta, err := s.Put(ctx, "k1", doc, "u1")
		require.NoError(t, err)
		assert.Equal(t, i+1, meta.Version, "version must increase by exactly 1 per put")
	}

	_, meta, err := s.Get(ctx, "k1")
	require.NoError(t, err)
	for day := 1; day <= 3; day++ {
		require.Len(t, meta.DayVersions[day], puts, "day %d history length must equal put count", day)
		for i, dv := range meta.DayVersions[day] {
			assert.Equal(t, i+1, dv.Version)
		}
	}
	// Latest snapshot carries the latest content
	latest, ok := meta.LatestDayVersion(1)
	require.True(t, ok)
	assert.Equal(t, "history, revision 3", latest.Content.Focus)
}

func TestPut_NoDuplicateUsers(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, err := s.Put(ctx, "k1", mateRoadmap(), "u1")
	require.NoError(t, err)
	_, err = s.Put(ctx, "k1", mateRoadmap(), "u1")
	require.NoError(t, err)
	meta, err := s.Put(ctx, "k1", mateRoadmap(), "u2")
	require.NoError(t, err)

	assert.Equal(t, []string{"u1", "u2"}, meta.UsedByUsers)
}

func TestPut_RemovedDayKeepsHistory(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, err := s.Put(ctx, "k1", mateRoadmap(), "u1")
	require.NoError(t, err)

	// New revision drops day 3 entirely
	shorter := &models.RoadmapDocument{
		Skill: "mate",
		Sections: []models.RoadmapSection{
			{Title: "Basics", Days: []models.RoadmapDay{
				{DayNumber: 1, Title: "What is mate"},
				{DayNumber: 2, Title: "Equipment"},
			}},
		},
	}
	meta, err := s.Put(ctx, "k1", shorter, "u1")
	require.NoError(t, err)

	// Day 3 history survives; day_versions keys are a superset of all days ever seen
	require.Len(t, meta.DayVersions[3], 1)
	assert.Equal(t, 1, meta.DayVersions[3][0].Version)
	require.Len(t, meta.DayVersions[1], 2)
}

func TestPut_RejectsInvalidRoadmap(t *testing.T) {
	s := testStore(t)

	broken := mateRoadmap()
	broken.Sections[1].Days[0].DayNumber = 7

	_, err := s.Put(context.Background(), "k1", broken, "u1")
	assert.Error(t, err)
}

func TestPut_SerializedPerKey(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	const writers = 8
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := s.Put(ctx, "k1", mateRoadmap(), fmt.Sprintf("u%d", n))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	_, meta, err := s.Get(ctx, "k1")
	require.NoError(t, err)
	// No version may be dropped: N concurrent puts produce exactly version N
	assert.Equal(t, writers, meta.Version)
	assert.Len(t, meta.DayVersions[1], writers)
	assert.Len(t, meta.UsedByUsers, writers)
}

func TestGetOrCreate_GeneratesOnlyOnMiss(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	calls := 0
	generate := func(ctx context.Context) (*models.RoadmapDocument, error) {
		calls++
		return mateRoadmap(), nil
	}

	doc, meta, created, err := s.GetOrCreate(ctx, "k1", "u1", Params{Skill: "mate", Experience: "beginner", Time: "10 minutes"}, generate)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, meta.Version)
	assert.Equal(t, "beginner", meta.Experience)
	assert.Equal(t, 3, doc.TotalDays())

	// Second user hits the cache: no generation, but the user is registered
	_, meta, created, err = s.GetOrCreate(ctx, "k1", "u2", Params{}, generate)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 1, calls, "generator must not run on cache hit")
	assert.Equal(t, []string{"u1", "u2"}, meta.UsedByUsers)
	assert.Equal(t, 1, meta.Version, "cache hit must not bump the version")
}

func TestGetOrCreate_GenerationFailureLeavesNothing(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, _, _, err := s.GetOrCreate(ctx, "k1", "u1", Params{}, func(ctx context.Context) (*models.RoadmapDocument, error) {
		return nil, errors.New("provider timeout")
	})
	require.Error(t, err)

	// No partial roadmap was persisted
	_, _, err = s.Get(ctx, "k1")
	assert.ErrorIs(t, err, ErrNotFound)
}
