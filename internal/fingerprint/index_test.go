package fingerprint

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/skillpath/internal/models"
)

func testIndex(t *testing.T) *Index {
	t.Helper()

	ix, err := New(filepath.Join(t.TempDir(), "vectors"))
	require.NoError(t, err)
	return ix
}

func TestNearest_EmptyIndex(t *testing.T) {
	ix := testIndex(t)

	match, err := ix.Nearest(context.Background(), []float32{1, 0, 0})
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestAddAndNearest(t *testing.T) {
	ix := testIndex(t)
	ctx := context.Background()

	require.NoError(t, ix.Add(ctx, models.FingerprintRecord{
		Descriptor:  "mate beginner 10 minutes",
		Vector:      []float32{1, 0, 0},
		IdentityKey: "k1",
		CreatedAt:   time.Now().UTC(),
	}))
	require.NoError(t, ix.Add(ctx, models.FingerprintRecord{
		Descriptor:  "advanced calculus advanced 30+ minutes",
		Vector:      []float32{0, 1, 0},
		IdentityKey: "k2",
	}))

	assert.Equal(t, 2, ix.Count())

	// Query close to the first vector
	match, err := ix.Nearest(ctx, []float32{0.95, 0.05, 0})
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, "k1", match.Record.IdentityKey)
	assert.Equal(t, "mate beginner 10 minutes", match.Record.Descriptor)
	assert.Greater(t, match.Similarity, float32(0.9))
}

func TestAdd_RejectsEmptyVector(t *testing.T) {
	ix := testIndex(t)

	err := ix.Add(context.Background(), models.FingerprintRecord{
		Descriptor:  "mate",
		IdentityKey: "k1",
	})
	assert.Error(t, err)
}

func TestAdd_SameDescriptorDoesNotDuplicate(t *testing.T) {
	ix := testIndex(t)
	ctx := context.Background()

	rec := models.FingerprintRecord{
		Descriptor:  "mate beginner 10 minutes",
		Vector:      []float32{1, 0, 0},
		IdentityKey: "k1",
	}
	require.NoError(t, ix.Add(ctx, rec))
	require.NoError(t, ix.Add(ctx, rec))

	assert.Equal(t, 1, ix.Count())
}

func TestNew_QuarantinesCorruptStore(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "vectors")

	ix, err := New(dataDir)
	require.NoError(t, err)
	require.NoError(t, ix.Add(context.Background(), models.FingerprintRecord{
		Descriptor:  "mate beginner 10 minutes",
		Vector:      []float32{1, 0, 0},
		IdentityKey: "k1",
	}))

	// Corrupt every persisted file
	err = filepath.Walk(dataDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		return os.WriteFile(path, []byte("not a valid record"), 0644)
	})
	require.NoError(t, err)

	// Reopening must quarantine and continue empty rather than fail
	ix, err = New(dataDir)
	require.NoError(t, err)
	assert.Equal(t, 0, ix.Count())

	// The corrupt store was preserved under a timestamped sibling
	entries, err := os.ReadDir(filepath.Dir(dataDir))
	require.NoError(t, err)
	var quarantined bool
	for _, e := range entries {
		if e.Name() != "vectors" {
			quarantined = true
		}
	}
	assert.True(t, quarantined, "expected a quarantined copy of the corrupt store")
}
