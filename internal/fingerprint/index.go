// Package fingerprint persists course descriptor embeddings and answers
// nearest-neighbor queries for semantic deduplication of curricula.
package fingerprint

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/philippgille/chromem-go"

	"github.com/asteroid-belt/skillpath/internal/hash"
	"github.com/asteroid-belt/skillpath/internal/log"
	"github.com/asteroid-belt/skillpath/internal/models"
)

// collectionName holds one document per distinct accepted course descriptor.
const collectionName = "skills"

// Match is a nearest-neighbor result.
type Match struct {
	Record     models.FingerprintRecord
	Similarity float32
}

// Index stores fingerprint records in a chromem-go persistent collection.
// The whole collection is held in memory for the cosine scan, which is fine:
// there is one vector per distinct curriculum topic, not per user.
type Index struct {
	db         *chromem.DB
	collection *chromem.Collection
	dataDir    string
}

// New opens (or creates) the fingerprint index at dataDir.
// A corrupt store is quarantined under a timestamped name and the index
// reopens empty; the fingerprint cache is best-effort, never fatal.
func New(dataDir string) (*Index, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create fingerprint dir: %w", err)
	}

	db, err := chromem.NewPersistentDB(dataDir, false)
	if err != nil {
		quarantined := fmt.Sprintf("%s.corrupt.%s", dataDir, time.Now().UTC().Format("20060102T150405"))
		log.Errorf("fingerprint store corrupt, quarantining to %s: %v", quarantined, err)

		if renameErr := os.Rename(dataDir, quarantined); renameErr != nil {
			return nil, fmt.Errorf("quarantine fingerprint store: %w", renameErr)
		}
		if mkErr := os.MkdirAll(dataDir, 0755); mkErr != nil {
			return nil, fmt.Errorf("recreate fingerprint dir: %w", mkErr)
		}

		db, err = chromem.NewPersistentDB(dataDir, false)
		if err != nil {
			return nil, fmt.Errorf("reopen fingerprint store: %w", err)
		}
	}

	// Vectors are always supplied by the caller; queries go through
	// QueryEmbedding, so the collection never embeds anything itself.
	noEmbed := func(ctx context.Context, text string) ([]float32, error) {
		return nil, fmt.Errorf("fingerprint index does not embed text")
	}

	collection, err := db.GetOrCreateCollection(collectionName, nil, noEmbed)
	if err != nil {
		return nil, fmt.Errorf("open fingerprint collection: %w", err)
	}

	return &Index{
		db:         db,
		collection: collection,
		dataDir:    dataDir,
	}, nil
}

// Add appends a fingerprint record. Records are append-only; duplicate
// near-simultaneous appends of the same descriptor overwrite each other
// harmlessly since the document ID is derived from the descriptor.
func (ix *Index) Add(ctx context.Context, rec models.FingerprintRecord) error {
	if len(rec.Vector) == 0 {
		return fmt.Errorf("fingerprint record has no vector")
	}

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	doc := chromem.Document{
		ID:        hash.TruncatedSHA256(rec.Descriptor),
		Content:   rec.Descriptor,
		Embedding: rec.Vector,
		Metadata: map[string]string{
			"identity_key": rec.IdentityKey,
			"created_at":   createdAt.Format(time.RFC3339),
		},
	}

	if err := ix.collection.AddDocument(ctx, doc); err != nil {
		return fmt.Errorf("add fingerprint: %w", err)
	}
	return nil
}

// Nearest returns the stored record most similar to vector by cosine
// similarity, or nil when the index is empty.
func (ix *Index) Nearest(ctx context.Context, vector []float32) (*Match, error) {
	if ix.collection.Count() == 0 {
		return nil, nil
	}

	results, err := ix.collection.QueryEmbedding(ctx, vector, 1, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query fingerprints: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	r := results[0]
	createdAt, _ := time.Parse(time.RFC3339, r.Metadata["created_at"])

	return &Match{
		Record: models.FingerprintRecord{
			Descriptor:  r.Content,
			Vector:      r.Embedding,
			IdentityKey: r.Metadata["identity_key"],
			CreatedAt:   createdAt,
		},
		Similarity: r.Similarity,
	}, nil
}

// Count returns the number of stored fingerprints.
func (ix *Index) Count() int {
	return ix.collection.Count()
}
