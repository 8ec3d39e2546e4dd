// Package roadmap persists the shared, versioned curriculum documents.
// One roadmap exists per identity key and is shared by every user whose
// course request resolved to that key.
package roadmap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/asteroid-belt/skillpath/internal/log"
	"github.com/asteroid-belt/skillpath/internal/models"
	"github.com/asteroid-belt/skillpath/internal/store"
)

// ErrNotFound is returned when no roadmap exists for an identity key.
var ErrNotFound = store.ErrNotFound

// Params are the defining parameters recorded on roadmap metadata.
type Params struct {
	Skill      string
	Experience string
	Time       string
	Style      string
}

// Store reads and writes shared roadmaps. Read-modify-write on metadata is
// serialized per identity key: two concurrent Puts for the same key can
// never both observe version N and both write N+1.
type Store struct {
	docs store.Store

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewStore creates a roadmap store on top of the document store.
func NewStore(docs store.Store) *Store {
	return &Store{
		docs:  docs,
		locks: make(map[string]*sync.Mutex),
	}
}

// keyLock returns the mutex serializing writes for one identity key.
func (s *Store) keyLock(identityKey string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[identityKey]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[identityKey] = lock
	}
	return lock
}

func roadmapKey(identityKey string) store.Key {
	return store.Key{Namespace: store.NamespaceCourses, Owner: identityKey, Path: "roadmap.json"}
}

func metadataKey(identityKey string) store.Key {
	return store.Key{Namespace: store.NamespaceCourses, Owner: identityKey, Path: "metadata.json"}
}

// Get returns the shared roadmap and its metadata for an identity key.
func (s *Store) Get(ctx context.Context, identityKey string) (*models.RoadmapDocument, *models.RoadmapMetadata, error) {
	docData, err := s.docs.Read(ctx, roadmapKey(identityKey))
	if err != nil {
		return nil, nil, fmt.Errorf("read roadmap %s: %w", identityKey, err)
	}

	var doc models.RoadmapDocument
	if err := json.Unmarshal(docData, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse roadmap %s: %w", identityKey, err)
	}

	meta, err := s.readMetadata(ctx, identityKey)
	if err != nil {
		return nil, nil, err
	}

	return &doc, meta, nil
}

// readMetadata loads and parses metadata for an identity key. A metadata
// document that no longer parses is quarantined under a timestamped path
// and the key reads as absent, so the roadmap can be rebuilt instead of
// every Get and Put for it failing forever.
func (s *Store) readMetadata(ctx context.Context, identityKey string) (*models.RoadmapMetadata, error) {
	data, err := s.docs.Read(ctx, metadataKey(identityKey))
	if err != nil {
		return nil, fmt.Errorf("read roadmap metadata %s: %w", identityKey, err)
	}

	var meta models.RoadmapMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		s.quarantineMetadata(ctx, identityKey, data, err)
		return nil, fmt.Errorf("roadmap metadata %s: %w", identityKey, store.ErrNotFound)
	}
	return &meta, nil
}

// quarantineMetadata rewrites an unparseable metadata document under a
// timestamped path and removes the original. Best-effort: when the rewrite
// fails the original stays in place and is re-quarantined on the next read.
func (s *Store) quarantineMetadata(ctx context.Context, identityKey string, data []byte, parseErr error) {
	quarantinePath := fmt.Sprintf("metadata.corrupt.%s.json", time.Now().UTC().Format("20060102T150405"))
	log.Errorf("roadmap metadata for %s corrupt, quarantining to %s: %v", identityKey, quarantinePath, parseErr)

	aside := store.Key{Namespace: store.NamespaceCourses, Owner: identityKey, Path: quarantinePath}
	if err := s.docs.Write(ctx, aside, data); err != nil {
		log.Errorf("quarantine roadmap metadata %s: %v", identityKey, err)
		return
	}
	if err := s.docs.Delete(ctx, metadataKey(identityKey)); err != nil {
		log.Errorf("remove corrupt roadmap metadata %s: %v", identityKey, err)
	}
}

// Put registers a new revision of the shared roadmap.
//
// First Put for a key creates version 1, seeding one DayVersion per day.
// Subsequent Puts increment the version, idempotently add the requesting
// user, and append a DayVersion snapshot for every day of the new document.
// Day histories are never truncated, so users enrolled against older
// versions can still recover exactly what they saw.
func (s *Store) Put(ctx context.Context, identityKey string, doc *models.RoadmapDocument, userID string) (*models.RoadmapMetadata, error) {
	return s.PutWithParams(ctx, identityKey, doc, userID, Params{Skill: doc.Skill})
}

// PutWithParams is Put with explicit defining parameters, recorded only on
// metadata creation.
func (s *Store) PutWithParams(ctx context.Context, identityKey string, doc *models.RoadmapDocument, userID string, params Params) (*models.RoadmapMetadata, error) {
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid roadmap: %w", err)
	}

	lock := s.keyLock(identityKey)
	lock.Lock()
	defer lock.Unlock()

	return s.putLocked(ctx, identityKey, doc, userID, params)
}

func (s *Store) putLocked(ctx context.Context, identityKey string, doc *models.RoadmapDocument, userID string, params Params) (*models.RoadmapMetadata, error) {
	now := time.Now().UTC()

	meta, err := s.readMetadata(ctx, identityKey)
	switch {
	case err == nil:
		meta.Version++
		if !meta.HasUser(userID) {
			meta.UsedByUsers = append(meta.UsedByUsers, userID)
		}
		meta.UpdatedAt = now
	case isNotFound(err):
		meta = &models.RoadmapMetadata{
			IdentityKey: identityKey,
			Skill:       params.Skill,
			Experience:  params.Experience,
			Time:        params.Time,
			Style:       params.Style,
			Version:     1,
			UsedByUsers: []string{userID},
			DayVersions: make(map[int][]models.DayVersion),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	default:
		return nil, err
	}

	// Append one snapshot per day of the new document. Days absent from the
	// new document keep their existing history untouched.
	for _, section := range doc.Sections {
		for _, day := range section.Days {
			meta.DayVersions[day.DayNumber] = append(meta.DayVersions[day.DayNumber], models.DayVersion{
				Content:   day,
				Version:   meta.Version,
				CreatedAt: now,
			})
		}
	}

	docData, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode roadmap: %w", err)
	}
	metaData, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encode roadmap metadata: %w", err)
	}

	if err := s.docs.Write(ctx, roadmapKey(identityKey), docData); err != nil {
		return nil, err
	}
	if err := s.docs.Write(ctx, metadataKey(identityKey), metaData); err != nil {
		return nil, err
	}

	log.DebugLog("roadmap", "stored %s version %d (%d users, %d days)",
		identityKey, meta.Version, len(meta.UsedByUsers), doc.TotalDays())

	return meta, nil
}

// GetOrCreate returns the existing roadmap for the key, or invokes generate
// to produce one and registers it as version 1. When the roadmap already
// exists, the requesting user is still registered on the metadata. The
// boolean result reports whether generation ran.
func (s *Store) GetOrCreate(ctx context.Context, identityKey, userID string, params Params, generate func(context.Context) (*models.RoadmapDocument, error)) (*models.RoadmapDocument, *models.RoadmapMetadata, bool, error) {
	lock := s.keyLock(identityKey)
	lock.Lock()
	defer lock.Unlock()

	doc, meta, err := s.Get(ctx, identityKey)
	if err == nil {
		if !meta.HasUser(userID) {
			meta.UsedByUsers = append(meta.UsedByUsers, userID)
			meta.UpdatedAt = time.Now().UTC()
			metaData, encErr := json.Marshal(meta)
			if encErr != nil {
				return nil, nil, false, fmt.Errorf("encode roadmap metadata: %w", encErr)
			}
			if writeErr := s.docs.Write(ctx, metadataKey(identityKey), metaData); writeErr != nil {
				return nil, nil, false, writeErr
			}
		}
		return doc, meta, false, nil
	}
	if !isNotFound(err) {
		return nil, nil, false, err
	}

	doc, err = generate(ctx)
	if err != nil {
		return nil, nil, false, fmt.Errorf("generate roadmap: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, nil, false, fmt.Errorf("generated roadmap invalid: %w", err)
	}

	meta, err = s.putLocked(ctx, identityKey, doc, userID, params)
	if err != nil {
		return nil, nil, false, err
	}
	return doc, meta, true, nil
}

// isNotFound unwraps store.ErrNotFound from wrapped errors.
func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
