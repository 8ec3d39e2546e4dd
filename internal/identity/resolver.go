// Package identity resolves user course requests to a deduplication key.
// Semantically equivalent requests ("mate", "mate uruguayo") share one
// identity key and therefore one generated roadmap.
package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/asteroid-belt/skillpath/internal/embedding"
	"github.com/asteroid-belt/skillpath/internal/fingerprint"
	"github.com/asteroid-belt/skillpath/internal/hash"
	"github.com/asteroid-belt/skillpath/internal/log"
	"github.com/asteroid-belt/skillpath/internal/models"
)

// Resolution is the outcome of resolving course parameters.
type Resolution struct {
	IdentityKey string
	// Reused is true when an existing fingerprint matched above threshold.
	Reused bool
	// Similarity of the accepted match; zero when not reused.
	Similarity float32
	// Descriptor is the canonical text that was (or would have been) embedded.
	Descriptor string
}

// Resolver computes identity keys, preferring embedding-based near-duplicate
// matches and falling back to deterministic hashing when embeddings are
// unavailable. Embedding-based sharing is an optimization, not a correctness
// requirement: every failure path degrades to exact-parameter deduplication.
type Resolver struct {
	embedder  embedding.Provider
	index     *fingerprint.Index
	threshold float32
}

// NewResolver creates a Resolver. embedder may be nil, in which case every
// resolution takes the hash-only path.
func NewResolver(embedder embedding.Provider, index *fingerprint.Index, threshold float32) *Resolver {
	return &Resolver{
		embedder:  embedder,
		index:     index,
		threshold: threshold,
	}
}

// Resolve returns the identity key for the given course parameters.
// The learning style is accepted for API completeness but excluded from the
// embedded descriptor, so requests differing only in presentation style
// share a roadmap skeleton.
func (r *Resolver) Resolve(ctx context.Context, skill, experience, timeAvailable, style string) (*Resolution, error) {
	_ = style

	descriptor := Descriptor(skill, experience, timeAvailable)

	if r.embedder == nil || r.index == nil {
		return r.hashResolution(skill, experience, timeAvailable, descriptor), nil
	}

	vector, err := r.embedder.Embed(ctx, descriptor)
	if err != nil {
		// Degrade silently to exact-match deduplication
		log.DebugLog("identity", "embedding failed, falling back to hash identity: %v", err)
		return r.hashResolution(skill, experience, timeAvailable, descriptor), nil
	}

	match, err := r.index.Nearest(ctx, vector)
	if err != nil {
		log.DebugLog("identity", "fingerprint query failed, falling back to hash identity: %v", err)
		return r.hashResolution(skill, experience, timeAvailable, descriptor), nil
	}

	if match != nil && match.Similarity >= r.threshold {
		log.DebugLog("identity", "reusing identity %s for %q (similarity %.3f against %q)",
			match.Record.IdentityKey, descriptor, match.Similarity, match.Record.Descriptor)
		return &Resolution{
			IdentityKey: match.Record.IdentityKey,
			Reused:      true,
			Similarity:  match.Similarity,
			Descriptor:  descriptor,
		}, nil
	}

	res := r.hashResolution(skill, experience, timeAvailable, descriptor)

	// Best-effort append; a failed append only costs future dedup accuracy
	if err := r.index.Add(ctx, models.FingerprintRecord{
		Descriptor:  descriptor,
		Vector:      vector,
		IdentityKey: res.IdentityKey,
	}); err != nil {
		log.DebugLog("identity", "fingerprint append failed: %v", err)
	}

	return res, nil
}

// hashResolution computes the deterministic identity key. The hash covers
// the normalized parameter tuple, never the embedding, so the key is
// reproducible even when the embedding provider is down or returns slightly
// different vectors on retry.
func (r *Resolver) hashResolution(skill, experience, timeAvailable, descriptor string) *Resolution {
	return &Resolution{
		IdentityKey: hash.IdentityKey(NormalizeSkill(skill), experience, timeAvailable),
		Descriptor:  descriptor,
	}
}

// Descriptor builds the canonical text embedded for a course request.
func Descriptor(skill, experience, timeAvailable string) string {
	return fmt.Sprintf("%s %s %s",
		NormalizeSkill(skill),
		strings.ToLower(strings.TrimSpace(experience)),
		strings.ToLower(strings.TrimSpace(timeAvailable)))
}

// skillSynonyms maps literal synonym spellings to a canonical form.
// Embedding similarity alone is not guaranteed to clear the threshold for
// short strings, so known regional variants are folded before embedding.
var skillSynonyms = map[string]string{
	"mate uruguayo":   "mate",
	"mate argentino":  "mate",
	"preparar mate":   "mate",
	"cebar mate":      "mate",
	"yerba mate":      "mate",
	"football":        "soccer",
	"futbol":          "soccer",
	"fútbol":          "soccer",
	"cooking":         "home cooking",
	"cocina":          "home cooking",
	"guitarra":        "guitar",
	"acoustic guitar": "guitar",
}

// NormalizeSkill lowercases, trims, and folds known synonyms.
func NormalizeSkill(skill string) string {
	normalized := strings.ToLower(strings.TrimSpace(skill))
	if canonical, ok := skillSynonyms[normalized]; ok {
		return canonical
	}
	return normalized
}
