package models

import "time"

// FingerprintRecord ties an accepted course descriptor and its embedding to
// the identity key it resolved to. Records are append-only: one per distinct
// accepted descriptor, never mutated.
type FingerprintRecord struct {
	Descriptor  string    `json:"descriptor"`
	Vector      []float32 `json:"vector"`
	IdentityKey string    `json:"identity_key"`
	CreatedAt   time.Time `json:"created_at"`
}
