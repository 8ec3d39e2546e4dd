// Package hash provides shared hashing utilities for generating truncated IDs.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// IDLength is the number of hex characters used for truncated hash IDs.
// 16 hex chars = 8 bytes = 64 bits of entropy (sufficient for collision resistance).
const IDLength = 16

// IdentityKeyLength is the number of hex characters used for course identity keys.
// Identity keys appear in storage paths and CLI output, so they stay short.
const IdentityKeyLength = 12

// TruncatedSHA256 returns a truncated SHA256 hash of the input string.
// The result is a 16-character hex string.
func TruncatedSHA256(data string) string {
	h := sha256.Sum256([]byte(data))
	return hex.EncodeToString(h[:])[:IDLength]
}

// TruncatedSHA256Bytes returns a truncated SHA256 hash of the input bytes.
// The result is a 16-character hex string.
func TruncatedSHA256Bytes(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])[:IDLength]
}

// IdentityKey returns a deterministic 12-character hex key for a set of
// course parameters. Parts are lowercased, trimmed, and sorted before
// hashing so the key is reproducible regardless of argument order.
func IdentityKey(parts ...string) string {
	normalized := make([]string, 0, len(parts))
	for _, p := range parts {
		normalized = append(normalized, strings.ToLower(strings.TrimSpace(p)))
	}
	sort.Strings(normalized)

	h := sha256.Sum256([]byte(strings.Join(normalized, "|")))
	return hex.EncodeToString(h[:])[:IdentityKeyLength]
}
