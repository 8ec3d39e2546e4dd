package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncatedSHA256(t *testing.T) {
	h := TruncatedSHA256("hello world")

	assert.Len(t, h, IDLength)
	// Deterministic
	assert.Equal(t, h, TruncatedSHA256("hello world"))
	// Different input, different hash
	assert.NotEqual(t, h, TruncatedSHA256("hello worlds"))
}

func TestTruncatedSHA256Bytes(t *testing.T) {
	h := TruncatedSHA256Bytes([]byte("hello world"))

	assert.Len(t, h, IDLength)
	assert.Equal(t, TruncatedSHA256("hello world"), h)
}

func TestIdentityKey(t *testing.T) {
	k := IdentityKey("mate", "beginner", "10 minutes")

	assert.Len(t, k, IdentityKeyLength)
	// Deterministic
	assert.Equal(t, k, IdentityKey("mate", "beginner", "10 minutes"))
	// Order-insensitive
	assert.Equal(t, k, IdentityKey("10 minutes", "mate", "beginner"))
	// Case- and whitespace-insensitive
	assert.Equal(t, k, IdentityKey("  Mate ", "Beginner", "10 MINUTES"))
	// Different parameters produce a different key
	assert.NotEqual(t, k, IdentityKey("mate", "advanced", "10 minutes"))
}
