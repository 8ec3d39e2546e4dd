package store

import (
	"context"

	"github.com/google/uuid"
)

// Local state documents live under a reserved namespace so they never
// collide with course or user data.
const (
	namespaceMeta  = "meta"
	metaOwner      = "local"
	trackingIDPath = "tracking_id"
	userIDPath     = "user_id"
)

// GetOrCreateTrackingID returns the persistent anonymous telemetry ID,
// creating one if it doesn't exist. On any error it falls back to a
// per-session ID.
func (d *DB) GetOrCreateTrackingID() string {
	return d.getOrCreateID(trackingIDPath)
}

// GetOrCreateUserID returns the stable local user ID that owns enrollments
// on this machine, creating one on first use.
func (d *DB) GetOrCreateUserID() string {
	return d.getOrCreateID(userIDPath)
}

func (d *DB) getOrCreateID(path string) string {
	ctx := context.Background()
	key := Key{Namespace: namespaceMeta, Owner: metaOwner, Path: path}

	if data, err := d.Read(ctx, key); err == nil && len(data) > 0 {
		return string(data)
	}

	id := uuid.New().String()
	// Even if the save fails, the generated ID serves this session
	_ = d.Write(ctx, key, []byte(id))
	return id
}
