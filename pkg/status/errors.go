package status

import "errors"

// ErrSnapshotNotFound indicates no live snapshot exists for an instance.
var ErrSnapshotNotFound = errors.New("status snapshot not found")
