// Package storage holds card photos behind a small blob interface. The rest
// of the system only ever sees the opaque reference (the photo filename);
// which backend holds the bytes is a deployment choice.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when no blob exists under the given name.
var ErrNotFound = errors.New("storage: object not found")

// Storage is a photo blob store. All calls are bounded by the caller's
// context; a backend failure must surface as an error, never corrupt state.
type Storage interface {
	// Put stores the blob under name, overwriting any previous content.
	Put(ctx context.Context, name string, r io.Reader) error

	// Get streams the blob named name into w.
	Get(ctx context.Context, name string, w io.Writer) error

	// Delete removes the blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
}
