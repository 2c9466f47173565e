package storage

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSystemStorageRoundTrip(t *testing.T) {
	s, err := NewFileSystemStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "card-1.png", strings.NewReader("image bytes")))

	var buf bytes.Buffer
	require.NoError(t, s.Get(ctx, "card-1.png", &buf))
	assert.Equal(t, "image bytes", buf.String())
}

func TestFileSystemStorageOverwrite(t *testing.T) {
	s, err := NewFileSystemStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "a.png", strings.NewReader("old")))
	require.NoError(t, s.Put(ctx, "a.png", strings.NewReader("new")))

	var buf bytes.Buffer
	require.NoError(t, s.Get(ctx, "a.png", &buf))
	assert.Equal(t, "new", buf.String())
}

func TestFileSystemStorageMissing(t *testing.T) {
	s, err := NewFileSystemStorage(t.TempDir())
	require.NoError(t, err)

	var buf bytes.Buffer
	err = s.Get(context.Background(), "nope.png", &buf)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileSystemStorageDelete(t *testing.T) {
	s, err := NewFileSystemStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "a.png", strings.NewReader("x")))
	require.NoError(t, s.Delete(ctx, "a.png"))

	var buf bytes.Buffer
	assert.ErrorIs(t, s.Get(ctx, "a.png", &buf), ErrNotFound)

	// Deleting a missing blob is not an error.
	assert.NoError(t, s.Delete(ctx, "a.png"))
}

func TestFileSystemStorageStripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileSystemStorage(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "../escape.png", strings.NewReader("x")))

	// The blob lands inside the root under its base name.
	var buf bytes.Buffer
	require.NoError(t, s.Get(ctx, "escape.png", &buf))
	assert.Equal(t, "x", buf.String())
}

func TestFileSystemStorageCancelledContext(t *testing.T) {
	s, err := NewFileSystemStorage(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, s.Put(ctx, "a.png", strings.NewReader("x")))
}
