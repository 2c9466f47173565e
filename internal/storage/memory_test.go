package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorageRoundTrip(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "a.png", strings.NewReader("bytes")))

	var buf bytes.Buffer
	require.NoError(t, s.Get(ctx, "a.png", &buf))
	assert.Equal(t, "bytes", buf.String())

	require.NoError(t, s.Delete(ctx, "a.png"))
	assert.ErrorIs(t, s.Get(ctx, "a.png", &buf), ErrNotFound)
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStorageConcurrentPuts(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	const n = 32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("blob-%d.png", i)
			_ = s.Put(ctx, name, strings.NewReader("x"))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, n, s.Len())
}
