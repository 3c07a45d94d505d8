package lock

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireIsExclusive(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "qps.lock")

	first, err := Acquire(context.Background(), path, 0)
	require.NoError(t, err)
	assert.Equal(t, path, first.Path())

	_, err = Acquire(context.Background(), path, 0)
	require.ErrorIs(t, err, ErrAlreadyRunning)

	_, err = Acquire(context.Background(), path, 250*time.Millisecond)
	require.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, first.Release())

	second, err := Acquire(context.Background(), path, 0)
	require.NoError(t, err)
	require.NoError(t, second.Release())
}
