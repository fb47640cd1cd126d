package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUTokenCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewLRUTokenCache(2)
	require.NoError(t, err)

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	ok, err := c.Contains(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok, "unknown token")

	require.NoError(t, c.Add(ctx, "a", now.Add(time.Hour)))
	ok, _ = c.Contains(ctx, "a")
	assert.True(t, ok, "revoked token")

	// already expired tokens are not worth remembering
	require.NoError(t, c.Add(ctx, "old", now.Add(-time.Second)))
	ok, _ = c.Contains(ctx, "old")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	// entries disappear once their token expires
	now = now.Add(2 * time.Hour)
	ok, _ = c.Contains(ctx, "a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestLRUTokenCache_Evicts(t *testing.T) {
	ctx := context.Background()
	c, err := NewLRUTokenCache(2)
	require.NoError(t, err)

	exp := time.Now().Add(time.Hour)
	for _, tok := range []string{"a", "b", "c"} {
		require.NoError(t, c.Add(ctx, tok, exp))
	}

	ok, _ := c.Contains(ctx, "a")
	assert.False(t, ok, "oldest entry should be evicted")
	ok, _ = c.Contains(ctx, "c")
	assert.True(t, ok)
}

func TestNewLRUTokenCache_BadSize(t *testing.T) {
	_, err := NewLRUTokenCache(0)
	assert.Error(t, err)
}
