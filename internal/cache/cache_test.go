package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Slug string `json:"slug"`
	N    int    `json:"n"`
}

func TestMemory_SetGet(t *testing.T) {
	m := NewMemory(0)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "category:eyeglasses", entry{Slug: "eyeglasses", N: 3}, time.Minute))

	var got entry
	assert.True(t, m.Get(ctx, "category:eyeglasses", &got))
	assert.Equal(t, entry{Slug: "eyeglasses", N: 3}, got)

	assert.False(t, m.Get(ctx, "category:sunglasses", &got))
}

func TestMemory_Expiry(t *testing.T) {
	m := NewMemory(0)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", entry{N: 1}, time.Second))

	var got entry
	assert.True(t, m.Get(ctx, "k", &got))

	now = now.Add(2 * time.Second)
	assert.False(t, m.Get(ctx, "k", &got))

	m.sweep()
	assert.Equal(t, 0, m.Len())
}

func TestMemory_NonPositiveTTLNeverExpires(t *testing.T) {
	m := NewMemory(0)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "zero", entry{N: 1}, 0))
	require.NoError(t, m.Set(ctx, "negative", entry{N: 2}, -time.Second))

	now = now.Add(24 * time.Hour)
	m.sweep()

	var got entry
	assert.True(t, m.Get(ctx, "zero", &got))
	assert.Equal(t, 1, got.N)
	assert.True(t, m.Get(ctx, "negative", &got))
	assert.Equal(t, 2, got.N)
}

func TestMemory_DeleteByPrefix(t *testing.T) {
	m := NewMemory(0)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "category:a", 1, time.Minute))
	require.NoError(t, m.Set(ctx, "category:b", 2, time.Minute))
	require.NoError(t, m.Set(ctx, "filters:a", 3, time.Minute))

	require.NoError(t, m.DeleteByPrefix(ctx, "category:"))
	assert.Equal(t, 1, m.Len())

	var n int
	assert.True(t, m.Get(ctx, "filters:a", &n))
	assert.Equal(t, 3, n)
}

func TestMemory_Close(t *testing.T) {
	m := NewMemory(time.Millisecond)
	m.Close()
	m.Close()
}
