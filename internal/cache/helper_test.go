package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() {
		_ = Close()
	})
	return mr
}

type cachedPost struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func TestGetSetJSON_RoundTrip(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostKey(7), cachedPost{ID: 7, Title: "Smash timing"}, PostTTL))

	var got cachedPost
	found, err := GetJSON(ctx, PostKey(7), &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, cachedPost{ID: 7, Title: "Smash timing"}, got)
}

func TestGetJSON_Miss(t *testing.T) {
	setupMiniredis(t)

	var got cachedPost
	found, err := GetJSON(context.Background(), PostKey(404), &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAside_FetchesOnceThenServesFromCache(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedPost) func() error {
		return func() error {
			fetches++
			*dest = cachedPost{ID: 1, Title: "Footwork drills"}
			return nil
		}
	}

	var first cachedPost
	require.NoError(t, Aside(ctx, PostKey(1), &first, PostTTL, fetch(&first)))
	assert.Equal(t, 1, fetches)

	var second cachedPost
	require.NoError(t, Aside(ctx, PostKey(1), &second, PostTTL, fetch(&second)))
	assert.Equal(t, 1, fetches, "second read should hit the cache")
	assert.Equal(t, first, second)
}

func TestAside_InvalidateForcesRefetch(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	load := func(dest *cachedPost) error {
		fetches++
		*dest = cachedPost{ID: 2, Title: "Net play"}
		return nil
	}

	var got cachedPost
	require.NoError(t, Aside(ctx, PostKey(2), &got, PostTTL, func() error { return load(&got) }))
	InvalidatePost(ctx, 2)
	require.NoError(t, Aside(ctx, PostKey(2), &got, PostTTL, func() error { return load(&got) }))
	assert.Equal(t, 2, fetches)
}

func TestHelpers_NoClientIsNoOp(t *testing.T) {
	SetClient(nil)

	ctx := context.Background()
	var got cachedPost
	found, err := GetJSON(ctx, PostKey(1), &got)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, SetJSON(ctx, PostKey(1), cachedPost{ID: 1}, time.Minute))

	// Aside degrades to a plain fetch.
	require.NoError(t, Aside(ctx, PostKey(1), &got, time.Minute, func() error {
		got = cachedPost{ID: 1, Title: "Defensive clears"}
		return nil
	}))
	assert.Equal(t, "Defensive clears", got.Title)
}
