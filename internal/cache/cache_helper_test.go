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

type cachedProfile struct {
	StudentID uint `json:"student_id"`
	Total     int  `json:"total"`
}

func newTestCache(t *testing.T) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCacheHelper(client, "profile:"), mr
}

func TestCacheHelper_SetAndGet(t *testing.T) {
	helper, _ := newTestCache(t)
	ctx := context.Background()

	stored := cachedProfile{StudentID: 1, Total: 390}
	require.NoError(t, helper.Set(ctx, "combined:1", stored, time.Minute))

	var loaded cachedProfile
	require.NoError(t, helper.Get(ctx, "combined:1", &loaded))
	assert.Equal(t, stored, loaded)
}

func TestCacheHelper_GetMissingKey(t *testing.T) {
	helper, _ := newTestCache(t)

	var loaded cachedProfile
	err := helper.Get(context.Background(), "combined:404", &loaded)
	assert.ErrorIs(t, err, ErrCacheNotFound)
}

func TestCacheHelper_Delete(t *testing.T) {
	helper, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, helper.Set(ctx, "combined:1", cachedProfile{StudentID: 1}, time.Minute))
	require.NoError(t, helper.Delete(ctx, "combined:1"))

	var loaded cachedProfile
	assert.ErrorIs(t, helper.Get(ctx, "combined:1", &loaded), ErrCacheNotFound)
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	helper, _ := newTestCache(t)
	ctx := context.Background()

	for _, key := range []string{"combined:1", "combined:2", "student:1"} {
		require.NoError(t, helper.Set(ctx, key, cachedProfile{}, time.Minute))
	}

	require.NoError(t, helper.InvalidatePattern(ctx, "combined:*"))

	var loaded cachedProfile
	assert.ErrorIs(t, helper.Get(ctx, "combined:1", &loaded), ErrCacheNotFound)
	assert.ErrorIs(t, helper.Get(ctx, "combined:2", &loaded), ErrCacheNotFound)
	assert.NoError(t, helper.Get(ctx, "student:1", &loaded), "other prefixes survive")
}

func TestCacheHelper_CacheOrExecute(t *testing.T) {
	helper, _ := newTestCache(t)
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return cachedProfile{StudentID: 1, Total: 390}, nil
	}

	var first cachedProfile
	require.NoError(t, helper.CacheOrExecute(ctx, "combined:1", &first, time.Minute, fetch))
	assert.Equal(t, 390, first.Total)
	assert.Equal(t, 1, calls)

	// The async set races the second read; wait for the key to land
	assert.Eventually(t, func() bool {
		ok, err := helper.Exists(ctx, "combined:1")
		return err == nil && ok
	}, time.Second, 10*time.Millisecond)

	var second cachedProfile
	require.NoError(t, helper.CacheOrExecute(ctx, "combined:1", &second, time.Minute, fetch))
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "cache hit must not re-run the fetch")
}

func TestCacheHelper_NilClientDegradesGracefully(t *testing.T) {
	helper := NewCacheHelper(nil, "")
	ctx := context.Background()

	assert.NoError(t, helper.Set(ctx, "k", cachedProfile{}, time.Minute))
	assert.NoError(t, helper.Delete(ctx, "k"))
	assert.NoError(t, helper.InvalidatePattern(ctx, "*"))

	var loaded cachedProfile
	assert.ErrorIs(t, helper.Get(ctx, "k", &loaded), ErrCacheNotAvailable)

	// The fallback still runs without a cache behind it
	calls := 0
	require.NoError(t, helper.CacheOrExecute(ctx, "k", &loaded, time.Minute, func() (interface{}, error) {
		calls++
		return cachedProfile{StudentID: 7}, nil
	}))
	assert.Equal(t, uint(7), loaded.StudentID)
	assert.Equal(t, 1, calls)
}

func TestCacheManager_NilClient(t *testing.T) {
	manager := NewCacheManager(nil)

	assert.ErrorIs(t, manager.HealthCheck(context.Background()), ErrCacheNotAvailable)
	assert.NoError(t, manager.ClearAll(context.Background()))
}

func TestCacheManager_HealthCheck(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	manager := NewCacheManager(client)
	assert.NoError(t, manager.HealthCheck(context.Background()))
}
