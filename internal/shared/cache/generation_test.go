package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hris-dashboard/internal/shared/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

func TestSet_WritesWhenGenerationUnchanged(t *testing.T) {
	ctx := context.Background()
	mr, rdb := setupRedis(t)

	gen, err := cache.Generation(ctx, rdb, "k")
	require.NoError(t, err)
	assert.Equal(t, "0", gen)

	ok, err := cache.Set(ctx, rdb, "k", gen, "v1", time.Minute)

	require.NoError(t, err)
	assert.True(t, ok)
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v1", got)
	assert.Equal(t, time.Minute, mr.TTL("k"))
}

func TestSet_SkipsAfterInvalidate(t *testing.T) {
	ctx := context.Background()
	mr, rdb := setupRedis(t)

	gen, err := cache.Generation(ctx, rdb, "k")
	require.NoError(t, err)

	// a writer lands between the read and the cache fill
	require.NoError(t, cache.Invalidate(ctx, rdb, "k"))

	ok, err := cache.Set(ctx, rdb, "k", gen, "stale", time.Minute)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, mr.Exists("k"))

	gen, err = cache.Generation(ctx, rdb, "k")
	require.NoError(t, err)
	assert.Equal(t, "1", gen)
	ok, err = cache.Set(ctx, rdb, "k", gen, "fresh", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInvalidate_DropsValueWrittenBeforeBump(t *testing.T) {
	ctx := context.Background()
	mr, rdb := setupRedis(t)

	gen, err := cache.Generation(ctx, rdb, "k")
	require.NoError(t, err)
	ok, err := cache.Set(ctx, rdb, "k", gen, "stale", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, cache.Invalidate(ctx, rdb, "k"))

	assert.False(t, mr.Exists("k"))
}

func TestGeneration_PropagatesRedisErrors(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet(cache.GenerationKey("k")).SetErr(errors.New("connection refused"))

	_, err := cache.Generation(context.Background(), rdb, "k")

	assert.EqualError(t, err, "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSet_SendsGenerationAndTTL(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectEvalSha(cache.SetScriptHash(), []string{"k", "k:gen"}, "3", "v", int64(1500)).SetVal(int64(1))

	ok, err := cache.Set(context.Background(), rdb, "k", "3", "v", 1500*time.Millisecond)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidate_DeletesEvenWhenIncrFails(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectIncr("k:gen").SetErr(errors.New("READONLY"))
	mock.ExpectDel("k").SetVal(1)

	err := cache.Invalidate(context.Background(), rdb, "k")

	assert.ErrorContains(t, err, "READONLY")
	assert.NoError(t, mock.ExpectationsWereMet())
}
