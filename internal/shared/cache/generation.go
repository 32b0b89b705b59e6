package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// setIfGeneration writes KEYS[1] only while KEYS[2] still holds ARGV[1].
// A missing generation counts as "0".
var setIfGeneration = redis.NewScript(`
local gen = redis.call('GET', KEYS[2])
if not gen then gen = '0' end
if gen ~= ARGV[1] then return 0 end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

func GenerationKey(key string) string {
	return key + ":gen"
}

// SetScriptHash is the sha1 that Set sends with EVALSHA.
func SetScriptHash() string {
	return setIfGeneration.Hash()
}

// Generation reads the counter guarding key. Take it before loading the
// value that will be cached.
func Generation(ctx context.Context, rdb *redis.Client, key string) (string, error) {
	gen, err := rdb.Get(ctx, GenerationKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "0", nil
	}
	return gen, err
}

// Set stores value under key unless Invalidate ran after gen was read.
// It reports whether the value was written.
func Set(ctx context.Context, rdb *redis.Client, key, gen, value string, ttl time.Duration) (bool, error) {
	n, err := setIfGeneration.Run(ctx, rdb,
		[]string{key, GenerationKey(key)},
		gen, value, ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Invalidate bumps the generation before deleting key, so a reader that
// loaded data earlier can neither write it afterwards nor keep what it
// wrote just before the bump.
func Invalidate(ctx context.Context, rdb *redis.Client, key string) error {
	incrErr := rdb.Incr(ctx, GenerationKey(key)).Err()
	delErr := rdb.Del(ctx, key).Err()
	return errors.Join(incrErr, delErr)
}
