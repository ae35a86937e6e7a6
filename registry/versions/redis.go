package versions

import (
	"context"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Redis shares version counters across processes and survives restarts.
// Optionally a TTL can be applied to counter keys to prevent unbounded
// growth; an expired counter reads as version 0 and stored schemas with a
// higher envelope version are treated as stale and re-registered.
type Redis struct {
	rdb goredis.UniversalClient
	ns  string        // logical namespace; should match registry Options.Namespace
	ttl time.Duration // optional TTL for counter keys; 0 disables expiry
}

var _ Counter = (*Redis)(nil)

// NewRedis creates a Redis-backed version counter without TTL.
func NewRedis(client goredis.UniversalClient, namespace string) *Redis {
	return &Redis{rdb: client, ns: namespace}
}

// NewRedisWithTTL creates a Redis-backed version counter with TTL.
// If ttl <= 0, keys do not expire.
func NewRedisWithTTL(client goredis.UniversalClient, namespace string, ttl time.Duration) *Redis {
	return &Redis{rdb: client, ns: namespace, ttl: ttl}
}

func (s *Redis) key(name string) string { return "schemaver:" + s.ns + ":" + name }

// Current returns the current version. Missing keys read as version 0.
func (s *Redis) Current(ctx context.Context, name string) (uint64, error) {
	res, err := s.rdb.Get(ctx, s.key(name)).Result()
	if err == goredis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(res, 10, 64)
}

// Bump atomically increments the version via INCR and refreshes the TTL
// when one is configured.
func (s *Redis) Bump(ctx context.Context, name string) (uint64, error) {
	k := s.key(name)
	v, err := s.rdb.Incr(ctx, k).Result()
	if err != nil {
		return 0, err
	}
	if s.ttl > 0 {
		_ = s.rdb.Expire(ctx, k, s.ttl).Err()
	}
	return uint64(v), nil
}

func (s *Redis) Close(context.Context) error { return nil }
