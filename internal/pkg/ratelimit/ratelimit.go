// Package ratelimit provides per-key fixed-window limiters backed by Redis,
// with an in-process fallback.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
	script *redis.Script
}

func NewRedisLimiter(client *redis.Client, limit int, window time.Duration, prefix string) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: prefix,
		script: redis.NewScript(rateLimitScript),
	}
}

// Allow fails open: a Redis error lets the request through.
func (l *RedisLimiter) Allow(ctx context.Context, key string) bool {
	if l.limit <= 0 || l.window <= 0 || key == "" {
		return true
	}

	redisKey := key
	if l.prefix != "" {
		redisKey = l.prefix + ":" + key
	}
	ttl := l.window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}

	ctx, cancel := context.WithTimeout(ctx, 250*time.Millisecond)
	defer cancel()
	allowed, err := l.script.Run(ctx, l.client, []string{redisKey}, ttl, l.limit).Int64()
	if err != nil {
		log.Warn().Err(err).Str("key", redisKey).Msg("rate limit check failed")
		return true
	}
	return allowed == 1
}

// LocalLimiter keeps one token bucket per key, refilled at limit per window.
type LocalLimiter struct {
	mu       sync.Mutex
	limiters map[string]*localEntry
	every    rate.Limit
	burst    int
	idle     time.Duration
}

type localEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewLocalLimiter(limit int, window time.Duration) *LocalLimiter {
	l := &LocalLimiter{
		limiters: make(map[string]*localEntry),
		burst:    limit,
		idle:     window * 2,
	}
	if limit > 0 && window > 0 {
		l.every = rate.Every(window / time.Duration(limit))
	}
	return l
}

func (l *LocalLimiter) Allow(_ context.Context, key string) bool {
	if l.burst <= 0 || l.every == 0 || key == "" {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.evict(now)

	entry, ok := l.limiters[key]
	if !ok {
		entry = &localEntry{limiter: rate.NewLimiter(l.every, l.burst)}
		l.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

func (l *LocalLimiter) evict(now time.Time) {
	for key, entry := range l.limiters {
		if now.Sub(entry.lastSeen) > l.idle {
			delete(l.limiters, key)
		}
	}
}

// New returns a Redis limiter when client is set and a local one otherwise.
func New(client *redis.Client, limit int, window time.Duration, prefix string) Limiter {
	if client == nil {
		return NewLocalLimiter(limit, window)
	}
	return NewRedisLimiter(client, limit, window, prefix)
}
