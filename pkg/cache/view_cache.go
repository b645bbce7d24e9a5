// Package cache keeps rendered per-user views in Redis so reads can skip the
// database until a write marks the view stale.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "view:"
	// Invalidation markers hold the unix-millis time of the last invalidation.
	markerPrefix = "viewinv:"
	allUsers     = "*"
)

// storeScript writes the snapshot only if no invalidation of the view happened
// at or after the moment the snapshot was read.
// KEYS[1] view key, KEYS[2] per-user marker, KEYS[3] all-users marker
// ARGV[1] payload, ARGV[2] readAt millis, ARGV[3] ttl millis
var storeScript = redis.NewScript(`
for i = 2, 3 do
    local inv = redis.call('GET', KEYS[i])
    if inv and tonumber(inv) >= tonumber(ARGV[2]) then
        return 0
    end
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
return 1
`)

// ViewCache stores JSON snapshots keyed by user and logical path.
// A nil client turns every call into a no-op.
type ViewCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger

	warnedUnavailable atomic.Bool
}

func NewViewCache(client *redis.Client, ttl time.Duration, log *slog.Logger) *ViewCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if log == nil {
		log = slog.Default()
	}
	return &ViewCache{client: client, ttl: ttl, log: log}
}

// Key builds the Redis key for a user's view, e.g. "view:<user>:/profile".
func Key(userID, path string) string {
	return keyPrefix + userID + ":" + normalizePath(path)
}

func markerKey(userID, path string) string {
	return markerPrefix + userID + ":" + normalizePath(path)
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(path, "/")
}

func (c *ViewCache) disabled() bool {
	return c == nil || c.client == nil
}

func (c *ViewCache) warnOnce(err error) {
	if c.warnedUnavailable.CompareAndSwap(false, true) {
		c.log.Warn("view cache unavailable, bypassing", "error", err)
	}
}

// Load decodes the cached view into out. It reports false on a miss.
func (c *ViewCache) Load(ctx context.Context, userID, path string, out any) (bool, error) {
	if c.disabled() {
		return false, nil
	}
	b, err := c.client.Get(ctx, Key(userID, path)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		c.warnOnce(err)
		return false, err
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

// Store saves value as the current rendering of the view. readAt is when the
// value was read from the store; a snapshot older than the latest invalidation
// of the view is dropped.
func (c *ViewCache) Store(ctx context.Context, userID, path string, value any, readAt time.Time) error {
	if c.disabled() {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	keys := []string{Key(userID, path), markerKey(userID, path), markerKey(allUsers, path)}
	if err := storeScript.Run(ctx, c.client, keys, b, readAt.UnixMilli(), c.ttl.Milliseconds()).Err(); err != nil {
		c.warnOnce(err)
		return err
	}
	return nil
}

// mark records an invalidation so in-flight reads cannot re-populate the view.
func (c *ViewCache) mark(ctx context.Context, key string) error {
	if err := c.client.Set(ctx, key, time.Now().UnixMilli(), c.ttl).Err(); err != nil {
		c.warnOnce(err)
		return err
	}
	return nil
}

// InvalidatePath marks the view at path (and any sub-path) stale for userID.
func (c *ViewCache) InvalidatePath(ctx context.Context, userID, path string) error {
	if c.disabled() {
		return nil
	}
	if err := c.mark(ctx, markerKey(userID, path)); err != nil {
		return err
	}

	key := Key(userID, path)
	keys := []string{key}

	iter := c.client.Scan(ctx, 0, key+"/*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.warnOnce(err)
		return err
	}

	return c.del(ctx, keys)
}

// InvalidateAll marks the view at path stale for every user.
func (c *ViewCache) InvalidateAll(ctx context.Context, path string) error {
	if c.disabled() {
		return nil
	}
	if err := c.mark(ctx, markerKey(allUsers, path)); err != nil {
		return err
	}

	var keys []string
	iter := c.client.Scan(ctx, 0, keyPrefix+"*:"+normalizePath(path), 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.warnOnce(err)
		return err
	}
	return c.del(ctx, keys)
}

func (c *ViewCache) del(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.warnOnce(err)
		return err
	}
	return nil
}
