package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "taskboard:lookup:"

// LookupCache is a read-through cache for the lookup tables, keyed by table
// name. A redis outage degrades to loading from the database.
type LookupCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewLookupRedisCache(rdb *redis.Client, ttl time.Duration) LookupCache {
	return LookupCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached name→id mapping for table, loading and caching it
// on a miss.
func (c LookupCache) Get(ctx context.Context, table string, load func() (map[string]uint, error)) (map[string]uint, error) {
	data, err := c.rdb.Get(ctx, keyPrefix+table).Bytes()
	if err == nil {
		entries := map[string]uint{}
		if err := json.Unmarshal(data, &entries); err == nil {
			return entries, nil
		}
	}

	entries, err := load()
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(entries); err == nil {
		c.rdb.Set(ctx, keyPrefix+table, data, c.ttl)
	}
	return entries, nil
}

// Invalidate drops the cached mapping so the next Get reloads it.
func (c LookupCache) Invalidate(ctx context.Context, table string) error {
	return c.rdb.Del(ctx, keyPrefix+table).Err()
}
