// Package cache keeps recent collection snapshots in Redis so list pages do
// not hit the spreadsheet on every keystroke.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/JonMunkholm/sheetsync/internal/sheet"
	"github.com/go-redis/redis/v8"
)

// Redis implements core.SnapshotCache.
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis caches snapshots under "sheetsync:<sheetID>:<collection>" for ttl.
func NewRedis(client *redis.Client, sheetID string, ttl time.Duration) *Redis {
	return &Redis{
		client: client,
		prefix: "sheetsync:" + sheetID + ":",
		ttl:    ttl,
	}
}

// Connect dials addr and checks the connection.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

func (r *Redis) key(collection string) string {
	return r.prefix + collection
}

// Get returns the cached snapshot for collection.
func (r *Redis) Get(ctx context.Context, collection string) (*sheet.Snapshot, bool, error) {
	raw, err := r.client.Get(ctx, r.key(collection)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get snapshot %s: %w", collection, err)
	}

	var table [][]string
	if err := json.Unmarshal(raw, &table); err != nil {
		return nil, false, fmt.Errorf("decode snapshot %s: %w", collection, err)
	}
	return sheet.MapRows(collection, table), true, nil
}

// Set stores the snapshot's raw table.
func (r *Redis) Set(ctx context.Context, snap *sheet.Snapshot) error {
	raw, err := json.Marshal(snap.Table())
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", snap.Collection, err)
	}
	if err := r.client.Set(ctx, r.key(snap.Collection), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("set snapshot %s: %w", snap.Collection, err)
	}
	return nil
}

// Invalidate removes the snapshots of every named collection.
func (r *Redis) Invalidate(ctx context.Context, collections ...string) error {
	if len(collections) == 0 {
		return nil
	}
	keys := make([]string, len(collections))
	for i, c := range collections {
		keys[i] = r.key(c)
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate snapshots: %w", err)
	}
	return nil
}
