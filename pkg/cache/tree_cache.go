package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultTreeCacheTTL applies when the configured TTL is not positive.
	DefaultTreeCacheTTL = 10 * time.Minute

	treeCacheKeyPrefix = "tree"
)

// CachedNode is one node of a cached tree. Only ids are stored; the caller
// rehydrates items from the snapshot the key was computed from.
type CachedNode struct {
	ID        uuid.UUID    `json:"id"`
	Truncated bool         `json:"truncated,omitempty"`
	Shadowed  bool         `json:"shadowed,omitempty"`
	Children  []CachedNode `json:"children,omitempty"`
}

// CachedCycle mirrors a cycle diagnostic.
type CachedCycle struct {
	ItemID uuid.UUID `json:"item_id"`
	Name   string    `json:"name"`
	Path   []string  `json:"path"`
}

// CachedTree is the read model stored in Redis for a materialized tree.
type CachedTree struct {
	Name     string        `json:"name"`
	ItemID   *uuid.UUID    `json:"item_id,omitempty"`
	Children []CachedNode  `json:"children,omitempty"`
	Cycles   []CachedCycle `json:"cycles,omitempty"`
	Size     int           `json:"size"`
}

// TreeCache memoizes materialized trees per catalog snapshot.
// Key format: "tree:{epoch}:{version}:{escaped root name}". A mutation moves
// the version, so stale entries are never read and simply expire.
type TreeCache struct {
	client *RedisClient
	ttl    time.Duration
}

// NewTreeCache creates a TreeCache backed by the given RedisClient.
func NewTreeCache(r *RedisClient, ttl time.Duration) *TreeCache {
	if ttl <= 0 {
		ttl = DefaultTreeCacheTTL
	}
	return &TreeCache{client: r, ttl: ttl}
}

// Get returns the cached tree for a snapshot and root name.
// The returned error wraps redis.Nil when the key does not exist or has expired.
func (c *TreeCache) Get(ctx context.Context, epoch uuid.UUID, version uint64, rootName string) (*CachedTree, error) {
	data, err := c.client.Client().Get(ctx, TreeKey(epoch, version, rootName)).Bytes()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	var tree CachedTree
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("cache decode tree: %w", err)
	}
	return &tree, nil
}

// Set stores a tree for a snapshot and root name with the configured TTL.
func (c *TreeCache) Set(ctx context.Context, epoch uuid.UUID, version uint64, tree *CachedTree) error {
	data, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("cache encode tree: %w", err)
	}
	if err := c.client.Client().Set(ctx, TreeKey(epoch, version, tree.Name), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// TreeKey builds the Redis key for a snapshot and root name.
func TreeKey(epoch uuid.UUID, version uint64, rootName string) string {
	return fmt.Sprintf("%s:%s:%d:%s", treeCacheKeyPrefix, epoch, version, url.PathEscape(rootName))
}
