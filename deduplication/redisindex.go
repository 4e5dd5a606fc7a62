package deduplication

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisIndexConfig configures the Redis set of published slugs
type RedisIndexConfig struct {
	Addr     string // e.g. localhost:6379
	Password string
	DB       int
	Key      string // redis key of the slug set
}

// slugSet is the subset of the redis client the index uses
type slugSet interface {
	SMembers(ctx context.Context, key string) *redis.StringSliceCmd
	SAdd(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
}

// RedisIndex mirrors slugs published outside this host into a Redis set,
// so runs on any machine see them without a local content checkout.
type RedisIndex struct {
	client *redis.Client
	set    slugSet
	key    string
}

// NewRedisIndex creates a RedisIndex and verifies connectivity
func NewRedisIndex(cfg RedisIndexConfig) (*RedisIndex, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return NewRedisIndexWithClient(client, cfg.Key), nil
}

// NewRedisIndexWithClient wraps an existing client
func NewRedisIndexWithClient(client *redis.Client, key string) *RedisIndex {
	return &RedisIndex{client: client, set: client, key: key}
}

// Client returns the underlying Redis client for sharing with other Redis users
func (r *RedisIndex) Client() *redis.Client { return r.client }

// Close closes the underlying Redis client
func (r *RedisIndex) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}

// Load returns every registered slug as a ContentIndex
func (r *RedisIndex) Load(ctx context.Context) (ContentIndex, error) {
	members, err := r.set.SMembers(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis index: load: %w", err)
	}
	index := make(ContentIndex, len(members))
	index.Add(members...)
	return index, nil
}

// Register normalizes values to slugs and adds them to the set.
// It returns the slugs that were stored.
func (r *RedisIndex) Register(ctx context.Context, values ...string) ([]string, error) {
	slugs := NormalizeSlugs(values)
	if len(slugs) == 0 {
		return nil, nil
	}

	members := make([]interface{}, len(slugs))
	for i, s := range slugs {
		members[i] = s
	}
	if err := r.set.SAdd(ctx, r.key, members...).Err(); err != nil {
		return nil, fmt.Errorf("redis index: register: %w", err)
	}
	return slugs, nil
}

// NormalizeSlugs turns slugs or raw keywords into the slug form Deduplicate
// looks up, dropping empties and repeats. A value that is already a slug
// comes back unchanged.
func NormalizeSlugs(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		s := Slugify(v)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
