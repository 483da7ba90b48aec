package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// SeenSetKey names the Redis set holding seen identifiers.
const SeenSetKey = "seen_posts"

// RedisSeenRepository keeps seen identifiers in a Redis set.
type RedisSeenRepository struct {
	client *redis.Client
	key    string
}

var _ SeenStore = (*RedisSeenRepository)(nil)

// NewRedisSeenRepository connects to the server described by a redis:// URL.
func NewRedisSeenRepository(ctx context.Context, url string) (*RedisSeenRepository, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("Connected to Redis", "addr", opts.Addr, "db", opts.DB)

	return &RedisSeenRepository{client: client, key: SeenSetKey}, nil
}

func (r *RedisSeenRepository) Has(ctx context.Context, id string) (bool, error) {
	seen, err := r.client.SIsMember(ctx, r.key, id).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check seen post: %w", err)
	}
	return seen, nil
}

// Insert relies on SADD reporting zero added members for an existing one.
func (r *RedisSeenRepository) Insert(ctx context.Context, id string) error {
	added, err := r.client.SAdd(ctx, r.key, id).Result()
	if err != nil {
		return fmt.Errorf("failed to insert seen post: %w", err)
	}
	if added == 0 {
		return ErrDuplicateKey
	}
	return nil
}

func (r *RedisSeenRepository) Count(ctx context.Context) (int, error) {
	count, err := r.client.SCard(ctx, r.key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count seen posts: %w", err)
	}
	return int(count), nil
}

func (r *RedisSeenRepository) Close() error {
	return r.client.Close()
}
