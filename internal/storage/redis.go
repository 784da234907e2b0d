package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nshruti113/attack-map-dashboard/internal/models"
)

const (
	DefaultFeedKey     = "feed:attacks"
	DefaultFeedChannel = "attacks:live"
)

// Options configures the live feed mirror.
type Options struct {
	Addr     string
	Password string
	DB       int
	Key      string // list holding the newest attacks first
	Channel  string // pub/sub channel every new attack is published on
	Capacity int    // list length kept after each push
}

// RedisClient mirrors the live feed into a bounded Redis list and publishes
// each attack so other dashboard instances can follow along.
type RedisClient struct {
	client   *redis.Client
	key      string
	channel  string
	capacity int
	logger   *zap.Logger
}

func NewRedisClient(ctx context.Context, opts Options, logger *zap.Logger) (*RedisClient, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Key == "" {
		opts.Key = DefaultFeedKey
	}
	if opts.Channel == "" {
		opts.Channel = DefaultFeedChannel
	}
	if opts.Capacity <= 0 {
		opts.Capacity = 20
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", opts.Addr, err)
	}

	logger.Info("connected to redis",
		zap.String("addr", opts.Addr),
		zap.String("key", opts.Key),
		zap.String("channel", opts.Channel),
	)

	return &RedisClient{
		client:   client,
		key:      opts.Key,
		channel:  opts.Channel,
		capacity: opts.Capacity,
		logger:   logger,
	}, nil
}

// StoreAttack pushes attack onto the head of the list, trims it to capacity
// and publishes it, all in one pipeline.
func (r *RedisClient) StoreAttack(ctx context.Context, attack models.Attack) error {
	data, err := json.Marshal(attack)
	if err != nil {
		return fmt.Errorf("encode attack %s: %w", attack.ID, err)
	}

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, r.key, data)
	pipe.LTrim(ctx, r.key, 0, int64(r.capacity-1))
	pipe.Publish(ctx, r.channel, data)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store attack %s: %w", attack.ID, err)
	}
	return nil
}

// RecentAttacks returns up to n attacks, newest first. Entries that no longer
// decode are skipped.
func (r *RedisClient) RecentAttacks(ctx context.Context, n int) ([]models.Attack, error) {
	if n <= 0 {
		return []models.Attack{}, nil
	}

	results, err := r.client.LRange(ctx, r.key, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read recent attacks: %w", err)
	}

	attacks := make([]models.Attack, 0, len(results))
	for _, result := range results {
		var attack models.Attack
		if err := json.Unmarshal([]byte(result), &attack); err != nil {
			r.logger.Warn("skipping malformed attack", zap.Error(err))
			continue
		}
		attacks = append(attacks, attack)
	}
	return attacks, nil
}

// FollowAttacks calls fn for every attack published on the channel until ctx
// is done.
func (r *RedisClient) FollowAttacks(ctx context.Context, fn func(models.Attack)) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	// Wait for the subscription to be confirmed before reading messages.
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", r.channel, err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var attack models.Attack
			if err := json.Unmarshal([]byte(msg.Payload), &attack); err != nil {
				r.logger.Warn("skipping malformed attack message", zap.Error(err))
				continue
			}
			fn(attack)
		}
	}
}

// Close closes the Redis connection
func (r *RedisClient) Close() error {
	return r.client.Close()
}
