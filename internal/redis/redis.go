package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/config"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewClient(cfg *config.Config) *Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       0,
	})

	return &Client{rdb: rdb, ttl: cfg.FlashTTL}
}

// NewFromRedis wraps an existing go-redis client.
func NewFromRedis(rdb *redis.Client, ttl time.Duration) *Client {
	return &Client{rdb: rdb, ttl: ttl}
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func flashKey(sessionID string) string {
	return fmt.Sprintf("flash:%s", sessionID)
}

// PushFlashes appends msgs to the session's queue and resets its expiry.
func (c *Client) PushFlashes(ctx context.Context, sessionID string, msgs []string) error {
	if len(msgs) == 0 {
		return nil
	}
	key := flashKey(sessionID)

	values := make([]interface{}, len(msgs))
	for i, m := range msgs {
		values[i] = m
	}

	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, values...)
		pipe.Expire(ctx, key, c.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to push flash messages: %w", err)
	}
	return nil
}

// PopFlashes returns the queued messages oldest first and clears the queue.
func (c *Client) PopFlashes(ctx context.Context, sessionID string) ([]string, error) {
	key := flashKey(sessionID)

	var lrange *redis.StringSliceCmd
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		lrange = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to pop flash messages: %w", err)
	}
	return lrange.Val(), nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
