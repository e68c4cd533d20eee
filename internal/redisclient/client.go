package redisclient

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	dashboardSnapshotKey = "dashboard:snapshot"
	exchangeRateKey      = "exchange:rate"
)

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// SetDashboardSnapshot stores the serialized dashboard snapshot with TTL
func (c *Client) SetDashboardSnapshot(ctx context.Context, payload []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, dashboardSnapshotKey, payload, ttl).Err()
}

// GetDashboardSnapshot retrieves the cached dashboard snapshot.
// Returns nil without error on a cache miss.
func (c *Client) GetDashboardSnapshot(ctx context.Context) ([]byte, error) {
	payload, err := c.rdb.Get(ctx, dashboardSnapshotKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read dashboard snapshot: %w", err)
	}
	return payload, nil
}

// InvalidateDashboardSnapshot drops the cached snapshot so the next read recomputes
func (c *Client) InvalidateDashboardSnapshot(ctx context.Context) error {
	return c.rdb.Del(ctx, dashboardSnapshotKey).Err()
}

// SetStock mirrors the stock count of an inventory item
func (c *Client) SetStock(ctx context.Context, itemID string, quantity int) error {
	return c.rdb.HSet(ctx, "inventory:stock", itemID, quantity).Err()
}

// GetStock retrieves the mirrored stock count for an item.
// Returns ok=false when the item is not mirrored.
func (c *Client) GetStock(ctx context.Context, itemID string) (int, bool, error) {
	val, err := c.rdb.HGet(ctx, "inventory:stock", itemID).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	quantity, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt stock mirror for item %s: %w", itemID, err)
	}
	return quantity, true, nil
}

// RemoveStock drops an item from the stock mirror
func (c *Client) RemoveStock(ctx context.Context, itemID string) error {
	return c.rdb.HDel(ctx, "inventory:stock", itemID).Err()
}

// SetExchangeRate caches the exchange rate with TTL
func (c *Client) SetExchangeRate(ctx context.Context, rate string, ttl time.Duration) error {
	return c.rdb.Set(ctx, exchangeRateKey, rate, ttl).Err()
}

// GetExchangeRate retrieves the cached exchange rate.
// Returns an empty string without error on a cache miss.
func (c *Client) GetExchangeRate(ctx context.Context) (string, error) {
	rate, err := c.rdb.Get(ctx, exchangeRateKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return rate, nil
}
