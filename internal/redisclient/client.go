package redisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"admin-api/internal/models"

	"github.com/go-redis/redis/v8"
)

const couponCacheTTL = 5 * time.Minute

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

// SetSession stores an opaque bearer token mapped to a user ID with TTL
func (c *Client) SetSession(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	return c.rdb.Set(ctx, fmt.Sprintf("session:%s", token), userID, ttl).Err()
}

// GetSession resolves a bearer token to a user ID; returns 0 when the token
// is unknown or expired
func (c *Client) GetSession(ctx context.Context, token string) (int64, error) {
	userID, err := c.rdb.Get(ctx, fmt.Sprintf("session:%s", token)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return userID, nil
}

// DeleteSession revokes a bearer token
func (c *Client) DeleteSession(ctx context.Context, token string) error {
	return c.rdb.Del(ctx, fmt.Sprintf("session:%s", token)).Err()
}

// CacheCoupon stores a coupon under its code for fast validation lookups
func (c *Client) CacheCoupon(ctx context.Context, coupon *models.Coupon) error {
	data, err := json.Marshal(coupon)
	if err != nil {
		return fmt.Errorf("failed to marshal coupon: %w", err)
	}
	return c.rdb.Set(ctx, fmt.Sprintf("coupon:%s", coupon.Code), data, couponCacheTTL).Err()
}

// GetCachedCoupon retrieves a cached coupon by code; returns nil on miss
func (c *Client) GetCachedCoupon(ctx context.Context, code string) (*models.Coupon, error) {
	data, err := c.rdb.Get(ctx, fmt.Sprintf("coupon:%s", code)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var coupon models.Coupon
	if err := json.Unmarshal(data, &coupon); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached coupon: %w", err)
	}
	return &coupon, nil
}

// InvalidateCoupon drops a coupon from the cache after any write
func (c *Client) InvalidateCoupon(ctx context.Context, code string) error {
	return c.rdb.Del(ctx, fmt.Sprintf("coupon:%s", code)).Err()
}
