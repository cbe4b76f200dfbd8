package redisx

import (
    "context"
    "errors"
    "time"

    "github.com/redis/go-redis/v9"
)

type Client struct { Rdb *redis.Client }

func New(addr string, password string, db int) *Client {
    rdb := redis.NewClient(&redis.Options{
        Addr:         addr,
        Password:     password,
        DB:           db,
        DialTimeout:  2 * time.Second,
        ReadTimeout:  500 * time.Millisecond,
        WriteTimeout: 500 * time.Millisecond,
    })
    return &Client{Rdb: rdb}
}

func (c *Client) Ping(ctx context.Context) error {
    return c.Rdb.Ping(ctx).Err()
}

func (c *Client) Close() error { return c.Rdb.Close() }

// GetBytes returns (nil, false, nil) when the key does not exist.
func (c *Client) GetBytes(ctx context.Context, key string) ([]byte, bool, error) {
    b, err := c.Rdb.Get(ctx, key).Bytes()
    if errors.Is(err, redis.Nil) { return nil, false, nil }
    if err != nil { return nil, false, err }
    return b, true, nil
}

func (c *Client) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
    return c.Rdb.Set(ctx, key, val, ttl).Err()
}
