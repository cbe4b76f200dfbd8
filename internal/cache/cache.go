// Package cache defines the response cache used in front of the geo provider.
// Entries are immutable JSON blobs; concurrent writers simply overwrite each
// other (last write wins).
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/yourorg/location-quote/internal/redisx"
)

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

// Redis stores entries in Redis under an optional key prefix.
type Redis struct {
	Client *redisx.Client
	Prefix string
}

func NewRedis(c *redisx.Client, prefix string) *Redis { return &Redis{Client: c, Prefix: prefix} }

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return r.Client.GetBytes(ctx, r.Prefix+key)
}

func (r *Redis) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return r.Client.Set(ctx, r.Prefix+key, val, ttl)
}

type item struct {
	val    []byte
	expiry time.Time
}

// Memory is an in-process TTL cache. Expired entries are dropped lazily on
// read and swept when the map grows past sweepAt.
type Memory struct {
	mu      sync.RWMutex
	items   map[string]item
	now     func() time.Time
	sweepAt int
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string]item), now: time.Now, sweepAt: 1024}
}

// WithClock swaps the time source; tests use it to expire entries.
func (m *Memory) WithClock(now func() time.Time) *Memory {
	m.now = now
	return m
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	it, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !it.expiry.IsZero() && !m.now().Before(it.expiry) {
		m.mu.Lock()
		if cur, still := m.items[key]; still && cur.expiry.Equal(it.expiry) {
			delete(m.items, key)
		}
		m.mu.Unlock()
		return nil, false, nil
	}
	return append([]byte(nil), it.val...), true, nil
}

func (m *Memory) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	now := m.now()
	it := item{val: append([]byte(nil), val...)}
	if ttl > 0 {
		it.expiry = now.Add(ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = it
	if len(m.items) > m.sweepAt {
		for k, v := range m.items {
			if !v.expiry.IsZero() && !now.Before(v.expiry) {
				delete(m.items, k)
			}
		}
		if len(m.items) > m.sweepAt {
			m.sweepAt *= 2
		}
	}
	return nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }
