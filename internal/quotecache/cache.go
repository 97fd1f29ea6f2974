// Package quotecache stores recent fare quotes in Redis so repeat searches
// for the same route can surface price drops as strike-through discounts.
package quotecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/faredeck/faredeck/internal/fare"
)

// ErrNotFound is returned when no snapshot exists for a route.
var ErrNotFound = errors.New("no cached quote for route")

// DefaultTTL is how long a quote snapshot stays comparable.
const DefaultTTL = 30 * time.Minute

// Snapshot is the per-tier price record stored for one route.
type Snapshot struct {
	// Prices maps tier name (e.g. "UberGo") to its quoted price in rupees.
	Prices map[string]int `json:"prices"`

	// QuotedAt is when the snapshot was taken.
	QuotedAt time.Time `json:"quotedAt"`
}

// Store abstracts the snapshot backend so tests can run without Redis.
type Store interface {
	Get(ctx context.Context, key string) (*Snapshot, error)
	Set(ctx context.Context, key string, snapshot *Snapshot, ttl time.Duration) error
}

// RedisStore is the production Store backed by Redis.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed snapshot store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get retrieves a snapshot by key.
func (s *RedisStore) Get(ctx context.Context, key string) (*Snapshot, error) {
	raw, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var snapshot Snapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return nil, fmt.Errorf("decoding cached quote: %w", err)
	}
	return &snapshot, nil
}

// Set stores a snapshot under the key with a TTL.
func (s *RedisStore) Set(ctx context.Context, key string, snapshot *Snapshot, ttl time.Duration) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encoding quote snapshot: %w", err)
	}
	return s.client.Set(ctx, key, raw, ttl).Err()
}

// Cache annotates comparison results against the previous snapshot for the
// same route. All failures are non-fatal; a broken cache never blocks a
// comparison.
type Cache struct {
	store  Store
	ttl    time.Duration
	logger zerolog.Logger
}

// Config holds configuration for the quote cache.
type Config struct {
	Store  Store
	TTL    time.Duration
	Logger zerolog.Logger
}

// New creates a quote cache.
func New(cfg Config) *Cache {
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Cache{store: cfg.Store, ttl: ttl, logger: cfg.Logger}
}

// Annotate compares options against the cached snapshot for the route,
// filling OriginalPrice and Discount on tiers that got cheaper, then stores
// the current prices as the new snapshot.
func (c *Cache) Annotate(ctx context.Context, pickup, destination string, distanceKm float64, options []fare.RideOption) {
	if c == nil || c.store == nil {
		return
	}

	key := Key(pickup, destination, distanceKm)

	previous, err := c.store.Get(ctx, key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		c.logger.Warn().Err(err).Str("route", key).Msg("quote cache read failed")
	}

	if previous != nil {
		for i := range options {
			prev, ok := previous.Prices[options[i].Type]
			if !ok || prev <= options[i].Price {
				continue
			}
			discount := int(math.Round(float64(prev-options[i].Price) / float64(prev) * 100))
			if discount == 0 {
				continue
			}
			prevCopy := prev
			options[i].OriginalPrice = &prevCopy
			options[i].Discount = &discount
		}
	}

	snapshot := &Snapshot{
		Prices:   make(map[string]int, len(options)),
		QuotedAt: time.Now(),
	}
	for _, opt := range options {
		snapshot.Prices[opt.Type] = opt.Price
	}

	if err := c.store.Set(ctx, key, snapshot, c.ttl); err != nil {
		c.logger.Warn().Err(err).Str("route", key).Msg("quote cache write failed")
	}
}

// Key derives the cache key for a route. Locations are normalized so case
// and padding differences hit the same entry.
func Key(pickup, destination string, distanceKm float64) string {
	return fmt.Sprintf("quote:%s|%s|%.2f",
		strings.ToLower(strings.TrimSpace(pickup)),
		strings.ToLower(strings.TrimSpace(destination)),
		distanceKm,
	)
}
