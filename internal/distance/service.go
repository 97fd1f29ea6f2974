package distance

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ErrMissingLocation is returned when either endpoint is blank.
var ErrMissingLocation = errors.New("origin and destination are required")

// ServiceConfig holds configuration for the distance service.
type ServiceConfig struct {
	// Provider is the mapping backend. May be nil, in which case every
	// resolution uses the deterministic fallback.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long resolved estimates stay fresh (default: 10m).
	CacheTTL time.Duration

	// StaleIfErrorTTL allows serving stale estimates when the provider
	// fails (default: 1h).
	StaleIfErrorTTL time.Duration

	// CleanupInterval is how often expired entries are dropped (default: 10m).
	CleanupInterval time.Duration
}

// Service resolves distances with caching and fallback. Safe for concurrent
// use.
type Service struct {
	provider        Provider
	logger          zerolog.Logger
	cacheTTL        time.Duration
	staleIfErrorTTL time.Duration
	cleanupInterval time.Duration

	mu          sync.RWMutex
	cache       map[string]*cachedEstimate
	lastCleanup time.Time
}

type cachedEstimate struct {
	estimate  *Estimate
	fetchedAt time.Time
	expiresAt time.Time
}

// NewService creates a distance service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}
	staleTTL := cfg.StaleIfErrorTTL
	if staleTTL == 0 {
		staleTTL = time.Hour
	}
	cleanup := cfg.CleanupInterval
	if cleanup == 0 {
		cleanup = 10 * time.Minute
	}

	return &Service{
		provider:        cfg.Provider,
		logger:          cfg.Logger,
		cacheTTL:        cacheTTL,
		staleIfErrorTTL: staleTTL,
		cleanupInterval: cleanup,
		cache:           make(map[string]*cachedEstimate),
	}
}

// Resolve returns the distance and duration between two locations. Results
// are cached per normalized route; provider failures fall back first to
// stale cache entries, then to the deterministic estimator, so resolution
// never fails once the inputs are valid.
func (s *Service) Resolve(ctx context.Context, origin, destination string) (*Estimate, error) {
	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return nil, ErrMissingLocation
	}

	key := cacheKey(origin, destination)

	s.mu.RLock()
	if cached, ok := s.cache[key]; ok && time.Now().Before(cached.expiresAt) {
		s.mu.RUnlock()
		out := *cached.estimate
		out.Source = SourceCache
		return &out, nil
	}
	s.mu.RUnlock()

	if s.provider == nil {
		return FallbackEstimate(origin, destination), nil
	}

	return s.fetch(ctx, origin, destination, key)
}

func (s *Service) fetch(ctx context.Context, origin, destination, key string) (*Estimate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after taking the write lock.
	if cached, ok := s.cache[key]; ok && time.Now().Before(cached.expiresAt) {
		out := *cached.estimate
		out.Source = SourceCache
		return &out, nil
	}

	estimate, err := s.provider.Estimate(ctx, origin, destination)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("origin", origin).
			Str("destination", destination).
			Str("provider", s.provider.Name()).
			Msg("distance provider failed")

		if cached, ok := s.cache[key]; ok && time.Now().Before(cached.fetchedAt.Add(s.staleIfErrorTTL)) {
			s.logger.Warn().Str("route", key).Msg("serving stale distance estimate")
			out := *cached.estimate
			out.Source = SourceCache
			return &out, nil
		}

		return FallbackEstimate(origin, destination), nil
	}

	now := time.Now()
	s.cache[key] = &cachedEstimate{
		estimate:  estimate,
		fetchedAt: now,
		expiresAt: now.Add(s.cacheTTL),
	}
	s.cleanupIfNeeded(now)

	out := *estimate
	return &out, nil
}

func (s *Service) cleanupIfNeeded(now time.Time) {
	if now.Sub(s.lastCleanup) < s.cleanupInterval {
		return
	}
	s.lastCleanup = now

	for key, cached := range s.cache {
		if now.After(cached.fetchedAt.Add(s.staleIfErrorTTL)) {
			delete(s.cache, key)
		}
	}
}

// Warm resolves a route purely to populate the cache. Used by the
// maintenance worker for popular routes.
func (s *Service) Warm(ctx context.Context, origin, destination string) error {
	_, err := s.Resolve(ctx, origin, destination)
	return err
}

// CacheStats reports cache state for the ops endpoint.
type CacheStats struct {
	TotalEntries int
	FreshEntries int
	Provider     string
}

// Stats returns current cache statistics.
func (s *Service) Stats() CacheStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	fresh := 0
	for _, c := range s.cache {
		if now.Before(c.expiresAt) {
			fresh++
		}
	}

	name := "fallback"
	if s.provider != nil {
		name = s.provider.Name()
	}
	return CacheStats{TotalEntries: len(s.cache), FreshEntries: fresh, Provider: name}
}

func cacheKey(origin, destination string) string {
	return normalize(origin) + "|" + normalize(destination)
}
