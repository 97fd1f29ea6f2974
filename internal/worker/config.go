// Package worker provides background maintenance jobs for FareDeck.
package worker

import (
	"time"

	"github.com/faredeck/faredeck/internal/fare"
)

// WarmTarget is one route to pre-resolve into the distance cache.
type WarmTarget struct {
	Pickup      string
	Destination string
}

// MaintenanceConfig holds configuration for the maintenance job.
type MaintenanceConfig struct {
	// Retention is how long search history is kept. Entries older than this
	// are pruned. Default: 90 days.
	Retention time.Duration

	// WarmTargets are the routes to pre-warm. If empty, the popular routes
	// from the fare tables are used.
	WarmTargets []WarmTarget

	// Concurrency is the number of concurrent warm operations.
	// Default: 3
	Concurrency int

	// Timeout is the timeout for each warm operation.
	// Default: 30 seconds
	Timeout time.Duration

	// PruneHistory enables search history pruning. Default: true
	PruneHistory bool

	// WarmDistanceCache enables distance cache warming. Default: true
	WarmDistanceCache bool
}

// DefaultMaintenanceConfig returns the default maintenance configuration.
func DefaultMaintenanceConfig() MaintenanceConfig {
	return MaintenanceConfig{
		Retention:         90 * 24 * time.Hour,
		WarmTargets:       DefaultWarmTargets(),
		Concurrency:       3,
		Timeout:           30 * time.Second,
		PruneHistory:      true,
		WarmDistanceCache: true,
	}
}

// DefaultWarmTargets derives warm targets from the curated popular routes.
func DefaultWarmTargets() []WarmTarget {
	popular := fare.PopularRoutes()
	targets := make([]WarmTarget, 0, len(popular))
	for _, route := range popular {
		targets = append(targets, WarmTarget{
			Pickup:      route.From,
			Destination: route.To,
		})
	}
	return targets
}
