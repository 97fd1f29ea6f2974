// Package distance resolves trip distance and duration between two free-text
// locations, with caching and a deterministic fallback.
package distance

import "context"

// Estimate sources.
const (
	SourceProvider = "provider"
	SourceCache    = "cache"
	SourceFallback = "fallback"
)

// Estimate is a resolved trip distance and duration.
type Estimate struct {
	DistanceKm  float64 `json:"distanceKm"`
	DurationMin int     `json:"durationMin"`
	Source      string  `json:"source"`
}

// Provider supplies distance estimates from an external mapping service.
type Provider interface {
	// Name identifies the provider for logging and health reporting.
	Name() string

	// Estimate returns the driving distance and duration between two
	// free-text locations.
	Estimate(ctx context.Context, origin, destination string) (*Estimate, error)
}

// Error wraps a provider failure with enough context to act on.
type Error struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	return e.Provider + ": " + e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}
