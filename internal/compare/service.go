// Package compare orchestrates a full fare comparison: distance resolution,
// engine pricing, provider filtering, discount annotation, and history
// recording.
package compare

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/faredeck/faredeck/internal/distance"
	"github.com/faredeck/faredeck/internal/fare"
	"github.com/faredeck/faredeck/internal/featureflags"
	"github.com/faredeck/faredeck/internal/quotecache"
	"github.com/faredeck/faredeck/internal/search"
)

// DistanceSourceRequest marks a distance supplied by the caller.
const DistanceSourceRequest = "request"

// Request describes one comparison.
type Request struct {
	Pickup      string
	Destination string

	// DistanceKm overrides distance resolution when set.
	DistanceKm *float64

	// DurationMin overrides the engine's duration estimate when set.
	DurationMin *int

	// UserID, when set, records the comparison in the user's history.
	UserID string
}

// Result is a completed comparison.
type Result struct {
	Pickup         string            `json:"pickup"`
	Destination    string            `json:"destination"`
	DistanceKm     float64           `json:"distanceKm"`
	DurationMin    int               `json:"durationMin"`
	DistanceSource string            `json:"distanceSource"`
	Surge          fare.SurgeStatus  `json:"surge"`
	Options        []fare.RideOption `json:"options"`
}

// ServiceConfig holds the collaborators for the compare service.
type ServiceConfig struct {
	Engine   *fare.Engine
	Distance *distance.Service
	Flags    *featureflags.Service
	Quotes   *quotecache.Cache
	Searches *search.Service
	Logger   zerolog.Logger
}

// Service runs fare comparisons.
type Service struct {
	engine   *fare.Engine
	distance *distance.Service
	flags    *featureflags.Service
	quotes   *quotecache.Cache
	searches *search.Service
	logger   zerolog.Logger
}

// NewService creates a compare service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		engine:   cfg.Engine,
		distance: cfg.Distance,
		flags:    cfg.Flags,
		quotes:   cfg.Quotes,
		searches: cfg.Searches,
		logger:   cfg.Logger,
	}
}

// Compare prices a route across all enabled providers.
func (s *Service) Compare(ctx context.Context, req *Request) (*Result, error) {
	pickup := strings.TrimSpace(req.Pickup)
	destination := strings.TrimSpace(req.Destination)
	if pickup == "" || destination == "" {
		return nil, fare.ErrEmptyLocation
	}

	distanceKm, durationMin, source, err := s.resolveRoute(ctx, req, pickup, destination)
	if err != nil {
		return nil, err
	}

	options, err := s.engine.CalculateAllFares(distanceKm, pickup, destination, durationMin)
	if err != nil {
		return nil, err
	}

	options = s.filterDisabledProviders(ctx, options)

	if s.quotes != nil && (s.flags == nil || !s.flags.AreDiscountBadgesDisabled(ctx)) {
		s.quotes.Annotate(ctx, pickup, destination, distanceKm, options)
	}

	// Report the duration the engine actually priced against.
	if durationMin <= 0 {
		durationMin = fare.EstimateDuration(distanceKm)
	}

	result := &Result{
		Pickup:         pickup,
		Destination:    destination,
		DistanceKm:     distanceKm,
		DurationMin:    durationMin,
		DistanceSource: source,
		Surge:          s.engine.SurgeStatus(),
		Options:        options,
	}

	s.recordHistory(ctx, req.UserID, result)

	return result, nil
}

// resolveRoute determines distance and duration, preferring caller-supplied
// values over the distance service.
func (s *Service) resolveRoute(ctx context.Context, req *Request, pickup, destination string) (float64, int, string, error) {
	if req.DistanceKm != nil {
		durationMin := 0
		if req.DurationMin != nil {
			durationMin = *req.DurationMin
		}
		return *req.DistanceKm, durationMin, DistanceSourceRequest, nil
	}

	if s.distance == nil {
		est := distance.FallbackEstimate(pickup, destination)
		return est.DistanceKm, est.DurationMin, est.Source, nil
	}

	est, err := s.distance.Resolve(ctx, pickup, destination)
	if err != nil {
		if errors.Is(err, distance.ErrMissingLocation) {
			return 0, 0, "", fare.ErrEmptyLocation
		}
		return 0, 0, "", err
	}

	durationMin := est.DurationMin
	if req.DurationMin != nil {
		durationMin = *req.DurationMin
	}
	return est.DistanceKm, durationMin, est.Source, nil
}

// filterDisabledProviders drops tiers for providers with an active
// kill-switch and recomputes savings against the new cheapest option.
func (s *Service) filterDisabledProviders(ctx context.Context, options []fare.RideOption) []fare.RideOption {
	if s.flags == nil {
		return options
	}

	disabled := make(map[fare.Provider]bool)
	for _, p := range fare.Providers() {
		if s.flags.IsProviderDisabled(ctx, p) {
			disabled[p] = true
		}
	}
	if len(disabled) == 0 {
		return options
	}

	kept := options[:0]
	for _, opt := range options {
		if !disabled[opt.Service] {
			kept = append(kept, opt)
		}
	}

	return fare.RecomputeSavings(kept)
}

// recordHistory stores the comparison for authenticated users. Failures are
// logged, never surfaced.
func (s *Service) recordHistory(ctx context.Context, userID string, result *Result) {
	if s.searches == nil || userID == "" || len(result.Options) == 0 {
		return
	}

	_, err := s.searches.Record(ctx, &search.RecordInput{
		UserID:         userID,
		Pickup:         result.Pickup,
		Destination:    result.Destination,
		DistanceKm:     result.DistanceKm,
		DurationMin:    result.DurationMin,
		DistanceSource: result.DistanceSource,
		Options:        result.Options,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to record search history")
	}
}

// BookingLink returns the provider deep link for a selected option, or an
// empty string when deep links are disabled.
func (s *Service) BookingLink(ctx context.Context, ride fare.RideOption, pickup, destination string) string {
	if s.flags != nil && s.flags.AreBookingLinksDisabled(ctx) {
		return ""
	}
	return fare.BookingURL(ride, pickup, destination)
}
