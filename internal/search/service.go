package search

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/faredeck/faredeck/internal/fare"
)

// Service errors.
var (
	ErrNotAuthorized = errors.New("not authorized to access this search")
)

// DefaultRetention is how long search history is kept before the maintenance
// worker prunes it.
const DefaultRetention = 90 * 24 * time.Hour

// RecordInput describes a completed comparison to record.
type RecordInput struct {
	UserID         string
	Pickup         string
	Destination    string
	DistanceKm     float64
	DurationMin    int
	DistanceSource string
	Options        []fare.RideOption
}

// Service provides search history operations.
type Service struct {
	repo   Repository
	logger zerolog.Logger
}

// NewService creates a new search service.
func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Record stores a completed comparison in the user's history. A comparison
// with no ride options is not recorded.
func (s *Service) Record(ctx context.Context, input *RecordInput) (*Search, error) {
	if input.UserID == "" || len(input.Options) == 0 {
		return nil, nil
	}

	// Options arrive sorted by price, cheapest first.
	cheapest := input.Options[0]

	search := &Search{
		ID:              "sch_" + uuid.New().String()[:22],
		UserID:          input.UserID,
		Pickup:          input.Pickup,
		Destination:     input.Destination,
		DistanceKm:      input.DistanceKm,
		DurationMin:     input.DurationMin,
		DistanceSource:  input.DistanceSource,
		CheapestPrice:   cheapest.Price,
		CheapestService: cheapest.Service,
		OptionCount:     len(input.Options),
		SearchedAt:      time.Now(),
	}

	if err := s.repo.Create(ctx, search); err != nil {
		return nil, err
	}

	return search, nil
}

// List retrieves a user's search history, newest first.
func (s *Service) List(ctx context.Context, userID string, limit int) (*ListResult, error) {
	return s.repo.List(ctx, userID, ListOptions{Limit: limit})
}

// Delete deletes one search from a user's history.
func (s *Service) Delete(ctx context.Context, userID, searchID string) error {
	// Verify ownership
	if _, err := s.repo.GetByUserAndID(ctx, userID, searchID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, searchID)
}

// Clear deletes a user's entire search history.
func (s *Service) Clear(ctx context.Context, userID string) error {
	return s.repo.DeleteAllForUser(ctx, userID)
}

// Prune removes searches older than the retention window. Returns how many
// rows were removed.
func (s *Service) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		retention = DefaultRetention
	}

	cutoff := time.Now().Add(-retention)
	removed, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		s.logger.Info().
			Int64("removed", removed).
			Time("cutoff", cutoff).
			Msg("pruned search history")
	}

	return removed, nil
}
