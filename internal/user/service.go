package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/faredeck/faredeck/internal/fare"
)

// Service errors.
var (
	ErrUnknownProvider = errors.New("unknown provider")
)

// Service provides rider profile operations.
type Service struct {
	repo Repository
}

// NewService creates a new profile service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetProfile retrieves a rider's profile. A rider without a stored profile
// gets an empty default rather than an error.
func (s *Service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	profile, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return DefaultProfile(userID), nil
		}
		return nil, err
	}
	return profile, nil
}

// UpdateProfile applies a partial update and returns the stored profile.
func (s *Service) UpdateProfile(ctx context.Context, userID string, update *ProfileUpdate) (*Profile, error) {
	profile, err := s.repo.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrProfileNotFound) {
			return nil, err
		}
		profile = DefaultProfile(userID)
	}

	if update.DisplayName != nil {
		profile.DisplayName = strings.TrimSpace(*update.DisplayName)
	}
	if update.HomeCity != nil {
		profile.HomeCity = strings.TrimSpace(*update.HomeCity)
	}
	if update.DefaultPickup != nil {
		profile.DefaultPickup = strings.TrimSpace(*update.DefaultPickup)
	}
	if update.PreferredProvider != nil {
		if *update.PreferredProvider == "" {
			profile.PreferredProvider = ""
		} else {
			provider, ok := fare.ParseProvider(*update.PreferredProvider)
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, *update.PreferredProvider)
			}
			profile.PreferredProvider = provider
		}
	}
	profile.UpdatedAt = time.Now()

	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// DeleteProfile deletes a rider's profile.
func (s *Service) DeleteProfile(ctx context.Context, userID string) error {
	return s.repo.Delete(ctx, userID)
}
