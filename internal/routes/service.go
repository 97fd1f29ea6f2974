package routes

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Validation constants.
const (
	MaxLabelLength    = 80
	MaxLocationLength = 200
	MaxNotesLength    = 500
)

// Service provides saved route operations.
type Service struct {
	repo Repository
}

// NewService creates a new route service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List retrieves all saved routes for a user.
func (s *Service) List(ctx context.Context, userID string, limit int) (*ListResult, error) {
	return s.repo.List(ctx, userID, ListOptions{Limit: limit})
}

// Get retrieves a saved route by ID for a user.
func (s *Service) Get(ctx context.Context, userID, routeID string) (*SavedRoute, error) {
	return s.repo.GetByUserAndID(ctx, userID, routeID)
}

// Create creates a new saved route for a user.
func (s *Service) Create(ctx context.Context, userID string, input *CreateInput) (*SavedRoute, error) {
	if fieldErrors := s.validateCreateInput(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	now := time.Now()
	route := &SavedRoute{
		ID:          "rte_" + uuid.New().String()[:22],
		UserID:      userID,
		Label:       strings.TrimSpace(input.Label),
		Pickup:      strings.TrimSpace(input.Pickup),
		Destination: strings.TrimSpace(input.Destination),
		Notes:       input.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, route); err != nil {
		return nil, err
	}

	return route, nil
}

// Update updates an existing saved route for a user.
func (s *Service) Update(ctx context.Context, userID, routeID string, input *UpdateInput) (*SavedRoute, error) {
	route, err := s.repo.GetByUserAndID(ctx, userID, routeID)
	if err != nil {
		return nil, err
	}

	if fieldErrors := s.validateUpdateInput(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	// Apply updates
	if input.Label != nil {
		route.Label = strings.TrimSpace(*input.Label)
	}
	if input.Pickup != nil {
		route.Pickup = strings.TrimSpace(*input.Pickup)
	}
	if input.Destination != nil {
		route.Destination = strings.TrimSpace(*input.Destination)
	}
	if input.Notes != nil {
		route.Notes = input.Notes
	}
	route.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, route); err != nil {
		return nil, err
	}

	return route, nil
}

// Delete deletes a saved route for a user.
func (s *Service) Delete(ctx context.Context, userID, routeID string) error {
	// Verify ownership
	if _, err := s.repo.GetByUserAndID(ctx, userID, routeID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, routeID)
}

// validateCreateInput validates the create route input.
func (s *Service) validateCreateInput(input *CreateInput) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(input.Label) == "" {
		errs = append(errs, FieldError{Field: "label", Message: "is required"})
	} else if len(input.Label) > MaxLabelLength {
		errs = append(errs, FieldError{Field: "label", Message: "must be at most 80 characters"})
	}

	errs = append(errs, s.validateLocation(input.Pickup, "pickup", true)...)
	errs = append(errs, s.validateLocation(input.Destination, "destination", true)...)

	if input.Notes != nil && len(*input.Notes) > MaxNotesLength {
		errs = append(errs, FieldError{Field: "notes", Message: "must be at most 500 characters"})
	}

	return errs
}

// validateUpdateInput validates the update route input.
func (s *Service) validateUpdateInput(input *UpdateInput) []FieldError {
	var errs []FieldError

	if input.Label != nil {
		if strings.TrimSpace(*input.Label) == "" {
			errs = append(errs, FieldError{Field: "label", Message: "cannot be empty"})
		} else if len(*input.Label) > MaxLabelLength {
			errs = append(errs, FieldError{Field: "label", Message: "must be at most 80 characters"})
		}
	}

	if input.Pickup != nil {
		errs = append(errs, s.validateLocation(*input.Pickup, "pickup", false)...)
	}
	if input.Destination != nil {
		errs = append(errs, s.validateLocation(*input.Destination, "destination", false)...)
	}

	if input.Notes != nil && len(*input.Notes) > MaxNotesLength {
		errs = append(errs, FieldError{Field: "notes", Message: "must be at most 500 characters"})
	}

	return errs
}

// validateLocation validates a free-text location field.
func (s *Service) validateLocation(value, field string, required bool) []FieldError {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		if required {
			return []FieldError{{Field: field, Message: "is required"}}
		}
		return []FieldError{{Field: field, Message: "cannot be empty"}}
	}
	if len(value) > MaxLocationLength {
		return []FieldError{{Field: field, Message: "must be at most 200 characters"}}
	}
	return nil
}
