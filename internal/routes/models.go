// Package routes provides saved route management: named pickup/destination
// pairs a rider can re-run with one tap.
package routes

import (
	"errors"
	"time"
)

// Repository errors.
var (
	ErrRouteNotFound = errors.New("route not found")
)

// SavedRoute represents a rider's saved route.
type SavedRoute struct {
	ID          string
	UserID      string
	Label       string
	Pickup      string
	Destination string
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateInput is the input for creating a saved route.
type CreateInput struct {
	Label       string
	Pickup      string
	Destination string
	Notes       *string
}

// UpdateInput is the input for updating a saved route. Nil fields are left
// unchanged.
type UpdateInput struct {
	Label       *string
	Pickup      *string
	Destination *string
	Notes       *string
}

// FieldError represents a validation error on a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError represents validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
