// Package user provides rider profile and preference management.
//
// Data stored is deliberately minimal: a display name, a home city, a
// default pickup point, and an optional preferred provider. Email and
// credentials live in the auth package; searched routes live in the search
// package.
package user

import (
	"time"

	"github.com/faredeck/faredeck/internal/fare"
)

// Profile represents a rider's preferences.
type Profile struct {
	// UserID is the owning user (format: usr_XXXX).
	UserID string

	// DisplayName is the rider's chosen display name.
	DisplayName string

	// HomeCity is the rider's home city, used to pre-fill searches.
	HomeCity string

	// DefaultPickup is the rider's usual pickup point, free text.
	DefaultPickup string

	// PreferredProvider is the rider's favored provider, surfaced to clients
	// so they can highlight its tiers. Results stay sorted by price. Empty
	// means no preference.
	PreferredProvider fare.Provider

	// CreatedAt is when the profile was created.
	CreatedAt time.Time

	// UpdatedAt is when the profile was last updated.
	UpdatedAt time.Time
}

// ProfileUpdate carries a partial profile update. Nil fields are left
// unchanged; empty strings clear the field.
type ProfileUpdate struct {
	DisplayName       *string
	HomeCity          *string
	DefaultPickup     *string
	PreferredProvider *string
}

// DefaultProfile returns a new empty profile for a user.
func DefaultProfile(userID string) *Profile {
	now := time.Now()
	return &Profile{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
