package models

import (
	"math"
	"strings"

	"github.com/faredeck/faredeck/internal/fare"
)

// CompareRequest is the request body for POST /v1/fares:compare.
type CompareRequest struct {
	Pickup      string   `json:"pickup"`
	Destination string   `json:"destination"`
	DistanceKm  *float64 `json:"distanceKm,omitempty"`
	DurationMin *int     `json:"durationMin,omitempty"`
}

// Validate checks the compare request fields.
func (r *CompareRequest) Validate() []FieldError {
	var errs []FieldError

	if strings.TrimSpace(r.Pickup) == "" {
		errs = append(errs, FieldError{Field: "pickup", Message: "pickup is required", Code: "required"})
	}
	if strings.TrimSpace(r.Destination) == "" {
		errs = append(errs, FieldError{Field: "destination", Message: "destination is required", Code: "required"})
	}
	if r.DistanceKm != nil {
		d := *r.DistanceKm
		if d <= 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			errs = append(errs, FieldError{Field: "distanceKm", Message: "distanceKm must be a positive finite number", Code: "invalid"})
		}
	}
	if r.DurationMin != nil && *r.DurationMin <= 0 {
		errs = append(errs, FieldError{Field: "durationMin", Message: "durationMin must be positive", Code: "invalid"})
	}

	return errs
}

// BookingLinkRequest is the request body for POST /v1/fares/booking-link.
type BookingLinkRequest struct {
	Service     string `json:"service"`
	Type        string `json:"type"`
	Pickup      string `json:"pickup"`
	Destination string `json:"destination"`
}

// Validate checks the booking link request fields.
func (r *BookingLinkRequest) Validate() []FieldError {
	var errs []FieldError

	if strings.TrimSpace(r.Service) == "" {
		errs = append(errs, FieldError{Field: "service", Message: "service is required", Code: "required"})
	} else if _, ok := fare.ParseProvider(r.Service); !ok {
		errs = append(errs, FieldError{Field: "service", Message: "unknown provider", Code: "invalid"})
	}
	if strings.TrimSpace(r.Pickup) == "" {
		errs = append(errs, FieldError{Field: "pickup", Message: "pickup is required", Code: "required"})
	}
	if strings.TrimSpace(r.Destination) == "" {
		errs = append(errs, FieldError{Field: "destination", Message: "destination is required", Code: "required"})
	}

	return errs
}

// BookingLink is the response for POST /v1/fares/booking-link. An empty URL
// means deep links are currently disabled.
type BookingLink struct {
	URL string `json:"url"`
}
