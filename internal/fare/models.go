// Package fare implements the fare estimation engine: a deterministic pricing
// function that maps a route description to a ranked list of ride quotes
// across multiple providers.
package fare

import (
	"errors"
	"strings"
)

// Validation errors returned by the engine.
var (
	ErrInvalidDistance = errors.New("distance must be a positive finite number")
	ErrEmptyLocation   = errors.New("pickup and destination must be non-empty")
)

// Provider identifies a ride-hailing provider.
type Provider string

// Supported providers.
const (
	ProviderUber    Provider = "Uber"
	ProviderOla     Provider = "Ola"
	ProviderRapido  Provider = "Rapido"
	ProviderInDrive Provider = "InDrive"
)

// ParseProvider maps a case-insensitive provider name to its canonical form.
func ParseProvider(s string) (Provider, bool) {
	for _, p := range Providers() {
		if strings.EqualFold(s, string(p)) {
			return p, true
		}
	}
	return "", false
}

// Category is the vehicle category of a ride option.
type Category string

// Vehicle categories.
const (
	CategoryBike Category = "bike"
	CategoryAuto Category = "auto"
	CategoryCab  Category = "cab"
)

// CityTier classifies a city by cost of living.
type CityTier string

// City tiers, metro being the most expensive.
const (
	TierMetro CityTier = "metro"
	Tier1     CityTier = "tier1"
	Tier2     CityTier = "tier2"
	Tier3     CityTier = "tier3"
)

// Config holds the pricing parameters for one (provider, vehicle tier) pair.
// All values are non-negative rupee amounts.
type Config struct {
	BaseFare    float64
	PerKmRate   float64
	PerMinRate  float64
	MinimumFare float64
	BookingFee  float64
}

// RideOption is one priced quote in a comparison result.
type RideOption struct {
	Service      Provider `json:"service"`
	ServiceLogo  string   `json:"serviceLogo"`
	ServiceColor string   `json:"serviceColor"`
	Type         string   `json:"type"`
	Icon         string   `json:"icon"`
	Price        int      `json:"price"`
	ETA          int      `json:"eta"`
	Savings      int      `json:"savings"`
	Category     Category `json:"category"`

	// OriginalPrice and Discount are set by callers that compare against a
	// previously cached quote for the identical route. The engine never fills
	// them.
	OriginalPrice *int `json:"originalPrice,omitempty"`
	Discount      *int `json:"discount,omitempty"`
}

// SurgeStatus describes the time-of-day surge in effect.
type SurgeStatus struct {
	Active     bool    `json:"active"`
	Multiplier float64 `json:"multiplier"`
	Reason     string  `json:"reason"`
}
