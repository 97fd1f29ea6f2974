// Package featureflags provides feature flag management for runtime configuration.
package featureflags

import (
	"encoding/json"
	"time"

	"github.com/faredeck/faredeck/internal/fare"
)

// Well-known feature flag keys.
const (
	// FlagDisableUber removes Uber tiers from comparison results.
	FlagDisableUber = "disable_provider_uber"

	// FlagDisableOla removes Ola tiers from comparison results.
	FlagDisableOla = "disable_provider_ola"

	// FlagDisableRapido removes Rapido tiers from comparison results.
	FlagDisableRapido = "disable_provider_rapido"

	// FlagDisableInDrive removes InDrive tiers from comparison results.
	FlagDisableInDrive = "disable_provider_indrive"

	// FlagDisableDiscountBadges suppresses price-drop annotations from the
	// quote cache.
	FlagDisableDiscountBadges = "disable_discount_badges"

	// FlagDisableBookingLinks disables deep-link generation.
	FlagDisableBookingLinks = "disable_booking_links"
)

// providerFlagKeys maps each provider to its kill-switch flag.
var providerFlagKeys = map[fare.Provider]string{
	fare.ProviderUber:    FlagDisableUber,
	fare.ProviderOla:     FlagDisableOla,
	fare.ProviderRapido:  FlagDisableRapido,
	fare.ProviderInDrive: FlagDisableInDrive,
}

// Flag represents a feature flag with its current value.
type Flag struct {
	Key       string      `json:"key"`
	Value     interface{} `json:"value"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// FlagList represents a list of feature flags.
type FlagList struct {
	Items []Flag `json:"items"`
}

// FlagUpdate represents a single flag update request.
type FlagUpdate struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// FlagUpdateRequest represents a request to update feature flags.
type FlagUpdateRequest struct {
	Updates []FlagUpdate `json:"updates"`
	Reason  string       `json:"reason"`
}

// BoolValue returns the flag value as a boolean.
// Returns the default value if the flag is nil, not found, or not a boolean.
func (f *Flag) BoolValue(defaultValue bool) bool {
	if f == nil {
		return defaultValue
	}
	switch v := f.Value.(type) {
	case bool:
		return v
	case float64:
		// JSON unmarshals numbers as float64
		return v != 0
	default:
		return defaultValue
	}
}

// StringValue returns the flag value as a string.
// Returns the default value if the flag is nil, not found, or not a string.
func (f *Flag) StringValue(defaultValue string) string {
	if f == nil {
		return defaultValue
	}
	switch v := f.Value.(type) {
	case string:
		return v
	default:
		return defaultValue
	}
}

// IntValue returns the flag value as an integer.
// Returns the default value if the flag is nil, not found, or not a number.
func (f *Flag) IntValue(defaultValue int) int {
	if f == nil {
		return defaultValue
	}
	switch v := f.Value.(type) {
	case float64:
		// JSON unmarshals numbers as float64
		return int(v)
	case int:
		return v
	default:
		return defaultValue
	}
}

// Float64Value returns the flag value as a float64.
// Returns the default value if the flag is nil, not found, or not a number.
func (f *Flag) Float64Value(defaultValue float64) float64 {
	if f == nil {
		return defaultValue
	}
	switch v := f.Value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return defaultValue
	}
}

// JSONValue unmarshals the flag value into the target struct.
// Returns an error if unmarshaling fails.
func (f *Flag) JSONValue(target interface{}) error {
	if f == nil {
		return nil
	}
	data, err := json.Marshal(f.Value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

// DefaultFlags returns the default feature flags for the application. Every
// provider is enabled by default.
func DefaultFlags() map[string]*Flag {
	now := time.Now()
	flags := map[string]*Flag{
		FlagDisableDiscountBadges: {
			Key:       FlagDisableDiscountBadges,
			Value:     false,
			UpdatedAt: now,
		},
		FlagDisableBookingLinks: {
			Key:       FlagDisableBookingLinks,
			Value:     false,
			UpdatedAt: now,
		},
	}
	for _, key := range providerFlagKeys {
		flags[key] = &Flag{Key: key, Value: false, UpdatedAt: now}
	}
	return flags
}
