// Package search records and serves a rider's fare search history.
package search

import (
	"errors"
	"time"

	"github.com/faredeck/faredeck/internal/fare"
)

// Repository errors.
var (
	ErrSearchNotFound = errors.New("search not found")
)

// Search is one recorded fare comparison.
type Search struct {
	ID          string
	UserID      string
	Pickup      string
	Destination string

	// DistanceKm and DurationMin are the resolved route values the quotes
	// were priced against.
	DistanceKm  float64
	DurationMin int

	// DistanceSource records how the route was resolved (provider, cache,
	// fallback).
	DistanceSource string

	// CheapestPrice and CheapestService snapshot the best quote at search
	// time, in whole rupees.
	CheapestPrice   int
	CheapestService fare.Provider

	// OptionCount is how many ride options the comparison returned.
	OptionCount int

	SearchedAt time.Time
}
