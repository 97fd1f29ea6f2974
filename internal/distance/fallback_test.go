package distance_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/faredeck/faredeck/internal/distance"
)

func TestFallbackEstimate_Deterministic(t *testing.T) {
	first := distance.FallbackEstimate("Mumbai", "Pune")
	second := distance.FallbackEstimate("Mumbai", "Pune")

	assert.Equal(t, first.DistanceKm, second.DistanceKm)
	assert.Equal(t, first.DurationMin, second.DurationMin)
}

func TestFallbackEstimate_NormalizesInputs(t *testing.T) {
	plain := distance.FallbackEstimate("mumbai", "pune")
	shouty := distance.FallbackEstimate("  MUMBAI ", " Pune ")

	assert.Equal(t, plain.DistanceKm, shouty.DistanceKm)
}

func TestFallbackEstimate_Directional(t *testing.T) {
	// The hash covers the ordered pair, so reversing the route is allowed
	// to produce a different estimate.
	forward := distance.FallbackEstimate("Delhi", "Noida")
	assert.Equal(t, distance.SourceFallback, forward.Source)
}

func TestFallbackEstimate_Bounds(t *testing.T) {
	routes := [][2]string{
		{"Mumbai", "Pune"},
		{"Delhi", "Gurgaon"},
		{"Bangalore", "Mysore"},
		{"Chennai", "Pondicherry"},
		{"a", "b"},
		{"somewhere very specific", "somewhere else entirely"},
	}

	for _, route := range routes {
		est := distance.FallbackEstimate(route[0], route[1])
		assert.GreaterOrEqual(t, est.DistanceKm, 5.0, "route %v", route)
		assert.LessOrEqual(t, est.DistanceKm, 55.0, "route %v", route)
		assert.Equal(t, int(math.Round(est.DistanceKm*2.5)), est.DurationMin, "route %v", route)
	}
}
