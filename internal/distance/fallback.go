package distance

import (
	"hash/fnv"
	"math"
	"strings"
)

// Fallback estimate bounds in kilometers.
const (
	fallbackMinKm  = 5
	fallbackSpanKm = 51 // yields 5-55 km
)

// FallbackEstimate derives a plausible distance when no mapping provider is
// available. The estimate is seeded from the location strings rather than
// randomness so repeated searches for the same route always agree.
func FallbackEstimate(origin, destination string) *Estimate {
	h := fnv.New32a()
	_, _ = h.Write([]byte(normalize(origin) + "|" + normalize(destination)))

	distanceKm := float64(fallbackMinKm + h.Sum32()%fallbackSpanKm)
	return &Estimate{
		DistanceKm:  distanceKm,
		DurationMin: int(math.Round(distanceKm * 2.5)),
		Source:      SourceFallback,
	}
}

// normalize canonicalizes a location string for hashing and cache keys.
func normalize(location string) string {
	return strings.ToLower(strings.TrimSpace(location))
}
